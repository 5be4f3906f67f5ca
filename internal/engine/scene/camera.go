package scene

import (
	"github.com/Faultbox/sceneview/pkg/math"
)

// Projection selects the camera's projection model.
type Projection int

const (
	Perspective Projection = iota
	Orthographic
)

// Camera is the payload of a camera node. Eye, target and up are in the
// camera node's local frame; the node's world transform places that frame.
type Camera struct {
	Projection Projection

	// Perspective parameters. FovY is in degrees.
	FovY   float32
	Aspect float32

	// Orthographic extents.
	Left, Right, Bottom, Top float32

	Near, Far float32

	eye, target, up math.Vec3
}

func newCamera() *Camera {
	return &Camera{
		Projection: Perspective,
		FovY:       60,
		Aspect:     1,
		Near:       0.1,
		Far:        1000,
		Left:       -1,
		Right:      1,
		Bottom:     -1,
		Top:        1,
		target:     math.Vec3{Z: -1},
		up:         math.Vec3{Y: 1},
	}
}

// SetPerspective switches to a perspective projection.
func (c *Camera) SetPerspective(fovY, aspect, near, far float32) {
	c.Projection = Perspective
	c.FovY, c.Aspect, c.Near, c.Far = fovY, aspect, near, far
}

// SetOrthographic switches to an orthographic projection.
func (c *Camera) SetOrthographic(left, right, bottom, top, near, far float32) {
	c.Projection = Orthographic
	c.Left, c.Right, c.Bottom, c.Top, c.Near, c.Far = left, right, bottom, top, near, far
}

// LookAt orients the camera.
func (c *Camera) LookAt(eye, target, up math.Vec3) {
	c.eye, c.target, c.up = eye, target, up
}

func (c *Camera) Eye() math.Vec3    { return c.eye }
func (c *Camera) Target() math.Vec3 { return c.target }
func (c *Camera) Up() math.Vec3     { return c.up }

// Valid reports whether the camera can produce finite matrices.
func (c *Camera) Valid() bool {
	if c.Near == c.Far {
		return false
	}
	if c.eye == c.target || c.up.Length() == 0 {
		return false
	}
	if c.eye.Sub(c.target).Normalize().Cross(c.up.Normalize()).Length() < 1e-6 {
		return false
	}
	switch c.Projection {
	case Perspective:
		return c.FovY > 0 && c.FovY < 180 && c.Aspect > 0 && c.Near > 0
	case Orthographic:
		return c.Left != c.Right && c.Bottom != c.Top
	}
	return false
}

// ProjectionMatrix returns the camera's projection.
func (c *Camera) ProjectionMatrix() math.Mat4 {
	if c.Projection == Orthographic {
		return math.Ortho(c.Left, c.Right, c.Bottom, c.Top, c.Near, c.Far)
	}
	return math.Perspective(math.Radians(c.FovY), c.Aspect, c.Near, c.Far)
}

// localView is the view matrix ignoring the node's placement.
func (c *Camera) localView() math.Mat4 {
	return math.LookAt(c.eye, c.target, c.up)
}

// View is a camera resolved against its ancestors for one frame.
type View struct {
	Proj    math.Mat4
	View    math.Mat4
	ViewInv math.Mat4
	Eye     math.Vec3 // world space
}
