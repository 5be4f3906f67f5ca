// Package camera provides interactive controllers that drive scene cameras.
package camera

import (
	gomath "math"

	"github.com/Faultbox/sceneview/internal/engine/scene"
	"github.com/Faultbox/sceneview/pkg/math"
)

// Orbit orbits a camera around a center point.
type Orbit struct {
	Center math.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // radians above the horizon
	Yaw      float32 // radians around +Y, 0 looks down -Z

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbit creates an orbit controller with default settings.
func NewOrbit() *Orbit {
	return &Orbit{
		Distance:        10,
		Pitch:           0.5,
		MinDistance:     0.5,
		MaxDistance:     500,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// NewOrbitFrom creates a controller whose initial pose matches eye looking
// at target.
func NewOrbitFrom(eye, target math.Vec3) *Orbit {
	o := NewOrbit()
	o.Center = target
	off := eye.Sub(target)
	o.Distance = off.Length()
	if o.Distance == 0 {
		o.Distance = 1
		return o
	}
	o.Pitch = float32(gomath.Asin(float64(off.Y / o.Distance)))
	o.Yaw = float32(gomath.Atan2(float64(off.X), float64(off.Z)))
	o.clamp()
	return o
}

// Position returns the camera position.
func (o *Orbit) Position() math.Vec3 {
	cp, sp := gomath.Cos(float64(o.Pitch)), gomath.Sin(float64(o.Pitch))
	cy, sy := gomath.Cos(float64(o.Yaw)), gomath.Sin(float64(o.Yaw))
	return o.Center.Add(math.Vec3{
		X: o.Distance * float32(cp*sy),
		Y: o.Distance * float32(sp),
		Z: o.Distance * float32(cp*cy),
	})
}

// Apply points cam at the orbit center from the current position.
func (o *Orbit) Apply(cam *scene.Camera) {
	cam.LookAt(o.Position(), o.Center, math.Vec3{Y: 1})
}

// HandleDrag updates rotation based on mouse drag delta.
func (o *Orbit) HandleDrag(deltaX, deltaY float32) {
	o.Yaw -= deltaX * o.DragSensitivity
	o.Pitch += deltaY * o.DragSensitivity
	o.clamp()
}

// HandleZoom updates distance based on scroll wheel delta.
func (o *Orbit) HandleZoom(delta float32) {
	o.Distance -= delta * o.Distance * o.ZoomSensitivity
	o.clamp()
}

// HandleMovement pans the center point on the ground plane relative to the
// current view direction.
func (o *Orbit) HandleMovement(forward, right, up float32) {
	// Speed scales with distance for consistent feel
	speed := o.Distance * 0.01

	sy := float32(gomath.Sin(float64(o.Yaw)))
	cy := float32(gomath.Cos(float64(o.Yaw)))

	o.Center.X += (-sy*forward + cy*right) * speed
	o.Center.Z += (-cy*forward - sy*right) * speed
	o.Center.Y += up * speed
}

// FitToBounds centers the orbit on box and backs off far enough to see it.
func (o *Orbit) FitToBounds(box math.AABB) {
	if box.IsEmpty() {
		return
	}
	o.Center = box.Center()
	o.Distance = box.Size().Length() * 1.5
	o.clamp()
}

func (o *Orbit) clamp() {
	o.Pitch = min(max(o.Pitch, o.MinPitch), o.MaxPitch)
	o.Distance = min(max(o.Distance, o.MinDistance), o.MaxDistance)
}
