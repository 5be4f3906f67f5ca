// Package lighting describes light sources in the form shaders consume them.
package lighting

import (
	"fmt"

	svmath "github.com/Faultbox/sceneview/pkg/math"
)

// Type selects how a light's position and direction are interpreted.
type Type int

const (
	Directional Type = iota
	Point
	Spot
)

func (t Type) String() string {
	switch t {
	case Directional:
		return "directional"
	case Point:
		return "point"
	case Spot:
		return "spot"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Light is one resolved light, in world space, ready for upload.
type Light struct {
	Type        Type
	Position    svmath.Vec3 // world translation of the light node
	Direction   svmath.Vec3
	Color       svmath.Vec3
	Ambient     float32
	Attenuation float32
	ConeAngle   float32 // degrees
}

// ConeRadians returns the cone angle in radians.
func (l Light) ConeRadians() float32 {
	return ConeRadians(l.ConeAngle)
}

// ConeRadians converts a cone angle from degrees.
func ConeRadians(degrees float32) float32 {
	return svmath.Radians(degrees)
}

// Buffer collects the lights of one frame up to a fixed slot count.
type Buffer struct {
	Lights  []Light
	Dropped int // lights offered after the buffer was full

	max int
}

// NewBuffer creates a buffer holding at most slots lights.
func NewBuffer(slots int) *Buffer {
	return &Buffer{
		Lights: make([]Light, 0, slots),
		max:    slots,
	}
}

// Reset empties the buffer for the next frame.
func (b *Buffer) Reset() {
	b.Lights = b.Lights[:0]
	b.Dropped = 0
}

// Add appends a light. Returns false, and counts the light as dropped, if
// the buffer is full.
func (b *Buffer) Add(l Light) bool {
	if len(b.Lights) >= b.max {
		b.Dropped++
		return false
	}
	b.Lights = append(b.Lights, l)
	return true
}

// Max returns the slot count.
func (b *Buffer) Max() int {
	return b.max
}
