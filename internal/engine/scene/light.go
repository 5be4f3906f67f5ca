package scene

import (
	"github.com/Faultbox/sceneview/internal/engine/lighting"
	"github.com/Faultbox/sceneview/pkg/math"
)

// Light is the payload of a light node. Its position is the node's world
// translation; Direction is in the node's local frame.
type Light struct {
	Type        lighting.Type
	Direction   math.Vec3
	Color       math.Vec3
	Ambient     float32
	Attenuation float32
	ConeAngle   float32 // degrees
}

func newLight() *Light {
	return &Light{
		Type:      lighting.Directional,
		Direction: math.Vec3{Y: -1},
		Color:     math.Vec3{X: 1, Y: 1, Z: 1},
	}
}
