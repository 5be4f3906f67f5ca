package lighting

import (
	"math"

	svmath "github.com/Faultbox/sceneview/pkg/math"
)

// SunDirection converts a sun position to a unit vector pointing towards
// the sun. Longitude rotates around +Y (degrees, 0 faces +Z), latitude is
// the elevation above the horizon in degrees.
func SunDirection(longitude, latitude float32) svmath.Vec3 {
	lon := float64(longitude) * math.Pi / 180
	lat := float64(latitude) * math.Pi / 180

	return svmath.Vec3{
		X: float32(math.Cos(lat) * math.Sin(lon)),
		Y: float32(math.Sin(lat)),
		Z: float32(math.Cos(lat) * math.Cos(lon)),
	}
}

// Sunlight returns a directional light shining from the given sun position.
func Sunlight(longitude, latitude float32, color svmath.Vec3, ambient float32) Light {
	return Light{
		Type:      Directional,
		Direction: SunDirection(longitude, latitude).Scale(-1),
		Color:     color,
		Ambient:   ambient,
	}
}
