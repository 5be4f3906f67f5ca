package lighting

import (
	"math"
	"testing"

	svmath "github.com/Faultbox/sceneview/pkg/math"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name     string
		lon, lat float32
		want     svmath.Vec3
	}{
		{"overhead", 0, 90, svmath.Vec3{Y: 1}},
		{"horizon +Z", 0, 0, svmath.Vec3{Z: 1}},
		{"horizon +X", 90, 0, svmath.Vec3{X: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SunDirection(tt.lon, tt.lat)
			if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) || !near(got.Z, tt.want.Z) {
				t.Errorf("SunDirection(%v, %v) = %v, want %v", tt.lon, tt.lat, got, tt.want)
			}
			if !near(got.Length(), 1) {
				t.Errorf("length = %v, want 1", got.Length())
			}
		})
	}
}

func TestSunlightPointsDown(t *testing.T) {
	l := Sunlight(0, 90, svmath.Vec3{X: 1, Y: 1, Z: 1}, 0.2)
	if l.Type != Directional {
		t.Errorf("type = %v", l.Type)
	}
	if !near(l.Direction.Y, -1) {
		t.Errorf("direction = %v, want straight down", l.Direction)
	}
}

func TestConeRadians(t *testing.T) {
	if got := ConeRadians(180); !near(got, math.Pi) {
		t.Errorf("ConeRadians(180) = %v", got)
	}
	l := Light{ConeAngle: 45}
	if got := l.ConeRadians(); !near(got, math.Pi/4) {
		t.Errorf("ConeRadians() = %v", got)
	}
}

func TestBufferClamps(t *testing.T) {
	b := NewBuffer(2)
	for i := 0; i < 5; i++ {
		ok := b.Add(Light{Ambient: float32(i)})
		if want := i < 2; ok != want {
			t.Errorf("Add #%d = %v, want %v", i, ok, want)
		}
	}
	if len(b.Lights) != 2 || b.Dropped != 3 {
		t.Errorf("kept %d dropped %d, want 2 and 3", len(b.Lights), b.Dropped)
	}
	if b.Lights[1].Ambient != 1 {
		t.Errorf("lights not kept in order: %v", b.Lights)
	}

	b.Reset()
	if len(b.Lights) != 0 || b.Dropped != 0 || b.Max() != 2 {
		t.Errorf("Reset left %d lights, %d dropped", len(b.Lights), b.Dropped)
	}
}

func TestTypeString(t *testing.T) {
	if Spot.String() != "spot" || Type(9).String() != "Type(9)" {
		t.Errorf("unexpected names %q %q", Spot, Type(9))
	}
}
