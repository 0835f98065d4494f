package lighting

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name          string
		azimuth, elev float64
		want          mgl64.Vec3
	}{
		{"horizon +X", 0, 0, mgl64.Vec3{1, 0, 0}},
		{"horizon +Y", 90, 0, mgl64.Vec3{0, 1, 0}},
		{"zenith", 123, 90, mgl64.Vec3{0, 0, 1}},
		{"diagonal", 180, 45, mgl64.Vec3{-math.Sqrt2 / 2, 0, math.Sqrt2 / 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SunDirection(tt.azimuth, tt.elev)
			if got.Sub(tt.want).Len() > 1e-12 {
				t.Errorf("SunDirection = %v, want %v", got, tt.want)
			}
			if math.Abs(got.Len()-1) > 1e-12 {
				t.Errorf("not unit: %v", got.Len())
			}
		})
	}
}
