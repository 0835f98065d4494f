// Package lighting provides lighting utilities for 3D rendering.
package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SunDirection converts azimuth and elevation angles in degrees to a unit
// vector pointing towards the sun. Azimuth turns around +Z starting at +X;
// elevation is measured up from the XY plane.
func SunDirection(azimuthDeg, elevationDeg float64) mgl64.Vec3 {
	az := mgl64.DegToRad(azimuthDeg)
	el := mgl64.DegToRad(elevationDeg)
	return mgl64.Vec3{
		math.Cos(el) * math.Cos(az),
		math.Cos(el) * math.Sin(az),
		math.Sin(el),
	}
}
