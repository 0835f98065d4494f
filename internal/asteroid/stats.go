package asteroid

import "math"

// SphereVolume returns 4/3·π·r³.
func SphereVolume(radius float64) float64 {
	return 4.0 / 3.0 * math.Pi * radius * radius * radius
}

// ComputeStats derives volume and mass treating the asteroid as a perfect
// sphere of the given radius. Non-finite or negative inputs produce zeroes
// rather than propagating NaN or Inf.
func ComputeStats(radius, density float64) Stats {
	if !finite(radius) || radius < 0 {
		radius = 0
	}
	if !finite(density) || density < 0 {
		density = 0
	}

	volume := SphereVolume(radius)
	mass := volume * density
	if !finite(mass) {
		mass = 0
	}
	if !finite(volume) {
		volume = 0
	}

	return Stats{
		Radius: radius,
		Volume: volume,
		Mass:   mass,
	}
}
