// Package noise provides deterministic coherent noise functions.
package noise

import "math"

// perm is the reference permutation table, repeated once so lookups of
// perm[i+1] never need wrapping.
var perm [512]uint8

var permutation = [256]uint8{
	151, 160, 137, 91, 90, 15, 131, 13, 201, 95, 96, 53, 194, 233, 7, 225,
	140, 36, 103, 30, 69, 142, 8, 99, 37, 240, 21, 10, 23, 190, 6, 148,
	247, 120, 234, 75, 0, 26, 197, 62, 94, 252, 219, 203, 117, 35, 11, 32,
	57, 177, 33, 88, 237, 149, 56, 87, 174, 20, 125, 136, 171, 168, 68, 175,
	74, 165, 71, 134, 139, 48, 27, 166, 77, 146, 158, 231, 83, 111, 229, 122,
	60, 211, 133, 230, 220, 105, 92, 41, 55, 46, 245, 40, 244, 102, 143, 54,
	65, 25, 63, 161, 1, 216, 80, 73, 209, 76, 132, 187, 208, 89, 18, 169,
	200, 196, 135, 130, 116, 188, 159, 86, 164, 100, 109, 198, 173, 186, 3, 64,
	52, 217, 226, 250, 124, 123, 5, 202, 38, 147, 118, 126, 255, 82, 85, 212,
	207, 206, 59, 227, 47, 16, 58, 17, 182, 189, 28, 42, 223, 183, 170, 213,
	119, 248, 152, 2, 44, 154, 163, 70, 221, 153, 101, 155, 167, 43, 172, 9,
	129, 22, 39, 253, 19, 98, 108, 110, 79, 113, 224, 232, 178, 185, 112, 104,
	218, 246, 97, 228, 251, 34, 242, 193, 238, 210, 144, 12, 191, 179, 162, 241,
	81, 51, 145, 235, 249, 14, 239, 107, 49, 192, 214, 31, 181, 199, 106, 157,
	184, 84, 204, 176, 115, 121, 50, 45, 127, 4, 150, 254, 138, 236, 205, 93,
	222, 114, 67, 29, 24, 72, 243, 141, 128, 195, 78, 66, 215, 61, 156, 180,
}

func init() {
	for i := range perm {
		perm[i] = permutation[i&255]
	}
}

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// grad returns the dot product of the gradient selected by hash with (x, y, z).
func grad(hash uint8, x, y, z float64) float64 {
	h := hash & 15
	u := y
	if h < 8 {
		u = x
	}
	var v float64
	switch {
	case h < 4:
		v = y
	case h == 12 || h == 14:
		v = x
	default:
		v = z
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

// Perlin3D samples improved gradient noise at (x, y, z).
// The result is continuous, deterministic, zero at every integer lattice
// point and lies in [-1, 1].
func Perlin3D(x, y, z float64) float64 {
	fx, fy, fz := math.Floor(x), math.Floor(y), math.Floor(z)
	xi := int(int64(fx) & 255)
	yi := int(int64(fy) & 255)
	zi := int(int64(fz) & 255)

	x -= fx
	y -= fy
	z -= fz

	u := fade(x)
	v := fade(y)
	w := fade(z)

	a := int(perm[xi]) + yi
	aa := int(perm[a]) + zi
	ab := int(perm[a+1]) + zi
	b := int(perm[xi+1]) + yi
	ba := int(perm[b]) + zi
	bb := int(perm[b+1]) + zi

	n := lerp(
		lerp(
			lerp(grad(perm[aa], x, y, z), grad(perm[ba], x-1, y, z), u),
			lerp(grad(perm[ab], x, y-1, z), grad(perm[bb], x-1, y-1, z), u),
			v,
		),
		lerp(
			lerp(grad(perm[aa+1], x, y, z-1), grad(perm[ba+1], x-1, y, z-1), u),
			lerp(grad(perm[ab+1], x, y-1, z-1), grad(perm[bb+1], x-1, y-1, z-1), u),
			v,
		),
		w,
	)

	// Keep the documented range exact under rounding.
	return clamp(n, -1, 1)
}

// Fractal3D sums octaves of Perlin3D, each octave scaled by lacunarity in
// frequency and persistence in amplitude. The sum is normalized back to
// [-1, 1].
func Fractal3D(x, y, z float64, octaves int, persistence, lacunarity float64) float64 {
	amplitude := 1.0
	frequency := 1.0
	sum := 0.0
	norm := 0.0
	for range octaves {
		sum += Perlin3D(x*frequency, y*frequency, z*frequency) * amplitude
		norm += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
