package asteroid

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/spaaace/pkg/noise"
)

// minRadial is the smallest radial length a displaced vertex keeps. A step
// that would reach or cross the origin leaves the vertex on its original
// direction instead.
const minRadial = 1e-9

// Fractal octave falloff for layers with more than one octave.
const (
	octavePersistence = 0.5
	octaveLacunarity  = 2.0
)

// channelOffsets decorrelate the x, y and z noise channels sampled from one
// field.
var channelOffsets = [3]mgl64.Vec3{
	{0, 0, 0},
	{13.13, 37.37, 7.73},
	{97.97, 21.21, 55.55},
}

// ApplyNoiseLayers displaces vertices radially, one layer after another.
// Each vertex moves along its own direction by the projection of a 3D noise
// vector onto that direction, clamped to ±maxDisplacement. Later layers
// sample at the already displaced positions.
//
// seeds[i] is the resolved seed of layers[i]. A missing entry falls back to
// the layer's own seed, or to its index when that is negative.
//
// A vertex is never pushed through the centre: when the step would leave
// less than minRadial of length it stays minRadial out along its direction.
//
// The returned slice holds the largest |displacement| applied by each layer.
func ApplyNoiseLayers(vertices []mgl64.Vec3, layers []NoiseLayer, seeds []int, maxDisplacement float64) []float64 {
	peaks := make([]float64, len(layers))
	if len(vertices) == 0 {
		return peaks
	}

	for li, layer := range layers {
		seed := layerSeed(li, layer, seeds)
		r := newStream(int64(seed), layerStream)
		offset := mgl64.Vec3{r.Float64() * 1000, r.Float64() * 1000, r.Float64() * 1000}

		for i, v := range vertices {
			n := normalize(v)
			d := radialDisplacement(v, n, offset, layer, maxDisplacement)
			if a := math.Abs(d); a > peaks[li] {
				peaks[li] = a
			}
			if d == 0 || n == (mgl64.Vec3{}) {
				continue
			}
			if v.Len()+d > minRadial {
				vertices[i] = v.Add(n.Mul(d))
			} else {
				vertices[i] = n.Mul(minRadial)
			}
		}
	}

	return peaks
}

func layerSeed(i int, layer NoiseLayer, seeds []int) int {
	if i < len(seeds) {
		return seeds[i]
	}
	if layer.Seed >= 0 {
		return layer.Seed
	}
	return i
}

// radialDisplacement returns the clamped scalar offset along n for v.
func radialDisplacement(v, n, offset mgl64.Vec3, layer NoiseLayer, maxDisplacement float64) float64 {
	p := v.Mul(layer.Scale).Add(offset)

	var sample mgl64.Vec3
	for c, o := range channelOffsets {
		q := p.Add(o)
		if layer.Octaves > 1 {
			sample[c] = noise.Fractal3D(q[0], q[1], q[2], layer.Octaves, octavePersistence, octaveLacunarity)
		} else {
			sample[c] = noise.Perlin3D(q[0], q[1], q[2])
		}
	}

	d := sample.Mul(layer.Intensity * 0.5).Dot(n)
	if !finite(d) {
		return 0
	}
	return mgl64.Clamp(d, -maxDisplacement, maxDisplacement)
}
