// Package asteroid generates procedural asteroid meshes: a subdivided
// icosphere displaced by layered gradient noise, scaled to a random radius,
// with mass derived from a configured material density.
package asteroid

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/multierr"
)

// MaxSubdivisions bounds the icosphere level. Memory grows as 4^level;
// level 6 is 81920 triangles.
const MaxSubdivisions = 6

// MaxOctaves bounds fractal octaves per noise layer.
const MaxOctaves = 8

var (
	// ErrInvalidConfig wraps every generation config validation failure.
	ErrInvalidConfig = errors.New("asteroid: invalid generation config")

	// ErrSubdivisionLimit reports a subdivision level outside [0, MaxSubdivisions].
	ErrSubdivisionLimit = errors.New("asteroid: subdivision level out of range")

	// ErrNoMeshSink is returned when Generate has nowhere to upload geometry.
	ErrNoMeshSink = errors.New("asteroid: no mesh sink configured")
)

// NoiseLayer is one pass of radial noise displacement.
type NoiseLayer struct {
	Scale     float64 `yaml:"scale"`             // sample frequency, > 0
	Intensity float64 `yaml:"intensity"`         // displacement strength, >= 0
	Seed      int     `yaml:"seed"`              // < 0 derives a seed from the global seed
	Octaves   int     `yaml:"octaves,omitempty"` // fractal octaves; 0 or 1 samples plain Perlin
}

// GenerationConfig controls a single asteroid generation.
type GenerationConfig struct {
	Subdivisions            int          `yaml:"subdivisions"`
	MinRadius               float64      `yaml:"min_radius"`
	MaxRadius               float64      `yaml:"max_radius"`
	Density                 float64      `yaml:"density"` // kg per cubic unit
	GlobalSeed              int          `yaml:"global_seed"`
	NoiseLayers             []NoiseLayer `yaml:"noise_layers"`
	MaxDisplacementFraction float64      `yaml:"max_displacement_fraction"`
	EnablePhysics           bool         `yaml:"enable_physics"`
	TriangleCollision       bool         `yaml:"triangle_collision"`
}

// DefaultConfig returns a medium-detail metallic asteroid with one
// randomly seeded noise layer.
func DefaultConfig() GenerationConfig {
	return GenerationConfig{
		Subdivisions: 2,
		MinRadius:    250,
		MaxRadius:    1000,
		Density:      7874, // steel
		GlobalSeed:   -1,
		NoiseLayers: []NoiseLayer{
			{Scale: 0.1, Intensity: 1.0, Seed: -1},
		},
		MaxDisplacementFraction: 0.5,
		EnablePhysics:           true,
	}
}

// Validate reports every problem with the config at once. The returned
// error matches ErrInvalidConfig, and ErrSubdivisionLimit when the level is
// out of range.
func (c GenerationConfig) Validate() error {
	var err error

	if c.Subdivisions < 0 || c.Subdivisions > MaxSubdivisions {
		err = multierr.Append(err, fmt.Errorf("%w: %d not in [0, %d]",
			ErrSubdivisionLimit, c.Subdivisions, MaxSubdivisions))
	}
	if !finite(c.MinRadius) || c.MinRadius <= 0 {
		err = multierr.Append(err, fmt.Errorf("min_radius %v must be a positive number", c.MinRadius))
	}
	if !finite(c.MaxRadius) || c.MaxRadius < c.MinRadius {
		err = multierr.Append(err, fmt.Errorf("max_radius %v must be >= min_radius %v", c.MaxRadius, c.MinRadius))
	}
	if !finite(c.Density) || c.Density <= 0 {
		err = multierr.Append(err, fmt.Errorf("density %v must be a positive number", c.Density))
	}
	if !finite(c.MaxDisplacementFraction) || c.MaxDisplacementFraction < 0 || c.MaxDisplacementFraction > 1 {
		err = multierr.Append(err, fmt.Errorf("max_displacement_fraction %v not in [0, 1]", c.MaxDisplacementFraction))
	}
	for i, l := range c.NoiseLayers {
		if !finite(l.Scale) || l.Scale <= 0 {
			err = multierr.Append(err, fmt.Errorf("noise_layers[%d].scale %v must be > 0", i, l.Scale))
		}
		if !finite(l.Intensity) || l.Intensity < 0 {
			err = multierr.Append(err, fmt.Errorf("noise_layers[%d].intensity %v must be >= 0", i, l.Intensity))
		}
		if l.Octaves < 0 || l.Octaves > MaxOctaves {
			err = multierr.Append(err, fmt.Errorf("noise_layers[%d].octaves %d not in [0, %d]", i, l.Octaves, MaxOctaves))
		}
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Stats describes a generated asteroid.
type Stats struct {
	Radius     float64 `yaml:"radius"`
	Volume     float64 `yaml:"volume"`
	Mass       float64 `yaml:"mass"`
	LayerSeeds []int   `yaml:"layer_seeds"`
}

// Clone returns a deep copy.
func (s Stats) Clone() Stats {
	if s.LayerSeeds != nil {
		s.LayerSeeds = append([]int(nil), s.LayerSeeds...)
	}
	return s
}

// MeshData is the render/collision upload payload. UVs, tangents and
// colors are zero-filled.
type MeshData struct {
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	Triangles []uint32
	UVs       []mgl64.Vec2
	Tangents  []mgl64.Vec3
	Colors    [][4]uint8
}

// ConvexHull is the point set handed to the physics collision builder.
type ConvexHull struct {
	Points []mgl64.Vec3
	Min    mgl64.Vec3
	Max    mgl64.Vec3
	Radius float64 // largest distance from the origin
}

// Asteroid is the output of one generation.
type Asteroid struct {
	Vertices   []mgl64.Vec3
	Triangles  []uint32
	Normals    []mgl64.Vec3
	Hull       ConvexHull
	Stats      Stats
	GlobalSeed int
}

// MeshSink receives final geometry for rendering and collision.
type MeshSink interface {
	UploadMesh(mesh MeshData, createCollision bool) error
	SubmitConvexHull(hull ConvexHull) error
}

// PhysicsSink receives the body mass in kilograms.
type PhysicsSink interface {
	SetMass(kg float64, simulate bool)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
