package asteroid

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/spaaace/internal/event"
	"github.com/Faultbox/spaaace/internal/logger"
)

// Option configures a Generator.
type Option func(*Generator)

// WithRandom sets the source used when the config's global seed is negative.
func WithRandom(src Source) Option {
	return func(g *Generator) { g.rng = src }
}

// WithMeshSink sets the render/collision upload target. Required.
func WithMeshSink(sink MeshSink) Option {
	return func(g *Generator) { g.mesh = sink }
}

// WithPhysicsSink sets the body that receives the computed mass.
func WithPhysicsSink(sink PhysicsSink) Option {
	return func(g *Generator) { g.physics = sink }
}

// WithLogger overrides the component logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) { g.log = l }
}

// WithBus publishes generation events on an existing bus.
func WithBus(bus *event.Bus[Stats]) Option {
	return func(g *Generator) { g.bus = bus }
}

// NewStatsBus returns a bus that hands every subscriber its own copy of
// the stats.
func NewStatsBus() *event.Bus[Stats] {
	bus := event.NewBus[Stats]()
	bus.Copy = Stats.Clone
	return bus
}

// Generator runs the asteroid pipeline for one configuration. It is not
// safe for concurrent use; run one Generator per goroutine.
type Generator struct {
	cfg     GenerationConfig
	rng     Source
	mesh    MeshSink
	physics PhysicsSink
	bus     *event.Bus[Stats]
	log     *zap.Logger

	stats Stats
}

// NewGenerator creates a generator for cfg.
func NewGenerator(cfg GenerationConfig, opts ...Option) *Generator {
	g := &Generator{cfg: cfg}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = processSource()
	}
	if g.bus == nil {
		g.bus = NewStatsBus()
	}
	if g.log == nil {
		g.log = logger.Named("asteroid")
	}
	return g
}

// Config returns the generation config.
func (g *Generator) Config() GenerationConfig {
	return g.cfg
}

// SetConfig replaces the config used by the next Generate.
func (g *Generator) SetConfig(cfg GenerationConfig) {
	g.cfg = cfg
}

// Events returns the generation-complete bus.
func (g *Generator) Events() *event.Bus[Stats] {
	return g.bus
}

// Stats returns the stats of the last successful generation.
func (g *Generator) Stats() Stats {
	return g.stats.Clone()
}

// Mass returns the mass of the last successful generation in kilograms.
func (g *Generator) Mass() float64 {
	return g.stats.Mass
}

// Generate builds an asteroid, uploads it to the mesh sink, assigns mass to
// the physics sink and publishes its stats. Nothing is published when an
// error is returned.
func (g *Generator) Generate() (*Asteroid, error) {
	cfg := g.cfg
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if g.mesh == nil {
		return nil, ErrNoMeshSink
	}

	globalSeed := cfg.GlobalSeed
	if globalSeed < 0 {
		globalSeed = g.rng.IntN(math.MaxInt32)
	}
	stream := newStream(int64(globalSeed), globalStream)

	seeds := make([]int, len(cfg.NoiseLayers))
	for i, layer := range cfg.NoiseLayers {
		seeds[i] = layer.Seed
		if seeds[i] < 0 {
			seeds[i] = stream.IntN(math.MaxInt32)
		}
	}

	vertices, triangles := BuildIcosphere(cfg.Subdivisions)

	peaks := ApplyNoiseLayers(vertices, cfg.NoiseLayers, seeds, cfg.MaxDisplacementFraction)
	for i, p := range peaks {
		g.log.Debug("noise layer applied",
			zap.Int("layer", i),
			zap.Int("seed", seeds[i]),
			zap.Float64("peak_displacement", p),
		)
	}

	// Displacement reshapes directions only; the final radius comes from
	// the scale below.
	normalizeAll(vertices)

	radius := cfg.MinRadius
	if cfg.MaxRadius > cfg.MinRadius {
		radius = cfg.MinRadius + stream.Float64()*(cfg.MaxRadius-cfg.MinRadius)
	}
	for i := range vertices {
		vertices[i] = vertices[i].Mul(radius)
	}

	normals := ComputeNormals(vertices, triangles)

	if err := g.mesh.UploadMesh(meshData(vertices, triangles, normals), cfg.TriangleCollision); err != nil {
		return nil, fmt.Errorf("uploading asteroid mesh: %w", err)
	}

	hull := BuildHull(vertices)
	if err := g.mesh.SubmitConvexHull(hull); err != nil {
		return nil, fmt.Errorf("submitting convex hull: %w", err)
	}

	stats := ComputeStats(radius, cfg.Density)
	stats.LayerSeeds = seeds
	g.stats = stats

	if cfg.EnablePhysics && g.physics != nil {
		g.physics.SetMass(stats.Mass, true)
	}

	g.bus.Publish(stats.Clone())

	g.log.Info("asteroid generated",
		zap.Int("seed", globalSeed),
		zap.Float64("radius", stats.Radius),
		zap.Float64("volume", stats.Volume),
		zap.Float64("mass", stats.Mass),
		zap.Int("vertices", len(vertices)),
		zap.Int("triangles", len(triangles)/3),
	)

	return &Asteroid{
		Vertices:   vertices,
		Triangles:  triangles,
		Normals:    normals,
		Hull:       hull,
		Stats:      stats.Clone(),
		GlobalSeed: globalSeed,
	}, nil
}
