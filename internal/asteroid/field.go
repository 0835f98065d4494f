package asteroid

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/spaaace/internal/event"
	"github.com/Faultbox/spaaace/internal/logger"
)

// FieldConfig describes a batch of independently generated asteroids.
type FieldConfig struct {
	Count   int     `yaml:"count"`
	Seed    int     `yaml:"seed"`    // < 0 picks a random field seed
	Workers int     `yaml:"workers"` // 0 uses GOMAXPROCS
	Spread  float64 `yaml:"spread"`  // side of the cube members are placed in
}

// DefaultFieldConfig returns a small randomly seeded field.
func DefaultFieldConfig() FieldConfig {
	return FieldConfig{
		Count:   8,
		Seed:    -1,
		Workers: 0,
		Spread:  20000,
	}
}

// FieldMember is one asteroid of a field.
type FieldMember struct {
	Index    int
	Position mgl64.Vec3
	Asteroid *Asteroid
	Sink     MeshSink
}

// Field generates many asteroids concurrently. Each member gets its own
// Generator, buffers and streams; nothing mutable is shared between
// workers except the bus, whose handlers must tolerate concurrent calls.
type Field struct {
	Config FieldConfig
	Base   GenerationConfig

	// NewSink returns the mesh sink for member i. Nil uses a MemorySink.
	NewSink func(i int) MeshSink
	// NewPhysics returns the physics sink for member i. Optional.
	NewPhysics func(i int) PhysicsSink

	Bus    *event.Bus[Stats]
	Random Source
	Log    *zap.Logger
}

type fieldSlot struct {
	seed     int
	position mgl64.Vec3
}

// Generate builds every member. Results are in member order. The first
// failure cancels members that have not started yet.
func (f *Field) Generate(ctx context.Context) ([]FieldMember, error) {
	if f.Config.Count < 0 {
		return nil, fmt.Errorf("%w: field count %d is negative", ErrInvalidConfig, f.Config.Count)
	}
	if err := f.Base.Validate(); err != nil {
		return nil, err
	}

	log := f.Log
	if log == nil {
		log = logger.Named("field")
	}

	fieldSeed := f.Config.Seed
	if fieldSeed < 0 {
		src := f.Random
		if src == nil {
			src = processSource()
		}
		fieldSeed = src.IntN(math.MaxInt32)
	}

	// Slots are drawn up front so a member's seed and position depend only
	// on the field seed and its index.
	stream := newStream(int64(fieldSeed), fieldStream)
	slots := make([]fieldSlot, f.Config.Count)
	for i := range slots {
		slots[i].seed = stream.IntN(math.MaxInt32)
		slots[i].position = mgl64.Vec3{
			(stream.Float64() - 0.5) * f.Config.Spread,
			(stream.Float64() - 0.5) * f.Config.Spread,
			(stream.Float64() - 0.5) * f.Config.Spread,
		}
	}

	workers := f.Config.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	members := make([]FieldMember, len(slots))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, slot := range slots {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			cfg := f.Base
			cfg.GlobalSeed = slot.seed
			cfg.NoiseLayers = append([]NoiseLayer(nil), f.Base.NoiseLayers...)

			var sink MeshSink = &MemorySink{}
			if f.NewSink != nil {
				sink = f.NewSink(i)
			}
			opts := []Option{
				WithMeshSink(sink),
				WithLogger(log.With(zap.Int("member", i))),
			}
			if f.NewPhysics != nil {
				opts = append(opts, WithPhysicsSink(f.NewPhysics(i)))
			}
			if f.Bus != nil {
				opts = append(opts, WithBus(f.Bus))
			}

			a, err := NewGenerator(cfg, opts...).Generate()
			if err != nil {
				return fmt.Errorf("field member %d: %w", i, err)
			}
			members[i] = FieldMember{
				Index:    i,
				Position: slot.position,
				Asteroid: a,
				Sink:     sink,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Info("asteroid field generated",
		zap.Int("seed", fieldSeed),
		zap.Int("count", len(members)),
		zap.Int("workers", workers),
	)
	return members, nil
}
