package scene

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/spaaace/internal/asteroid"
	"github.com/Faultbox/spaaace/internal/event"
	"github.com/Faultbox/spaaace/internal/physics"
)

// AsteroidActor is a generated asteroid with a rigid body.
type AsteroidActor struct {
	Body *physics.Body

	gen    *asteroid.Generator
	sink   asteroid.MeshSink
	result *asteroid.Asteroid
}

// NewAsteroidActor creates an asteroid that generates on Init. The body
// receives the computed mass.
func NewAsteroidActor(cfg asteroid.GenerationConfig, sink asteroid.MeshSink, position mgl64.Vec3, opts ...asteroid.Option) *AsteroidActor {
	body := physics.NewBody()
	body.Position = position

	opts = append([]asteroid.Option{
		asteroid.WithMeshSink(sink),
		asteroid.WithPhysicsSink(body),
	}, opts...)

	return &AsteroidActor{
		Body: body,
		gen:  asteroid.NewGenerator(cfg, opts...),
		sink: sink,
	}
}

// Init generates the asteroid unless it was generated ahead of time.
func (a *AsteroidActor) Init() error {
	if a.result != nil {
		return nil
	}
	_, err := a.generate()
	return err
}

// Update implements Actor. Asteroids only drift with their body.
func (a *AsteroidActor) Update(float64) error {
	return nil
}

// Regenerate rebuilds the asteroid with a new global seed.
func (a *AsteroidActor) Regenerate(seed int) (*asteroid.Asteroid, error) {
	cfg := a.gen.Config()
	cfg.GlobalSeed = seed
	a.gen.SetConfig(cfg)
	return a.generate()
}

func (a *AsteroidActor) generate() (*asteroid.Asteroid, error) {
	result, err := a.gen.Generate()
	if err != nil {
		return nil, err
	}
	a.result = result
	return result, nil
}

// PhysicsBody implements Bodied.
func (a *AsteroidActor) PhysicsBody() *physics.Body {
	return a.Body
}

// Asteroid returns the last generated asteroid, or nil before Init.
func (a *AsteroidActor) Asteroid() *asteroid.Asteroid {
	return a.result
}

// Sink returns the mesh sink the asteroid uploads to.
func (a *AsteroidActor) Sink() asteroid.MeshSink {
	return a.sink
}

// Events returns the generation-complete bus.
func (a *AsteroidActor) Events() *event.Bus[asteroid.Stats] {
	return a.gen.Events()
}

// SpawnField generates a field concurrently and wraps each member in an
// actor that is already initialized. newSink must be safe to call from
// several goroutines, as must the sinks it returns.
func SpawnField(ctx context.Context, field asteroid.Field, newSink func(i int) asteroid.MeshSink, log *zap.Logger) ([]*AsteroidActor, error) {
	if newSink == nil {
		newSink = func(int) asteroid.MeshSink { return &asteroid.MemorySink{} }
	}

	// A negative count is left for Generate to reject.
	bodies := make([]*physics.Body, max(field.Config.Count, 0))
	for i := range bodies {
		bodies[i] = physics.NewBody()
	}
	field.NewSink = newSink
	field.NewPhysics = func(i int) asteroid.PhysicsSink { return bodies[i] }
	if log != nil {
		field.Log = log
	}

	members, err := field.Generate(ctx)
	if err != nil {
		return nil, fmt.Errorf("spawning asteroid field: %w", err)
	}

	actors := make([]*AsteroidActor, len(members))
	for i, m := range members {
		cfg := field.Base
		cfg.GlobalSeed = m.Asteroid.GlobalSeed

		var opts []asteroid.Option
		if field.Bus != nil {
			opts = append(opts, asteroid.WithBus(field.Bus))
		}
		if field.Log != nil {
			opts = append(opts, asteroid.WithLogger(field.Log.With(zap.Int("member", i))))
		}

		body := bodies[i]
		body.Position = m.Position
		actors[i] = &AsteroidActor{
			Body:   body,
			gen:    asteroid.NewGenerator(cfg, append(opts, asteroid.WithMeshSink(m.Sink), asteroid.WithPhysicsSink(body))...),
			sink:   m.Sink,
			result: m.Asteroid,
		}
	}
	return actors, nil
}
