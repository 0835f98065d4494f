// Package scene schedules the actors of a running level and steps their
// physics.
package scene

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/spaaace/internal/logger"
	"github.com/Faultbox/spaaace/internal/physics"
)

// Actor is an object owned by a Scene.
type Actor interface {
	// Init is called once, before the first Update.
	Init() error

	// Update is called every frame before physics is stepped.
	Update(dt float64) error
}

// LateUpdater is implemented by actors that react to the stepped physics
// state, such as cameras.
type LateUpdater interface {
	LateUpdate(dt float64) error
}

// Bodied is implemented by actors with a rigid body. Adding one to a
// scene registers the body with the scene's world.
type Bodied interface {
	PhysicsBody() *physics.Body
}

// ErrNotInitialized is returned by Update before Init.
var ErrNotInitialized = errors.New("scene: not initialized")

// Scene runs actors in insertion order and steps the physics world between
// Update and LateUpdate.
type Scene struct {
	actors      []Actor
	world       *physics.World
	initialized bool
	log         *zap.Logger
}

// New creates an empty scene. A nil world gets a fresh one.
func New(world *physics.World, log *zap.Logger) *Scene {
	if log == nil {
		log = logger.Named("scene")
	}
	if world == nil {
		world = physics.NewWorld(log)
	}
	return &Scene{world: world, log: log}
}

// World returns the physics world.
func (s *Scene) World() *physics.World {
	return s.world
}

// Actors returns the scheduled actors in order.
func (s *Scene) Actors() []Actor {
	return s.actors
}

// Add schedules an actor. Actors added after Init are initialized
// immediately.
func (s *Scene) Add(a Actor) error {
	if s.initialized {
		if err := s.initActor(len(s.actors), a); err != nil {
			return err
		}
	}
	s.actors = append(s.actors, a)
	if b, ok := a.(Bodied); ok && b.PhysicsBody() != nil {
		s.world.Add(b.PhysicsBody())
	}
	return nil
}

// Init initializes every actor once, in order, and stops at the first
// failure.
func (s *Scene) Init() error {
	if s.initialized {
		return nil
	}
	for i, a := range s.actors {
		if err := s.initActor(i, a); err != nil {
			return err
		}
	}
	s.initialized = true
	s.log.Info("scene initialized", zap.Int("actors", len(s.actors)), zap.Int("bodies", s.world.Len()))
	return nil
}

func (s *Scene) initActor(i int, a Actor) error {
	if err := a.Init(); err != nil {
		return fmt.Errorf("init actor %d (%T): %w", i, a, err)
	}
	return nil
}

// Update advances one frame: actor updates, physics, then late updates.
func (s *Scene) Update(dt float64) error {
	if !s.initialized {
		return ErrNotInitialized
	}

	for i, a := range s.actors {
		if err := a.Update(dt); err != nil {
			return fmt.Errorf("update actor %d (%T): %w", i, a, err)
		}
	}

	s.world.Step(dt)

	for i, a := range s.actors {
		late, ok := a.(LateUpdater)
		if !ok {
			continue
		}
		if err := late.LateUpdate(dt); err != nil {
			return fmt.Errorf("late update actor %d (%T): %w", i, a, err)
		}
	}
	return nil
}
