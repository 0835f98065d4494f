package scene

import (
	"go.uber.org/zap"

	"github.com/Faultbox/spaaace/internal/engine/camera"
	"github.com/Faultbox/spaaace/internal/flight"
	"github.com/Faultbox/spaaace/internal/physics"
)

// DefaultShipMass is the ship body mass in kilograms. Flight forces are
// acceleration changes, so it only matters for collisions.
const DefaultShipMass = 25000

// ShipActor is the player ship: body, flight controller, chase camera and
// exhaust animation.
type ShipActor struct {
	Body       *physics.Body
	Controller *flight.Controller
	Rig        *camera.ChaseRig
	Exhaust    *flight.ExhaustBell

	// Set by the game before each Update.
	Input     flight.InputState
	TrackHeld bool

	mass         float64
	exhaustScale float64
	exhaustRoll  float64
}

// NewShipActor creates a ship at the origin.
func NewShipActor(settings flight.Settings, rig camera.RigSettings, log *zap.Logger) *ShipActor {
	return &ShipActor{
		Body:         physics.NewBody(),
		Controller:   flight.NewController(settings, log),
		Rig:          camera.NewChaseRig(rig),
		Exhaust:      flight.NewExhaustBell(),
		mass:         DefaultShipMass,
		exhaustScale: 1,
	}
}

// Init sets the body mass and places the camera.
func (s *ShipActor) Init() error {
	s.Body.SetMass(s.mass, true)
	s.Rig.Update(0, s.Body, false)
	s.exhaustScale, s.exhaustRoll = s.Exhaust.Update(0, 0)
	return nil
}

// Update applies pilot input to the body and animates the exhaust.
func (s *ShipActor) Update(dt float64) error {
	s.Controller.Update(dt, s.Input, s.Body)
	s.exhaustScale, s.exhaustRoll = s.Exhaust.Update(dt, s.Controller.SmoothedThrust())
	return nil
}

// LateUpdate moves the camera to the stepped body.
func (s *ShipActor) LateUpdate(dt float64) error {
	s.Rig.Update(dt, s.Body, s.TrackHeld)
	return nil
}

// PhysicsBody implements Bodied.
func (s *ShipActor) PhysicsBody() *physics.Body {
	return s.Body
}

// ToggleCamera cycles the camera mode.
func (s *ShipActor) ToggleCamera() camera.Mode {
	return s.Rig.Toggle()
}

// ZeroRotation stops the ship spinning.
func (s *ShipActor) ZeroRotation() {
	s.Controller.ZeroRotation(s.Body)
}

// ExhaustTransform returns the bell scale and roll in degrees.
func (s *ShipActor) ExhaustTransform() (scale, rollDeg float64) {
	return s.exhaustScale, s.exhaustRoll
}
