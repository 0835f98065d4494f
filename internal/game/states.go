package game

import (
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/spaaace/internal/engine/camera"
	"github.com/Faultbox/spaaace/internal/engine/input"
	"github.com/Faultbox/spaaace/internal/engine/picking"
	"github.com/Faultbox/spaaace/internal/flight"
)

// FlightState flies the ship with the chase camera.
type FlightState struct {
	game *Game
}

// Enter is called when entering this state.
func (s *FlightState) Enter() error {
	s.game.log.Info("flight mode", zap.Stringer("camera", s.game.ship.Rig.Mode()))
	return nil
}

// Exit is called when leaving this state.
func (s *FlightState) Exit() error {
	s.game.ship.Input = flight.InputState{}
	s.game.ship.TrackHeld = false
	s.game.setThrottle(0, 0)
	return nil
}

// HandleInput processes single-press actions.
func (s *FlightState) HandleInput(ev input.Event) error {
	ship := s.game.ship
	switch {
	case isPress(ev, keyToggleCamera, sdl.CONTROLLER_BUTTON_Y):
		mode := ship.ToggleCamera()
		s.game.log.Debug("camera mode", zap.Stringer("mode", mode))
	case isPress(ev, keyZeroRotation, sdl.CONTROLLER_BUTTON_BACK):
		ship.ZeroRotation()
	case isPress(ev, keyInspect, sdl.CONTROLLER_BUTTON_START):
		s.game.states.Change(s.game.inspect)
	}
	return nil
}

// Update reads held controls and steps the scene.
func (s *FlightState) Update(dt float64) error {
	ship := s.game.ship
	ship.Input, ship.TrackHeld = shipControls(s.game.input)
	if err := s.game.scene.Update(dt); err != nil {
		return err
	}
	s.game.setThrottle(ship.Controller.SmoothedThrust(), ship.Input.Boost)
	return nil
}

// Render draws from the ship camera.
func (s *FlightState) Render() error {
	s.game.drawWorld(s.game.ship.Rig.ViewMatrix(), -1)
	return nil
}

// InspectState orbits a selected asteroid. The scene keeps running with
// the ship coasting.
type InspectState struct {
	game     *Game
	orbit    *camera.OrbitCamera
	selected int
}

func newInspectState(g *Game) *InspectState {
	return &InspectState{game: g, orbit: camera.NewOrbitCamera()}
}

// Enter is called when entering this state.
func (s *InspectState) Enter() error {
	s.focus()
	return nil
}

// Exit is called when leaving this state.
func (s *InspectState) Exit() error {
	return nil
}

// HandleInput handles selection, regeneration and orbit controls.
func (s *InspectState) HandleInput(ev input.Event) error {
	switch {
	case isPress(ev, keyInspect, sdl.CONTROLLER_BUTTON_START):
		s.game.states.Change(s.game.flight)
	case isPress(ev, keyNext, sdl.CONTROLLER_BUTTON_DPAD_RIGHT):
		s.selected = wrapIndex(s.selected+1, len(s.game.asteroids))
		s.focus()
	case isPress(ev, keyPrev, sdl.CONTROLLER_BUTTON_DPAD_LEFT):
		s.selected = wrapIndex(s.selected-1, len(s.game.asteroids))
		s.focus()
	case isPress(ev, keyRegenerate, sdl.CONTROLLER_BUTTON_A):
		return s.regenerate()
	case ev.Type == input.EventMouseDown && ev.Button == sdl.BUTTON_RIGHT:
		if i := s.pick(ev.MouseX, ev.MouseY); i >= 0 {
			s.selected = i
			s.focus()
		}
	case ev.Type == input.EventMouseWheel:
		s.orbit.HandleZoom(float64(ev.WheelY))
	case ev.Type == input.EventMouseMove && s.game.input.IsMouseHeld(sdl.BUTTON_LEFT):
		s.orbit.HandleDrag(float64(ev.RelX), float64(ev.RelY))
	}
	return nil
}

// pick returns the asteroid under the cursor, or -1.
func (s *InspectState) pick(x, y int) int {
	cfg := s.game.renderer.Config()
	ray := picking.ScreenToRay(float64(x), float64(y), float64(cfg.Width), float64(cfg.Height),
		s.game.renderer.ViewProj().Inv())

	targets := make([]picking.Target, 0, len(s.game.asteroids))
	index := make([]int, 0, len(s.game.asteroids))
	for i, a := range s.game.asteroids {
		hull, ok := s.game.uploaders[i].Hull()
		if !ok {
			continue
		}
		targets = append(targets, picking.Target{
			Position:    a.Body.Position,
			Orientation: a.Body.Orientation,
			Min:         hull.Min,
			Max:         hull.Max,
			Radius:      hull.Radius,
		})
		index = append(index, i)
	}
	if hit := picking.Nearest(ray, targets); hit >= 0 {
		return index[hit]
	}
	return -1
}

// regenerate rebuilds the selected asteroid with a fresh random seed.
func (s *InspectState) regenerate() error {
	if len(s.game.asteroids) == 0 {
		return nil
	}
	a := s.game.asteroids[s.selected]
	result, err := a.Regenerate(-1)
	if err != nil {
		return err
	}
	s.game.uploaders[s.selected].Flush()
	s.game.log.Info("asteroid regenerated",
		zap.Int("index", s.selected),
		zap.Int("seed", result.GlobalSeed),
		zap.Float64("radius", result.Stats.Radius),
		zap.Float64("mass", result.Stats.Mass),
	)
	s.focus()
	return nil
}

// focus frames the selected asteroid, or the ship when the field is empty.
func (s *InspectState) focus() {
	if len(s.game.asteroids) == 0 {
		pos := s.game.ship.Body.Position
		s.orbit.FitToBounds(pos.Sub(shipHalfExtents), pos.Add(shipHalfExtents))
		return
	}
	s.selected = wrapIndex(s.selected, len(s.game.asteroids))
	a := s.game.asteroids[s.selected]
	hull, ok := s.game.uploaders[s.selected].Hull()
	if !ok {
		s.orbit.SetCenter(a.Body.Position)
		return
	}
	s.orbit.FitToBounds(a.Body.Position.Add(hull.Min), a.Body.Position.Add(hull.Max))
	if r := a.Asteroid(); r != nil {
		s.game.log.Info("inspecting asteroid",
			zap.Int("index", s.selected),
			zap.Int("seed", r.GlobalSeed),
			zap.Float64("radius", r.Stats.Radius),
			zap.Float64("mass", r.Stats.Mass),
		)
	}
}

// Update steps the scene with the ship's controls released.
func (s *InspectState) Update(dt float64) error {
	return s.game.scene.Update(dt)
}

// Render draws from the orbit camera.
func (s *InspectState) Render() error {
	s.game.drawWorld(s.orbit.ViewMatrix(), s.selected)
	return nil
}

// isPress reports a key or gamepad button press.
func isPress(ev input.Event, key sdl.Scancode, button sdl.GameControllerButton) bool {
	switch ev.Type {
	case input.EventKeyDown:
		return ev.Key == key
	case input.EventPadButtonDown:
		return ev.Button == uint8(button)
	}
	return false
}

// wrapIndex maps i into [0, n). n <= 0 yields 0.
func wrapIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}
