package physics

import "go.uber.org/zap"

// World steps a set of bodies together.
type World struct {
	bodies []*Body
	log    *zap.Logger
}

// NewWorld creates an empty world. A nil logger disables logging.
func NewWorld(log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	return &World{log: log}
}

// Add registers a body. Adding the same body twice is a no-op.
func (w *World) Add(b *Body) {
	for _, existing := range w.bodies {
		if existing == b {
			return
		}
	}
	w.bodies = append(w.bodies, b)
	w.log.Debug("body added", zap.Int("bodies", len(w.bodies)), zap.Float64("mass", b.Mass))
}

// Remove unregisters a body and reports whether it was present.
func (w *World) Remove(b *Body) bool {
	for i, existing := range w.bodies {
		if existing == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

// Step advances every body by dt seconds.
func (w *World) Step(dt float64) {
	for _, b := range w.bodies {
		b.Step(dt)
	}
}
