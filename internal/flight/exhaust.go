package flight

import "math"

// ExhaustBell animates an engine nozzle from the thrust trigger: the bell
// widens and spins faster as thrust rises.
type ExhaustBell struct {
	ScaleMin      float64 `yaml:"scale_min"`
	ScaleMax      float64 `yaml:"scale_max"`
	RotationSpeed float64 `yaml:"rotation_speed"` // deg/s at full thrust

	rollDeg float64
}

// NewExhaustBell returns the stock bell.
func NewExhaustBell() *ExhaustBell {
	return &ExhaustBell{ScaleMin: 0.9, ScaleMax: 1.3, RotationSpeed: 360}
}

// Update advances the bell by dt seconds and returns its uniform scale and
// roll angle in degrees within [0, 360).
func (e *ExhaustBell) Update(dt, thrust float64) (scale, rollDeg float64) {
	t := math.Max(0, math.Min(1, thrust))
	scale = e.ScaleMin + (e.ScaleMax-e.ScaleMin)*t

	e.rollDeg = math.Mod(e.rollDeg+t*e.RotationSpeed*dt, 360)
	if e.rollDeg < 0 {
		e.rollDeg += 360
	}
	return scale, e.rollDeg
}

// RollDegrees returns the accumulated roll angle.
func (e *ExhaustBell) RollDegrees() float64 {
	return e.rollDeg
}
