// Package flight turns stick and trigger input into forces and torques on
// a physics body.
package flight

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"go.uber.org/multierr"
)

// ErrInvalidSettings wraps every flight settings validation failure.
var ErrInvalidSettings = errors.New("flight: invalid settings")

// Settings tunes how the ship responds to input. Forces and torques are
// applied as acceleration changes, so they do not depend on ship mass.
type Settings struct {
	ThrustForce float64 `yaml:"thrust_force"`
	BoostForce  float64 `yaml:"boost_force"`
	PitchTorque float64 `yaml:"pitch_torque"`
	YawTorque   float64 `yaml:"yaw_torque"`
	RollTorque  float64 `yaml:"roll_torque"`

	PitchInputSign float64 `yaml:"pitch_input_sign"`
	YawInputSign   float64 `yaml:"yaw_input_sign"`
	RollInputSign  float64 `yaml:"roll_input_sign"`

	AxisDeadzone    float64 `yaml:"axis_deadzone"`    // [0, 0.5]
	TriggerDeadzone float64 `yaml:"trigger_deadzone"` // [0, 0.5]
	InputSmoothing  float64 `yaml:"input_smoothing"`  // interp speed, 0 snaps

	MaxLinearSpeed          float64 `yaml:"max_linear_speed"`  // 0 is unlimited
	MaxAngularSpeed         float64 `yaml:"max_angular_speed"` // rad/s, 0 is unlimited
	OppositeRotationRateDeg float64 `yaml:"opposite_rotation_rate_deg"`
}

// DefaultSettings returns the stock ship tuning.
func DefaultSettings() Settings {
	return Settings{
		ThrustForce:             500000,
		BoostForce:              2000000,
		PitchTorque:             4,
		YawTorque:               15,
		RollTorque:              15,
		PitchInputSign:          1,
		YawInputSign:            1,
		RollInputSign:           -1,
		AxisDeadzone:            0.10,
		TriggerDeadzone:         0.05,
		InputSmoothing:          10,
		MaxLinearSpeed:          0,
		MaxAngularSpeed:         6,
		OppositeRotationRateDeg: 90,
	}
}

// Validate reports every out-of-range setting.
func (s Settings) Validate() error {
	var err error

	nonNegative := map[string]float64{
		"thrust_force":               s.ThrustForce,
		"boost_force":                s.BoostForce,
		"pitch_torque":               s.PitchTorque,
		"yaw_torque":                 s.YawTorque,
		"roll_torque":                s.RollTorque,
		"input_smoothing":            s.InputSmoothing,
		"max_linear_speed":           s.MaxLinearSpeed,
		"max_angular_speed":          s.MaxAngularSpeed,
		"opposite_rotation_rate_deg": s.OppositeRotationRateDeg,
	}
	for _, name := range sortedKeys(nonNegative) {
		if v := nonNegative[name]; math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			err = multierr.Append(err, fmt.Errorf("%s %v must be >= 0", name, v))
		}
	}

	if !(s.AxisDeadzone >= 0 && s.AxisDeadzone <= 0.5) {
		err = multierr.Append(err, fmt.Errorf("axis_deadzone %v not in [0, 0.5]", s.AxisDeadzone))
	}
	if !(s.TriggerDeadzone >= 0 && s.TriggerDeadzone <= 0.5) {
		err = multierr.Append(err, fmt.Errorf("trigger_deadzone %v not in [0, 0.5]", s.TriggerDeadzone))
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
