// Package physics integrates rigid bodies for the flight model.
//
// Local axes follow the ship convention: +X forward (roll), +Y right
// (pitch), +Z up (yaw).
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Body is a rigid body with a scalar moment of inertia.
type Body struct {
	Position        mgl64.Vec3
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3 // world space, rad/s
	Orientation     mgl64.Quat

	Mass     float64 // kg
	Inertia  float64 // zero uses Mass
	Simulate bool

	LinearDamping  float64
	AngularDamping float64

	// Accumulated accelerations, cleared by Step.
	linearAccel  mgl64.Vec3
	angularAccel mgl64.Vec3
}

// NewBody returns a simulating unit-mass body at the origin.
func NewBody() *Body {
	return &Body{
		Orientation: mgl64.QuatIdent(),
		Mass:        1,
		Simulate:    true,
	}
}

// SetMass sets the body mass in kilograms. Non-positive or non-finite
// masses are ignored so the body never divides by zero.
func (b *Body) SetMass(kg float64, simulate bool) {
	if kg > 0 && !math.IsInf(kg, 0) {
		b.Mass = kg
	}
	b.Simulate = simulate
}

// AddForce accumulates a world-space force for the next Step. With
// accelChange the force is treated as an acceleration and mass is ignored.
func (b *Body) AddForce(f mgl64.Vec3, accelChange bool) {
	if !accelChange {
		f = f.Mul(1 / b.Mass)
	}
	b.linearAccel = b.linearAccel.Add(f)
}

// AddTorque accumulates a world-space torque in radians for the next Step.
func (b *Body) AddTorque(t mgl64.Vec3, accelChange bool) {
	if !accelChange {
		t = t.Mul(1 / b.inertia())
	}
	b.angularAccel = b.angularAccel.Add(t)
}

// Step advances the body by dt seconds with semi-implicit Euler.
func (b *Body) Step(dt float64) {
	defer b.clearAccumulators()
	if !b.Simulate || dt <= 0 {
		return
	}

	b.Velocity = b.Velocity.Add(b.linearAccel.Mul(dt))
	b.Velocity = b.Velocity.Mul(damping(b.LinearDamping, dt))
	b.Position = b.Position.Add(b.Velocity.Mul(dt))

	b.AngularVelocity = b.AngularVelocity.Add(b.angularAccel.Mul(dt))
	b.AngularVelocity = b.AngularVelocity.Mul(damping(b.AngularDamping, dt))
	b.integrateOrientation(dt)
}

func (b *Body) integrateOrientation(dt float64) {
	w := b.AngularVelocity
	angle := w.Len() * dt
	if angle == 0 {
		return
	}
	spin := mgl64.QuatRotate(angle, w.Normalize())
	b.Orientation = spin.Mul(b.Orientation).Normalize()
}

func (b *Body) clearAccumulators() {
	b.linearAccel = mgl64.Vec3{}
	b.angularAccel = mgl64.Vec3{}
}

func (b *Body) inertia() float64 {
	if b.Inertia > 0 {
		return b.Inertia
	}
	return b.Mass
}

// damping returns the velocity scale for one step: 1 / (1 + c·dt).
func damping(c, dt float64) float64 {
	if c <= 0 {
		return 1
	}
	return 1 / (1 + c*dt)
}

// Forward returns the world-space local +X axis.
func (b *Body) Forward() mgl64.Vec3 {
	return b.Orientation.Rotate(mgl64.Vec3{1, 0, 0})
}

// Right returns the world-space local +Y axis.
func (b *Body) Right() mgl64.Vec3 {
	return b.Orientation.Rotate(mgl64.Vec3{0, 1, 0})
}

// Up returns the world-space local +Z axis.
func (b *Body) Up() mgl64.Vec3 {
	return b.Orientation.Rotate(mgl64.Vec3{0, 0, 1})
}

// ToLocal rotates a world-space direction into body space.
func (b *Body) ToLocal(v mgl64.Vec3) mgl64.Vec3 {
	return b.Orientation.Conjugate().Rotate(v)
}

// ClampLinearSpeed caps |Velocity| at max. Non-positive max disables it.
func (b *Body) ClampLinearSpeed(max float64) {
	b.Velocity = clampLen(b.Velocity, max)
}

// ClampAngularSpeed caps |AngularVelocity| at max rad/s.
func (b *Body) ClampAngularSpeed(max float64) {
	b.AngularVelocity = clampLen(b.AngularVelocity, max)
}

func clampLen(v mgl64.Vec3, max float64) mgl64.Vec3 {
	if max <= 0 {
		return v
	}
	if l := v.Len(); l > max {
		return v.Mul(max / l)
	}
	return v
}
