package flight

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/spaaace/internal/logger"
	"github.com/Faultbox/spaaace/internal/physics"
)

// InputState is one frame of pilot input.
type InputState struct {
	LeftStick      mgl64.Vec2 // X roll, Y pitch
	RightStick     mgl64.Vec2 // X yaw
	Thrust         float64    // [0, 1]
	Boost          float64    // [0, 1]
	OrientOpposite bool
}

// ThrusterWeights are the [0, 1] shares of the last applied force along
// each local axis, for driving exhaust effects.
type ThrusterWeights struct {
	Forward, Backward float64
	Right, Left       float64
	Up, Down          float64
}

const (
	// orientMinSpeedSq is the squared speed below which orient-opposite
	// has no travel direction to face away from.
	orientMinSpeedSq = 100.0
	orientStopAngle  = math.Pi / 180
	manualInputLevel = 0.1
)

// Controller applies Settings to a physics body each frame. It keeps
// smoothed input between frames, so use one Controller per ship.
type Controller struct {
	Settings Settings

	smoothedLeft   mgl64.Vec2
	smoothedRight  mgl64.Vec2
	smoothedThrust float64

	orientingOpposite bool
	weights           ThrusterWeights

	warnedNoBody    bool
	warnedNoPhysics bool
	log             *zap.Logger
}

// NewController returns a controller. A nil logger uses the flight logger.
func NewController(s Settings, log *zap.Logger) *Controller {
	if log == nil {
		log = logger.Named("flight")
	}
	return &Controller{Settings: s, log: log}
}

// Update reads input, pushes forces and torques into body and clamps its
// speeds. Forces take effect on the body's next Step.
func (c *Controller) Update(dt float64, in InputState, body *physics.Body) {
	if body == nil {
		if !c.warnedNoBody {
			c.warnedNoBody = true
			c.log.Warn("no body to control")
		}
		return
	}
	if !body.Simulate {
		if !c.warnedNoPhysics {
			c.warnedNoPhysics = true
			c.log.Warn("controlled body is not simulating physics")
		}
		return
	}

	c.applyForcesAndTorques(dt, in, body)
	body.ClampLinearSpeed(c.Settings.MaxLinearSpeed)
	body.ClampAngularSpeed(c.Settings.MaxAngularSpeed)
}

func (c *Controller) applyForcesAndTorques(dt float64, in InputState, body *physics.Body) {
	s := c.Settings

	left := deadzone2D(in.LeftStick, s.AxisDeadzone)
	right := deadzone2D(in.RightStick, s.AxisDeadzone)
	thrust := deadzone(in.Thrust, s.TriggerDeadzone)
	boost := mgl64.Clamp(in.Boost, 0, 1)

	c.smoothedLeft = interpTo2D(c.smoothedLeft, left, dt, s.InputSmoothing)
	c.smoothedRight = interpTo2D(c.smoothedRight, right, dt, s.InputSmoothing)
	c.smoothedThrust = interpTo(c.smoothedThrust, thrust, dt, s.InputSmoothing)

	forward, rightAxis, up := body.Forward(), body.Right(), body.Up()

	force := forward.Mul(c.smoothedThrust * s.ThrustForce)
	force = force.Mul(mapAlignmentToThrustScale(cosineSimilarity01(force, body.Velocity)))
	if boost > 0 {
		force = force.Add(forward.Mul(s.BoostForce * boost))
	}
	body.AddForce(force, true)

	torque := up.Mul(c.smoothedRight.X() * s.YawTorque * s.YawInputSign).
		Add(rightAxis.Mul(c.smoothedLeft.Y() * s.PitchTorque * s.PitchInputSign)).
		Add(forward.Mul(c.smoothedLeft.X() * s.RollTorque * s.RollInputSign))
	body.AddTorque(torque, true)

	manual := math.Abs(c.smoothedLeft.X()) > manualInputLevel ||
		math.Abs(c.smoothedLeft.Y()) > manualInputLevel ||
		math.Abs(c.smoothedRight.X()) > manualInputLevel
	if c.orientingOpposite && manual {
		c.orientingOpposite = false
		c.log.Debug("orient opposite cancelled by stick input")
	}

	c.weights = thrusterWeights(body, force)

	switch {
	case in.OrientOpposite:
		c.orientOpposite(body)
	case c.orientingOpposite:
		body.AngularVelocity = mgl64.Vec3{}
		c.orientingOpposite = false
	}
}

// orientOpposite spins the body toward its reverse travel direction at the
// configured rate and stops once within a degree.
func (c *Controller) orientOpposite(body *physics.Body) {
	v := body.Velocity
	if v.Dot(v) <= orientMinSpeedSq {
		return
	}

	target := v.Normalize().Mul(-1)
	fwd := body.Forward()
	angle := math.Acos(mgl64.Clamp(fwd.Dot(target), -1, 1))

	if angle < orientStopAngle {
		body.AngularVelocity = mgl64.Vec3{}
	} else {
		axis := fwd.Cross(target)
		if axis.Dot(axis) < 1e-4 {
			axis = body.Up()
		}
		rate := mgl64.DegToRad(c.Settings.OppositeRotationRateDeg)
		body.AngularVelocity = axis.Normalize().Mul(rate)
	}
	c.orientingOpposite = true
}

// ZeroRotation stops the body spinning and cancels orient-opposite.
func (c *Controller) ZeroRotation(body *physics.Body) {
	if body == nil {
		return
	}
	body.AngularVelocity = mgl64.Vec3{}
	c.orientingOpposite = false
}

// OrientingOpposite reports whether an orient-opposite maneuver is active.
func (c *Controller) OrientingOpposite() bool {
	return c.orientingOpposite
}

// Weights returns the thruster weights of the last Update.
func (c *Controller) Weights() ThrusterWeights {
	return c.weights
}

// SmoothedThrust returns the filtered thrust trigger in [0, 1].
func (c *Controller) SmoothedThrust() float64 {
	return c.smoothedThrust
}

func deadzone(v, dz float64) float64 {
	if math.Abs(v) < dz {
		return 0
	}
	return v
}

func deadzone2D(v mgl64.Vec2, dz float64) mgl64.Vec2 {
	if v.Len() < dz {
		return mgl64.Vec2{}
	}
	return v
}

// interpTo moves current toward target by a dt·speed fraction of the
// remaining distance. A non-positive speed snaps to target.
func interpTo(current, target, dt, speed float64) float64 {
	if speed <= 0 {
		return target
	}
	dist := target - current
	if dist*dist < 1e-8 {
		return target
	}
	return current + dist*mgl64.Clamp(dt*speed, 0, 1)
}

func interpTo2D(current, target mgl64.Vec2, dt, speed float64) mgl64.Vec2 {
	if speed <= 0 {
		return target
	}
	dist := target.Sub(current)
	if dist.Dot(dist) < 1e-8 {
		return target
	}
	return current.Add(dist.Mul(mgl64.Clamp(dt*speed, 0, 1)))
}

// cosineSimilarity01 maps the angle between a and b onto [0, 1]: 1 when
// aligned, 0 when opposed, 0.5 when either is zero.
func cosineSimilarity01(a, b mgl64.Vec3) float64 {
	d := safeNormal(a).Dot(safeNormal(b))
	return mgl64.Clamp(d*0.5+0.5, 0, 1)
}

// mapAlignmentToThrustScale weakens thrust that fights the current
// velocity: 0.25 when opposed up to 1 when aligned.
func mapAlignmentToThrustScale(cos01 float64) float64 {
	const opposite, aligned, bias = 0.25, 1.0, 1.5
	t := math.Pow(cos01, bias)
	return opposite + (aligned-opposite)*t
}

func thrusterWeights(body *physics.Body, force mgl64.Vec3) ThrusterWeights {
	local := safeNormal(body.ToLocal(force))
	return ThrusterWeights{
		Forward:  mgl64.Clamp(local.X(), 0, 1),
		Backward: mgl64.Clamp(-local.X(), 0, 1),
		Right:    mgl64.Clamp(local.Y(), 0, 1),
		Left:     mgl64.Clamp(-local.Y(), 0, 1),
		Up:       mgl64.Clamp(local.Z(), 0, 1),
		Down:     mgl64.Clamp(-local.Z(), 0, 1),
	}
}

func safeNormal(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < 1e-8 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}
