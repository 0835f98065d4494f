package camera

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/spaaace/internal/physics"
)

// Mode selects how the chase rig places the eye.
type Mode int

const (
	// ModeChase follows from a pivot that keeps its own heading.
	ModeChase Mode = iota
	// ModeChase2 follows from behind the direction of travel.
	ModeChase2
	// ModeNose sits on the ship's nose.
	ModeNose
)

var modeNames = [...]string{"chase", "chase2", "nose"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Next returns the mode Toggle switches to.
func (m Mode) Next() Mode {
	switch m {
	case ModeChase:
		return ModeChase2
	case ModeChase2:
		return ModeNose
	default:
		return ModeChase
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	for i, name := range modeNames {
		if string(text) == name {
			*m = Mode(i)
			return nil
		}
	}
	return fmt.Errorf("unknown camera mode %q", text)
}

// RigSettings places the chase and nose cameras in ship space.
type RigSettings struct {
	Mode        Mode       `yaml:"mode"`
	PivotOffset mgl64.Vec3 `yaml:"pivot_offset"`
	StickOffset mgl64.Vec3 `yaml:"stick_offset"`
	MatchRoll   bool       `yaml:"match_roll"`

	NoseOffsetForward     float64 `yaml:"nose_offset_forward"`
	NoseOffsetUp          float64 `yaml:"nose_offset_up"`
	NoseRotationLerpSpeed float64 `yaml:"nose_rotation_lerp_speed"`

	// TrackMaxSeconds is how long camera-track takes to swing a half turn.
	TrackMaxSeconds float64 `yaml:"track_max_seconds"`
}

// DefaultRigSettings returns the stock rig.
func DefaultRigSettings() RigSettings {
	return RigSettings{
		Mode:                  ModeChase,
		StickOffset:           mgl64.Vec3{-1000, 0, 150},
		NoseOffsetForward:     100,
		NoseOffsetUp:          20,
		NoseRotationLerpSpeed: 10,
		TrackMaxSeconds:       5,
	}
}

// chase2MinSpeed is the speed below which Chase2 falls back to the ship's
// forward axis.
const chase2MinSpeed = 10.0

// ChaseRig computes the view for a ship body.
type ChaseRig struct {
	Settings RigSettings

	mode     Mode
	pivotRot mgl64.Quat // ModeChase pivot, world space
	noseRot  mgl64.Quat
	snapNose bool
	started  bool

	tracking bool

	eye, target, up mgl64.Vec3
}

// NewChaseRig returns a rig in the configured starting mode.
func NewChaseRig(s RigSettings) *ChaseRig {
	return &ChaseRig{
		Settings: s,
		mode:     s.Mode,
		pivotRot: mgl64.QuatIdent(),
		noseRot:  mgl64.QuatIdent(),
		snapNose: true,
		up:       worldUp,
		target:   mgl64.Vec3{1, 0, 0},
	}
}

// Mode returns the active mode.
func (r *ChaseRig) Mode() Mode {
	return r.mode
}

// Toggle cycles Chase, Chase2, Nose. Entering Nose snaps to the ship's
// orientation on the next Update.
func (r *ChaseRig) Toggle() Mode {
	r.mode = r.mode.Next()
	if r.mode == ModeNose {
		r.snapNose = true
	}
	return r.mode
}

// Tracking reports whether camera-track is swinging the pivot.
func (r *ChaseRig) Tracking() bool {
	return r.tracking
}

// Update places the eye for body. While trackHeld, the chase pivot swings
// toward the ship's heading, faster when there is less left to turn.
func (r *ChaseRig) Update(dt float64, body *physics.Body, trackHeld bool) {
	if body == nil {
		return
	}
	if !r.started {
		r.pivotRot = body.Orientation
		r.started = true
	}

	r.tickTrack(dt, body, trackHeld)

	pivot := body.Position.Add(body.Orientation.Rotate(r.Settings.PivotOffset))

	switch r.mode {
	case ModeChase:
		r.eye = pivot.Add(r.pivotRot.Rotate(r.Settings.StickOffset))
		r.target = body.Position
		r.up = r.pivotRot.Rotate(worldUp)
		if r.Settings.MatchRoll {
			r.up = body.Up()
		}

	case ModeChase2:
		dir := body.Forward()
		if body.Velocity.Len() > chase2MinSpeed {
			dir = body.Velocity.Normalize()
		}
		rot := headingRotation(dir, body.Up())
		r.eye = pivot.Add(rot.Rotate(r.Settings.StickOffset))
		r.target = body.Position
		r.up = rot.Rotate(worldUp)

	case ModeNose:
		if r.snapNose {
			r.noseRot = body.Orientation
			r.snapNose = false
		} else {
			t := mgl64.Clamp(dt*r.Settings.NoseRotationLerpSpeed, 0, 1)
			r.noseRot = mgl64.QuatSlerp(r.noseRot, body.Orientation, t)
		}
		nose := mgl64.Vec3{r.Settings.NoseOffsetForward, 0, r.Settings.NoseOffsetUp}
		r.eye = body.Position.Add(body.Orientation.Rotate(nose))
		r.target = r.eye.Add(r.noseRot.Rotate(mgl64.Vec3{1, 0, 0}))
		r.up = r.noseRot.Rotate(worldUp)
	}
}

func (r *ChaseRig) tickTrack(dt float64, body *physics.Body, held bool) {
	if !held {
		r.tracking = false
		return
	}
	r.tracking = true

	remaining := math.Abs(deltaAngleDeg(yawDeg(r.pivotRot), yawDeg(body.Orientation)))
	maxSeconds := r.Settings.TrackMaxSeconds
	segment := mgl64.Clamp(remaining/180*maxSeconds, 0.01, math.Max(maxSeconds, 0.01))
	t := mgl64.Clamp(dt/segment, 0, 1)

	r.pivotRot = mgl64.QuatSlerp(r.pivotRot, body.Orientation, t).Normalize()
}

// Eye returns the camera position.
func (r *ChaseRig) Eye() mgl64.Vec3 {
	return r.eye
}

// Target returns the point the camera looks at.
func (r *ChaseRig) Target() mgl64.Vec3 {
	return r.target
}

// ViewMatrix returns the world-to-view transform.
func (r *ChaseRig) ViewMatrix() mgl64.Mat4 {
	return mgl64.LookAtV(r.eye, r.target, r.up)
}

// headingRotation returns a rotation taking +X to dir with +Z as close to
// up as possible.
func headingRotation(dir, up mgl64.Vec3) mgl64.Quat {
	fwd := dir.Normalize()
	right := up.Cross(fwd)
	if right.Len() < 1e-6 {
		right = worldUp.Cross(fwd)
		if right.Len() < 1e-6 {
			right = mgl64.Vec3{0, 1, 0}
		}
	}
	right = right.Normalize()
	newUp := fwd.Cross(right)

	m := mgl64.Mat3FromCols(fwd, right, newUp)
	return mgl64.Mat4ToQuat(m.Mat4())
}

// yawDeg is the heading of the rotated +X axis around Z.
func yawDeg(q mgl64.Quat) float64 {
	f := q.Rotate(mgl64.Vec3{1, 0, 0})
	return mgl64.RadToDeg(math.Atan2(f.Y(), f.X()))
}

// deltaAngleDeg returns b-a wrapped to [-180, 180].
func deltaAngleDeg(a, b float64) float64 {
	d := math.Mod(b-a, 360)
	switch {
	case d > 180:
		d -= 360
	case d < -180:
		d += 360
	}
	return d
}
