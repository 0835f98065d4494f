package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/spaaace/internal/flight"
)

// controlSource is the held input state the ship reads each frame.
type controlSource interface {
	IsKeyHeld(sdl.Scancode) bool
	HasPad() bool
	PadAxis(sdl.GameControllerAxis) float64
	IsPadHeld(sdl.GameControllerButton) bool
}

// Keyboard bindings. Gamepad: left stick roll and pitch, right stick yaw,
// left trigger thrust, right trigger boost, X orient opposite, right
// shoulder camera track.
const (
	keyPitchDown = sdl.SCANCODE_W
	keyPitchUp   = sdl.SCANCODE_S
	keyRollLeft  = sdl.SCANCODE_A
	keyRollRight = sdl.SCANCODE_D
	keyYawLeft   = sdl.SCANCODE_Q
	keyYawRight  = sdl.SCANCODE_E
	keyThrust    = sdl.SCANCODE_SPACE
	keyBoost     = sdl.SCANCODE_LSHIFT
	keyOpposite  = sdl.SCANCODE_X
	keyTrack     = sdl.SCANCODE_T

	keyToggleCamera = sdl.SCANCODE_C
	keyZeroRotation = sdl.SCANCODE_Z
	keyInspect      = sdl.SCANCODE_TAB
	keyRegenerate   = sdl.SCANCODE_R
	keyNext         = sdl.SCANCODE_RIGHT
	keyPrev         = sdl.SCANCODE_LEFT
	keyScreenshot   = sdl.SCANCODE_F12
	keyQuit         = sdl.SCANCODE_ESCAPE
)

// shipControls reads the pilot input. Keyboard and gamepad add up; the
// controller clamps and filters the result.
func shipControls(src controlSource) (in flight.InputState, trackHeld bool) {
	in.LeftStick = mgl64.Vec2{
		keyAxis(src, keyRollLeft, keyRollRight),
		keyAxis(src, keyPitchDown, keyPitchUp),
	}
	in.RightStick = mgl64.Vec2{keyAxis(src, keyYawLeft, keyYawRight), 0}
	if src.IsKeyHeld(keyThrust) {
		in.Thrust = 1
	}
	if src.IsKeyHeld(keyBoost) {
		in.Boost = 1
	}
	in.OrientOpposite = src.IsKeyHeld(keyOpposite)
	trackHeld = src.IsKeyHeld(keyTrack)

	if src.HasPad() {
		in.LeftStick = in.LeftStick.Add(mgl64.Vec2{
			src.PadAxis(sdl.CONTROLLER_AXIS_LEFTX),
			src.PadAxis(sdl.CONTROLLER_AXIS_LEFTY),
		})
		in.RightStick[0] += src.PadAxis(sdl.CONTROLLER_AXIS_RIGHTX)
		in.Thrust = max(in.Thrust, src.PadAxis(sdl.CONTROLLER_AXIS_TRIGGERLEFT))
		in.Boost = max(in.Boost, src.PadAxis(sdl.CONTROLLER_AXIS_TRIGGERRIGHT))
		in.OrientOpposite = in.OrientOpposite || src.IsPadHeld(sdl.CONTROLLER_BUTTON_X)
		trackHeld = trackHeld || src.IsPadHeld(sdl.CONTROLLER_BUTTON_RIGHTSHOULDER)
	}

	in.LeftStick = clampStick(in.LeftStick)
	in.RightStick = clampStick(in.RightStick)
	return in, trackHeld
}

func keyAxis(src controlSource, negative, positive sdl.Scancode) float64 {
	v := 0.0
	if src.IsKeyHeld(negative) {
		v--
	}
	if src.IsKeyHeld(positive) {
		v++
	}
	return v
}

func clampStick(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{mgl64.Clamp(v[0], -1, 1), mgl64.Clamp(v[1], -1, 1)}
}
