package audio

import (
	"math"
	"math/rand/v2"
	"sync/atomic"

	"github.com/gopxl/beep/v2"
)

const (
	rumbleHz       = 48
	levelSmoothing = 12 // per second
	idleLevel      = 0.05
)

// Thruster synthesizes an engine rumble: brown noise over a low sine,
// scaled by a throttle level that the game sets every frame. It never
// ends, so it can stay in the mixer for the life of the ship.
type Thruster struct {
	target atomic.Uint64 // math.Float64bits of the throttle level

	// Owned by the audio goroutine.
	level     float64
	smoothing float64
	brown     float64
	phase     float64
	phaseStep float64
	rng       *rand.Rand
}

// NewThruster creates a silent thruster for the given sample rate. The
// seed fixes the noise sequence.
func NewThruster(sr beep.SampleRate, seed uint64) *Thruster {
	rate := float64(sr)
	t := &Thruster{
		smoothing: 1 - math.Exp(-levelSmoothing/rate),
		phaseStep: 2 * math.Pi * rumbleHz / rate,
		rng:       rand.New(rand.NewPCG(seed, 0x7472757374)),
	}
	return t
}

// SetThrottle sets the target loudness from thrust and boost, both in
// [0, 1]. Safe to call from any goroutine.
func (t *Thruster) SetThrottle(thrust, boost float64) {
	level := 0.0
	if thrust > 0 || boost > 0 {
		level = idleLevel + 0.65*clamp(thrust, 0, 1) + 0.3*clamp(boost, 0, 1)
	}
	t.target.Store(math.Float64bits(clamp(level, 0, 1)))
}

// Throttle returns the target level.
func (t *Thruster) Throttle() float64 {
	return math.Float64frombits(t.target.Load())
}

// Stream implements beep.Streamer.
func (t *Thruster) Stream(samples [][2]float64) (n int, ok bool) {
	target := t.Throttle()
	for i := range samples {
		t.level += (target - t.level) * t.smoothing

		white := t.rng.Float64()*2 - 1
		t.brown = (t.brown + 0.02*white) / 1.02

		s := t.level * (3*t.brown + 0.25*math.Sin(t.phase))
		s = clamp(s, -1, 1)
		samples[i][0] = s
		samples[i][1] = s

		t.phase += t.phaseStep
		if t.phase > 2*math.Pi {
			t.phase -= 2 * math.Pi
		}
	}
	return len(samples), true
}

// Err implements beep.Streamer.
func (t *Thruster) Err() error {
	return nil
}
