// Package audio provides engine sound synthesis and playback.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"go.uber.org/zap"

	"github.com/Faultbox/spaaace/internal/logger"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// Manager owns the speaker and a mixer that every sound plays through.
type Manager struct {
	mu sync.RWMutex

	initialized  bool
	sampleRate   beep.SampleRate
	masterVolume float64

	mixer  *beep.Mixer
	master *effects.Volume
	log    *zap.Logger
}

// New creates a new audio manager. A nil logger uses the "audio" component
// logger.
func New(log *zap.Logger) *Manager {
	if log == nil {
		log = logger.Named("audio")
	}
	m := &Manager{
		sampleRate:   DefaultSampleRate,
		masterVolume: 1.0,
		mixer:        &beep.Mixer{},
		log:          log,
	}
	m.master = &effects.Volume{Streamer: m.mixer, Base: 10}
	m.applyMasterVolume()
	return m
}

// Init opens the audio device.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.master)

	m.initialized = true
	m.log.Info("audio initialized", zap.Int("sample_rate", int(m.sampleRate)))
	return nil
}

// Close shuts down the audio system.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.initialized = false
}

// IsInitialized returns whether the audio system is initialized.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SampleRate returns the output sample rate.
func (m *Manager) SampleRate() beep.SampleRate {
	return m.sampleRate
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
	m.withSpeaker(m.applyMasterVolume)
}

// MasterVolume returns the master volume.
func (m *Manager) MasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

func (m *Manager) applyMasterVolume() {
	m.master.Silent = m.masterVolume <= 0
	m.master.Volume = volumeExponent(m.masterVolume)
}

// Play adds a streamer to the mixer.
func (m *Manager) Play(s beep.Streamer) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.initialized {
		return fmt.Errorf("audio not initialized")
	}
	m.withSpeaker(func() { m.mixer.Add(s) })
	return nil
}

// withSpeaker runs f while the speaker goroutine is paused. Before Init
// there is no speaker goroutine to pause.
func (m *Manager) withSpeaker(f func()) {
	if !m.initialized {
		f()
		return
	}
	speaker.Lock()
	defer speaker.Unlock()
	f()
}

// volumeExponent converts a 0-1 amplitude to the base-10 exponent used by
// effects.Volume.
func volumeExponent(vol float64) float64 {
	if vol <= 0 {
		return -10 // effectively silent
	}
	return math.Log10(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
