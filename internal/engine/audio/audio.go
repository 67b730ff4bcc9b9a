// Package audio plays the short detection chime. Sound-effect only; the
// demo has no background music.
package audio

import (
	"bytes"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the playback sample rate.
const DefaultSampleRate = beep.SampleRate(44100)

// Manager handles sound effect playback.
type Manager struct {
	mu sync.Mutex

	initialized bool
	sampleRate  beep.SampleRate
	volume      float64
	mixer       *beep.Mixer
}

// New creates a new audio manager with the given volume (0.0 to 1.0).
func New(volume float64) *Manager {
	return &Manager{
		volume: clamp(volume, 0, 1),
		mixer:  &beep.Mixer{},
	}
}

// Init opens the speaker. Failure is not fatal to the demo; the caller
// logs and continues silent.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	m.sampleRate = DefaultSampleRate
	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	speaker.Play(m.mixer)
	m.initialized = true
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
	m.initialized = false
}

// Play decodes WAV data and plays it once at the manager volume.
func (m *Manager) Play(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return fmt.Errorf("audio not initialized")
	}

	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}

	var stream beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		stream = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
	}

	stream = &effects.Volume{
		Streamer: stream,
		Base:     2,
		Volume:   volumeToLog2(m.volume),
		Silent:   m.volume <= 0,
	}

	speaker.Lock()
	m.mixer.Add(beep.Seq(stream, beep.Callback(func() {
		streamer.Close()
	})))
	speaker.Unlock()

	return nil
}

// SetVolume sets the effect volume (0.0 to 1.0).
func (m *Manager) SetVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = clamp(vol, 0, 1)
}

// Volume returns the effect volume.
func (m *Manager) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

// volumeToLog2 converts a 0-1 volume to the base-2 log scale
// effects.Volume expects: 1.0 -> 0, 0.5 -> -1, 0.25 -> -2.
func volumeToLog2(vol float64) float64 {
	if vol <= 0 {
		return -10
	}
	return math.Log2(vol)
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
