// Package audio plays the optional click chime on pointer press
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/cursor-trail/parameter"
)

const sampleRate = beep.SampleRate(parameter.ChimeSampleRate)

// Player is what hosts call on a pointer press
type Player interface {
	Play()
	Close()
}

// Nop is the Player used when sound is disabled or the device is unavailable
type Nop struct{}

func (Nop) Play()  {}
func (Nop) Close() {}

// Chime mixes short sine clicks into the default output device
type Chime struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	logger      zerolog.Logger
}

// NewChime creates an uninitialized chime
func NewChime(logger zerolog.Logger) *Chime {
	return &Chime{
		mixer:  &beep.Mixer{},
		logger: logger,
	}
}

// Initialize opens the speaker. Safe to call more than once
func (c *Chime) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}

	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Play queues one click; no-op before Initialize
func (c *Chime) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}

	s, err := Tone(sampleRate, parameter.ChimeFrequency, parameter.ChimeDurationMs*time.Millisecond)
	if err != nil {
		c.logger.Warn().Err(err).Msg("chime tone")
		return
	}

	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
}

// Close silences pending clicks and releases the device
func (c *Chime) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}

	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	c.initialized = false
}

// Open returns a ready Chime, or Nop when disabled or init fails
func Open(enabled bool, logger zerolog.Logger) Player {
	if !enabled {
		return Nop{}
	}
	c := NewChime(logger)
	if err := c.Initialize(); err != nil {
		logger.Warn().Err(err).Msg("audio unavailable, chime disabled")
		return Nop{}
	}
	return c
}

// Tone builds a sine click of the given length with a linear decay envelope
func Tone(sr beep.SampleRate, freq float64, d time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, err
	}
	n := sr.N(d)
	return &decay{src: beep.Take(n, sine), total: n}, nil
}

// decay scales samples from full volume down to silence over total samples
type decay struct {
	src   beep.Streamer
	total int
	pos   int
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.src.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 0.3 * (1 - float64(d.pos)/float64(d.total))
		samples[i][0] *= gain
		samples[i][1] *= gain
		d.pos++
	}
	return n, ok
}

func (d *decay) Err() error {
	return d.src.Err()
}
