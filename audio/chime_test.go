package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestChimeGracefulDegradation verifies operations don't panic when not initialized
func TestChimeGracefulDegradation(t *testing.T) {
	c := NewChime(zerolog.Nop())
	assert.NotPanics(t, func() {
		c.Play()
		c.Close()
		c.Close()
	})
}

func TestOpen_Disabled(t *testing.T) {
	p := Open(false, zerolog.Nop())
	assert.IsType(t, Nop{}, p)
	assert.NotPanics(t, func() {
		p.Play()
		p.Close()
	})
}

func TestTone_LengthAndEnvelope(t *testing.T) {
	sr := beep.SampleRate(1000)
	s, err := Tone(sr, 100, 50*time.Millisecond)
	require.NoError(t, err)

	buf := make([][2]float64, 128)
	total := 0
	peakHead, peakTail := 0.0, 0.0
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			v := math.Abs(buf[i][0])
			assert.LessOrEqual(t, v, 0.3+1e-9)
			assert.Equal(t, buf[i][0], buf[i][1])
			if total+i < 10 {
				peakHead = math.Max(peakHead, v)
			} else if total+i >= 40 {
				peakTail = math.Max(peakTail, v)
			}
		}
		total += n
		if !ok || n == 0 {
			break
		}
	}

	assert.Equal(t, sr.N(50*time.Millisecond), total)
	assert.Greater(t, peakHead, peakTail)
	assert.NoError(t, s.Err())
}

func TestTone_InvalidFrequency(t *testing.T) {
	// Above Nyquist
	_, err := Tone(beep.SampleRate(1000), 900, time.Millisecond)
	assert.Error(t, err)
}
