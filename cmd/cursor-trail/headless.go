package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/cursor-trail/core"
	"github.com/lixenwraith/cursor-trail/engine"
	"github.com/lixenwraith/cursor-trail/logging"
	"github.com/lixenwraith/cursor-trail/raster"
	"github.com/lixenwraith/cursor-trail/video"
)

const defaultFrameDir = "trail-frames"

// headlessLogger writes to stderr and optionally to a file
func headlessLogger(level, file string) (zerolog.Logger, io.Closer, error) {
	return logging.Setup(logging.Options{Level: level, File: file, Console: true, ConsoleOut: os.Stderr})
}

// openSink picks a video encoder for .mp4 outputs and a PNG sequence otherwise
func openSink(output string, width, height, fps int) (video.Sink, error) {
	if output == "" {
		output = defaultFrameDir
	}
	if strings.EqualFold(filepath.Ext(output), ".mp4") {
		enc, err := video.Open(output, width, height, float64(fps))
		if err != nil {
			return nil, err
		}
		return enc, nil
	}
	seq, err := video.NewPNGSequence(output)
	if err != nil {
		return nil, err
	}
	return seq, nil
}

// frameRecorder presents the raster surface and forwards each frame to a sink
// The first error is kept and later frames are dropped
type frameRecorder struct {
	surface *raster.Surface
	sink    video.Sink
	err     error
}

func (r *frameRecorder) present() {
	if r.err != nil {
		return
	}
	if err := r.surface.Present(); err != nil {
		r.err = err
		return
	}
	if err := r.sink.WriteFrame(r.surface.Frame()); err != nil {
		r.err = err
	}
}

// stopAfter tears the trail down on the loop thread once d has elapsed, then stops the loop
// Returns early without teardown if the loop stops first
func stopAfter(loop *engine.Loop, d time.Duration, teardown func(), logger zerolog.Logger) {
	core.Go(func() {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-loop.Done():
			return
		}
		if err := loop.Invoke(teardown); err != nil {
			logger.Debug().Err(err).Msg("teardown skipped, loop already stopped")
		}
		loop.Stop()
	})
}
