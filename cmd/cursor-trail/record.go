package main

import (
	"context"
	"errors"

	"github.com/lixenwraith/cursor-trail/audio"
	"github.com/lixenwraith/cursor-trail/config"
	"github.com/lixenwraith/cursor-trail/desktop"
	"github.com/lixenwraith/cursor-trail/engine"
	"github.com/lixenwraith/cursor-trail/event"
	"github.com/lixenwraith/cursor-trail/raster"
	"github.com/lixenwraith/cursor-trail/trail"
	"github.com/lixenwraith/cursor-trail/video"
)

const defaultRecording = "trail.mp4"

// runRecord follows the global pointer for the configured duration and encodes the trail
func runRecord(ctx context.Context, s config.Settings) error {
	logger, closer, err := headlessLogger(s.LogLevel, s.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	output := s.Output
	if output == "" {
		output = defaultRecording
	}

	surface := raster.NewSurface(s.Width, s.Height, s.Background)
	defer surface.Close()
	width, height := surface.Size()

	sink, err := openSink(output, width, height, s.FPS)
	if err != nil {
		return err
	}

	rec := &frameRecorder{surface: surface, sink: sink}
	loop := engine.NewLoop(
		engine.WithFPS(s.FPS),
		engine.WithPresenter(rec.present),
		engine.WithLogger(logger),
	)

	screenW, screenH := desktop.ScreenSize()
	scale := desktop.NewScaler(screenW, screenH, width, height)
	seedX, seedY := scale.Point(desktop.Location())

	ctrl := trail.New(surface, loop, loop,
		trail.WithLogger(logger),
		trail.WithPointerSeed(seedX, seedY),
	)
	if err := ctrl.Initialize(s.TrailOptions()...); err != nil {
		sink.Close()
		return err
	}

	chime := audio.Open(s.Sound, logger)
	defer chime.Close()
	loop.OnPointerPress(func(x, y float64) { chime.Play() })

	hooks := desktop.NewHookSource(logger)
	if err := startCapture(hooks, scale.Wrap(loop.Post), ctrl, sink); err != nil {
		return err
	}

	// A failed frame write ends the recording early
	loop.EveryFrame(func() {
		if rec.err != nil {
			loop.Stop()
		}
	})

	stopAfter(loop, s.Duration, ctrl.Teardown, logger)

	logger.Info().
		Dur("duration", s.Duration).
		Str("output", output).
		Int("screen_w", screenW).
		Int("screen_h", screenH).
		Msg("recording")
	runErr := loop.Run(ctx)
	hooks.Stop()
	// No-op when the timer already tore the trail down on the loop thread
	ctrl.Teardown()

	closeErr := sink.Close()
	logger.Info().Int("frames", sink.Frames()).Msg("recording finished")
	return errors.Join(runErr, rec.err, closeErr)
}

type hookStarter interface {
	Start(post func(event.Event)) error
}

// startCapture starts the global hooks, releasing the trail and the sink when they fail
func startCapture(hooks hookStarter, post func(event.Event), ctrl *trail.Controller, sink video.Sink) error {
	if err := hooks.Start(post); err != nil {
		ctrl.Teardown()
		sink.Close()
		return err
	}
	return nil
}
