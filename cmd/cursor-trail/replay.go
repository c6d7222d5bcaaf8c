package main

import (
	"context"

	"github.com/lixenwraith/cursor-trail/config"
	"github.com/lixenwraith/cursor-trail/engine"
	"github.com/lixenwraith/cursor-trail/event"
	"github.com/lixenwraith/cursor-trail/motion"
	"github.com/lixenwraith/cursor-trail/raster"
	"github.com/lixenwraith/cursor-trail/trail"
)

// runReplay drives the trail along a scripted path, one loop step per frame
func runReplay(ctx context.Context, s config.Settings) error {
	logger, closer, err := headlessLogger(s.LogLevel, s.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	surface := raster.NewSurface(s.Width, s.Height, s.Background)
	defer surface.Close()
	width, height := surface.Size()

	path, err := motion.Parse(s.Path, float64(width), float64(height))
	if err != nil {
		return err
	}

	sink, err := openSink(s.Output, width, height, s.FPS)
	if err != nil {
		return err
	}

	rec := &frameRecorder{surface: surface, sink: sink}
	loop := engine.NewLoop(
		engine.WithFPS(s.FPS),
		engine.WithPresenter(rec.present),
		engine.WithLogger(logger),
	)

	start := path.At(0)
	ctrl := trail.New(surface, loop, loop,
		trail.WithLogger(logger),
		trail.WithPointerSeed(start.X, start.Y),
	)
	if err := ctrl.Initialize(s.TrailOptions()...); err != nil {
		sink.Close()
		return err
	}

	for frame := 0; frame < s.Frames && rec.err == nil; frame++ {
		if ctx.Err() != nil {
			break
		}
		p := path.At(frame)
		loop.Post(event.PointerMove(p.X, p.Y))
		loop.Step()
	}
	ctrl.Teardown()

	if err := sink.Close(); err != nil && rec.err == nil {
		rec.err = err
	}
	logger.Info().Int("frames", sink.Frames()).Str("path", s.Path).Msg("replay finished")
	return rec.err
}
