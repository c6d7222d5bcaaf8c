package main

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/cursor-trail/audio"
	"github.com/lixenwraith/cursor-trail/config"
	"github.com/lixenwraith/cursor-trail/core"
	"github.com/lixenwraith/cursor-trail/engine"
	"github.com/lixenwraith/cursor-trail/event"
	"github.com/lixenwraith/cursor-trail/logging"
	"github.com/lixenwraith/cursor-trail/parameter"
	"github.com/lixenwraith/cursor-trail/status"
	"github.com/lixenwraith/cursor-trail/terminal"
	"github.com/lixenwraith/cursor-trail/trail"
)

func runTerm(ctx context.Context, s config.Settings) error {
	// The screen owns stdout, log to file only
	logger, closer, err := logging.Setup(logging.Options{Level: s.LogLevel, File: s.LogFile})
	if err != nil {
		return err
	}
	defer closer.Close()

	screen, err := terminal.NewScreen(s.CellWidth, s.CellHeight)
	if err != nil {
		return err
	}
	defer screen.Fini()
	core.SetCrashFinalizer(screen.Fini)
	defer core.SetCrashFinalizer(nil)

	chime := audio.Open(s.Sound, logger)
	defer chime.Close()

	surface := terminal.NewSurface(screen, s.Background)
	loop := engine.NewLoop(
		engine.WithFPS(s.FPS),
		engine.WithPresenter(surface.Present),
		engine.WithLogger(logger),
	)

	ctrl := trail.New(surface, loop, loop, trail.WithLogger(logger))
	host := newTermHost(ctrl, loop, logger)
	if err := host.start(s.Trail); err != nil {
		return err
	}
	surface.SetStatus(host.status)

	loop.EveryFrame(host.publish)
	loop.OnKey(host.key)
	loop.OnPointerPress(func(x, y float64) { chime.Play() })
	loop.OnResize(func(w, h int) { screen.Sync() })

	core.Go(func() { screen.Poll(loop.Post) })

	logger.Info().Dur("interval", loop.Interval()).Msg("terminal host started")
	err = loop.Run(ctx)
	ctrl.Teardown()
	return err
}

const keyHelp = "   +/- length  c color  t toggle  q quit"

// termHost maps key bindings onto controller operations and publishes its state
type termHost struct {
	ctrl    *trail.Controller
	loop    *engine.Loop
	logger  zerolog.Logger
	cfg     trail.Config
	palette int

	board   *status.Board
	state   *status.AtomicString
	markers *atomic.Int64
	length  *atomic.Int64
	color   *status.AtomicString
	frame   *atomic.Int64
}

func newTermHost(ctrl *trail.Controller, loop *engine.Loop, logger zerolog.Logger) *termHost {
	b := status.NewBoard()
	return &termHost{
		ctrl:    ctrl,
		loop:    loop,
		logger:  logger,
		board:   b,
		state:   b.Text("trail"),
		markers: b.Int("markers"),
		length:  b.Int("length"),
		color:   b.Text("color"),
		frame:   b.Int("frame"),
	}
}

func (h *termHost) start(cfg trail.Config) error {
	h.cfg = cfg
	for i, c := range parameter.TrailPalette {
		if c == cfg.TrailColor {
			h.palette = i
		}
	}
	err := h.ctrl.Initialize(cfg.Options()...)
	h.publish()
	return err
}

func (h *termHost) key(ev event.Event) {
	defer h.publish()

	switch ev.Key {
	case event.KeyEscape, event.KeyCtrlC:
		h.loop.Stop()
		return
	case event.KeyRune:
	default:
		return
	}

	switch ev.Rune {
	case 'q':
		h.loop.Stop()
	case '+', '=':
		h.reconfigure(trail.WithTrailLength(h.cfg.TrailLength + 1))
	case '-':
		if h.cfg.TrailLength > 0 {
			h.reconfigure(trail.WithTrailLength(h.cfg.TrailLength - 1))
		}
	case 'c':
		h.palette = (h.palette + 1) % len(parameter.TrailPalette)
		h.reconfigure(trail.WithTrailColor(parameter.TrailPalette[h.palette]))
	case 't':
		if h.ctrl.Initialized() {
			h.ctrl.Teardown()
			h.logger.Debug().Msg("trail toggled off")
			return
		}
		// Restore the last configuration, Initialize starts from defaults
		if err := h.ctrl.Initialize(h.cfg.Options()...); err != nil {
			h.logger.Warn().Err(err).Msg("trail toggle failed")
			return
		}
		h.logger.Debug().Int("length", h.cfg.TrailLength).Msg("trail toggled on")
	}
}

// reconfigure keeps the host copy in sync so a toggled trail comes back unchanged
func (h *termHost) reconfigure(opts ...trail.Option) {
	h.cfg = h.cfg.Apply(opts...)
	h.ctrl.Reconfigure(opts...)
}

// publish copies controller and loop state onto the status board
func (h *termHost) publish() {
	if h.ctrl.Initialized() {
		h.state.Store("on")
	} else {
		h.state.Store("off")
	}
	h.markers.Store(int64(h.ctrl.Len()))
	h.length.Store(int64(h.cfg.TrailLength))
	h.color.Store(h.cfg.TrailColor)
	h.frame.Store(int64(h.loop.Stats().Frames))
}

func (h *termHost) status() string {
	return " " + h.board.Line() + keyHelp
}
