// Package trail implements the cursor trail controller: a bounded set of markers that
// ease toward the pointer once per frame.
//
// All Controller methods must be called from the host loop thread. The pointer
// listener and frame task registered by Initialize are invoked on that same thread,
// so pointer writes and frame reads never interleave.
package trail

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"

	"github.com/lixenwraith/cursor-trail/vmath"
)

// ErrAlreadyInitialized is returned by Initialize when called twice without Teardown
var ErrAlreadyInitialized = errors.New("trail: already initialized")

// marker is one trailing element and its eased position
type marker struct {
	el  Element
	pos vmath.Vec2
}

// Controller owns the trail configuration, markers and last known pointer position
type Controller struct {
	surface Surface
	source  PointerSource
	frames  FrameScheduler

	cfg         Config
	markers     []marker
	pointer     vmath.Vec2
	initialized bool

	detach func()
	cancel func()

	logger zerolog.Logger
	ins    *instruments
}

// ControllerOption configures ambient dependencies of a Controller
type ControllerOption func(*Controller)

// WithLogger sets the controller logger, default is zerolog.Nop()
func WithLogger(logger zerolog.Logger) ControllerOption {
	return func(c *Controller) { c.logger = logger }
}

// WithMeter sets the meter used for controller instruments, default is noop
func WithMeter(meter metric.Meter) ControllerOption {
	return func(c *Controller) { c.ins = newInstruments(meter) }
}

// WithPointerSeed sets the pointer position assumed before the first move is observed
func WithPointerSeed(x, y float64) ControllerOption {
	return func(c *Controller) { c.pointer = vmath.V(x, y) }
}

// New creates an uninitialized controller bound to its host collaborators
func New(surface Surface, source PointerSource, frames FrameScheduler, opts ...ControllerOption) *Controller {
	c := &Controller{
		surface: surface,
		source:  source,
		frames:  frames,
		cfg:     DefaultConfig(),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.ins == nil {
		c.ins = newInstruments(nil)
	}
	return c
}

// Initialize merges opts over defaults, creates the markers at the pointer position,
// attaches the pointer listener and starts the frame task
func (c *Controller) Initialize(opts ...Option) error {
	if c.initialized {
		return ErrAlreadyInitialized
	}

	c.cfg = DefaultConfig().Apply(opts...)

	n := c.cfg.length()
	c.markers = make([]marker, 0, n)
	c.grow(n)

	c.detach = c.source.OnPointerMove(c.Track)
	c.cancel = c.frames.EveryFrame(c.Update)
	c.initialized = true

	c.logger.Debug().
		Int("markers", n).
		Str("color", c.cfg.TrailColor).
		Float64("follow_speed", c.cfg.FollowSpeed).
		Msg("trail initialized")
	return nil
}

// Track records the latest pointer position, markers move on the next frame
func (c *Controller) Track(x, y float64) {
	c.pointer = vmath.V(x, y)
	c.ins.moves.Add(context.Background(), 1)
}

// Update moves every marker FollowSpeed of the remaining distance toward the pointer
func (c *Controller) Update() {
	if !c.initialized {
		return
	}
	for i := range c.markers {
		m := &c.markers[i]
		m.pos = vmath.LerpVec(m.pos, c.pointer, c.cfg.FollowSpeed)
		m.el.MoveTo(m.pos.X, m.pos.Y)
	}
	c.ins.ticks.Add(context.Background(), 1)
}

// Reconfigure merges opts into the current configuration, restyles existing markers
// and grows or shrinks the marker sequence to the new length
func (c *Controller) Reconfigure(opts ...Option) {
	if !c.initialized {
		return
	}

	c.cfg = c.cfg.Apply(opts...)

	style := c.cfg.Style()
	for _, m := range c.markers {
		m.el.SetStyle(style)
	}

	n := c.cfg.length()
	switch {
	case n > len(c.markers):
		c.grow(n - len(c.markers))
	case n < len(c.markers):
		c.shrink(len(c.markers) - n)
	}

	c.logger.Debug().
		Int("markers", len(c.markers)).
		Str("color", c.cfg.TrailColor).
		Msg("trail reconfigured")
}

// Teardown removes all markers, detaches the listener and cancels the frame task
func (c *Controller) Teardown() {
	if !c.initialized {
		return
	}

	c.shrink(len(c.markers))
	c.markers = nil

	if c.detach != nil {
		c.detach()
		c.detach = nil
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.initialized = false

	c.logger.Debug().Msg("trail torn down")
}

// grow appends n markers at the current pointer position
func (c *Controller) grow(n int) {
	style := c.cfg.Style()
	for i := 0; i < n; i++ {
		el := c.surface.NewElement(style, c.pointer.X, c.pointer.Y)
		c.markers = append(c.markers, marker{el: el, pos: c.pointer})
	}
	c.ins.markers.Add(context.Background(), int64(n))
}

// shrink removes n markers from the end, most recently created first
func (c *Controller) shrink(n int) {
	for i := 0; i < n; i++ {
		last := len(c.markers) - 1
		c.markers[last].el.Remove()
		c.markers[last] = marker{}
		c.markers = c.markers[:last]
	}
	c.ins.markers.Add(context.Background(), -int64(n))
}

// Initialized reports whether the trail is active
func (c *Controller) Initialized() bool {
	return c.initialized
}

// Len returns the live marker count
func (c *Controller) Len() int {
	return len(c.markers)
}

// Config returns the current configuration
func (c *Controller) Config() Config {
	return c.cfg
}

// Pointer returns the last known pointer position
func (c *Controller) Pointer() vmath.Vec2 {
	return c.pointer
}

// Positions returns a copy of marker positions in creation order
func (c *Controller) Positions() []vmath.Vec2 {
	out := make([]vmath.Vec2, len(c.markers))
	for i, m := range c.markers {
		out[i] = m.pos
	}
	return out
}
