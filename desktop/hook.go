// Package desktop feeds the trail from the global OS pointer
// Requires an X11 session on Linux; Wayland does not expose global pointer events
package desktop

import (
	"errors"
	"sync"
	"time"

	"github.com/go-vgo/robotgo"
	"github.com/rs/zerolog"
	hook "github.com/robotn/gohook"

	"github.com/lixenwraith/cursor-trail/core"
	"github.com/lixenwraith/cursor-trail/event"
)

// ErrHookRunning is returned by Start when the hook is already active
var ErrHookRunning = errors.New("desktop: hook already running")

const stopTimeout = 2 * time.Second

// HookSource posts global pointer moves and presses from the OS input hook
type HookSource struct {
	mu      sync.Mutex
	running bool
	done    chan struct{}
	logger  zerolog.Logger
}

func NewHookSource(logger zerolog.Logger) *HookSource {
	return &HookSource{logger: logger}
}

// Start registers hook callbacks and begins processing in the background
func (h *HookSource) Start(post func(event.Event)) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.running {
		return ErrHookRunning
	}

	forward := func(e hook.Event) {
		if ev, ok := translate(e); ok {
			post(ev)
		}
	}
	hook.Register(hook.MouseMove, []string{}, forward)
	hook.Register(hook.MouseDrag, []string{}, forward)
	hook.Register(hook.MouseDown, []string{}, forward)

	evChan := hook.Start()
	h.done = make(chan struct{})
	h.running = true
	done := h.done

	core.Go(func() {
		<-hook.Process(evChan)
		close(done)
	})

	h.logger.Info().Msg("desktop hook started")
	return nil
}

// Stop ends the hook and waits briefly for processing to finish
func (h *HookSource) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.running {
		return
	}
	hook.End()
	select {
	case <-h.done:
	case <-time.After(stopTimeout):
		h.logger.Warn().Msg("desktop hook did not stop in time")
	}
	h.running = false
	h.logger.Info().Msg("desktop hook stopped")
}

// translate maps a hook event to a host event
func translate(e hook.Event) (event.Event, bool) {
	x, y := float64(e.X), float64(e.Y)
	switch e.Kind {
	case hook.MouseMove, hook.MouseDrag:
		return event.PointerMove(x, y), true
	case hook.MouseDown:
		if e.Button == hook.MouseMap["left"] || e.Button == 1 {
			return event.PointerPress(x, y), true
		}
	}
	return event.Event{}, false
}

// Location returns the current global pointer position, used to seed the trail
func Location() (float64, float64) {
	x, y := robotgo.Location()
	return float64(x), float64(y)
}

// ScreenSize returns the main display size in pixels
func ScreenSize() (int, int) {
	return robotgo.GetScreenSize()
}

// Scaler maps desktop pixels onto a frame of a different size
type Scaler struct {
	SX, SY float64
}

// NewScaler fits a screenW x screenH desktop onto a frameW x frameH frame
// A zero screen dimension leaves that axis unscaled
func NewScaler(screenW, screenH, frameW, frameH int) Scaler {
	s := Scaler{SX: 1, SY: 1}
	if screenW > 0 {
		s.SX = float64(frameW) / float64(screenW)
	}
	if screenH > 0 {
		s.SY = float64(frameH) / float64(screenH)
	}
	return s
}

// Point scales a desktop position
func (s Scaler) Point(x, y float64) (float64, float64) {
	return x * s.SX, y * s.SY
}

// Wrap returns a post function that scales pointer events before forwarding them
func (s Scaler) Wrap(post func(event.Event)) func(event.Event) {
	return func(ev event.Event) {
		ev.X, ev.Y = s.Point(ev.X, ev.Y)
		post(ev)
	}
}
