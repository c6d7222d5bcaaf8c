// Package engine runs the single logical thread that hosts the trail.
//
// Loop owns that thread: host events posted from any goroutine are queued and
// dispatched in FIFO order at the start of each frame, then frame tasks run, then the
// presenter. Handler and task registration must happen on the loop thread or before
// Run starts.
package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/cursor-trail/event"
	"github.com/lixenwraith/cursor-trail/parameter"
)

var (
	// ErrLoopStopped is returned by Invoke once the loop has been stopped
	ErrLoopStopped = errors.New("engine: loop stopped")

	// ErrLoopNotRunning is returned by Invoke when no Run is active to execute the call
	ErrLoopNotRunning = errors.New("engine: loop not running")
)

// task is a repeating frame callback, cancelled tasks are skipped even mid-frame
type task struct {
	fn        func()
	cancelled bool
}

// listener is a registered event handler with a stable id for detach
type listener[F any] struct {
	id int
	fn F
}

// call is a closure executed on the loop thread by Invoke
type call struct {
	fn   func()
	done chan struct{}
}

// Stats reports frame progress
type Stats struct {
	Frames    uint64
	LastFrame time.Time
	Interval  time.Duration // Time between the last two frames
}

// Loop is a cooperative single-consumer event loop with frame pacing
type Loop struct {
	queue    *event.Queue
	calls    chan call
	interval time.Duration
	clock    TimeProvider
	logger   zerolog.Logger

	presenter func()

	moves   []listener[func(x, y float64)]
	presses []listener[func(x, y float64)]
	keys    []listener[func(event.Event)]
	resizes []listener[func(w, h int)]
	tasks   []*task
	nextID  int

	frames    atomic.Uint64
	statsMu   sync.RWMutex
	lastFrame time.Time
	lastDelta time.Duration

	stopChan chan struct{}
	stopOnce sync.Once
	running  atomic.Bool
}

// LoopOption configures a Loop
type LoopOption func(*Loop)

// WithFPS sets the frame rate, non-positive values keep the default
func WithFPS(fps int) LoopOption {
	return func(l *Loop) {
		if fps > 0 {
			l.interval = time.Second / time.Duration(fps)
		}
	}
}

// WithTimeProvider replaces the monotonic clock used for frame stats
func WithTimeProvider(tp TimeProvider) LoopOption {
	return func(l *Loop) { l.clock = tp }
}

// WithPresenter sets a hook that runs after all frame tasks, used to flush surfaces
func WithPresenter(fn func()) LoopOption {
	return func(l *Loop) { l.presenter = fn }
}

// WithLogger sets the loop logger
func WithLogger(logger zerolog.Logger) LoopOption {
	return func(l *Loop) { l.logger = logger }
}

// NewLoop creates a stopped loop
func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{
		queue:    event.NewQueue(),
		calls:    make(chan call, parameter.InvokeQueueSize),
		interval: parameter.FrameUpdateInterval,
		clock:    NewMonotonicTimeProvider(),
		logger:   zerolog.Nop(),
		stopChan: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Interval returns the frame interval
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// Post queues a host event, safe from any goroutine
func (l *Loop) Post(ev event.Event) {
	l.queue.Push(ev)
}

// OnPointerMove registers a pointer move listener and returns its detach function
func (l *Loop) OnPointerMove(fn func(x, y float64)) func() {
	return register(l, &l.moves, fn)
}

// OnPointerPress registers a pointer press listener and returns its detach function
func (l *Loop) OnPointerPress(fn func(x, y float64)) func() {
	return register(l, &l.presses, fn)
}

// OnKey registers a key listener and returns its detach function
func (l *Loop) OnKey(fn func(event.Event)) func() {
	return register(l, &l.keys, fn)
}

// OnResize registers a resize listener and returns its detach function
func (l *Loop) OnResize(fn func(w, h int)) func() {
	return register(l, &l.resizes, fn)
}

func register[F any](l *Loop, list *[]listener[F], fn F) func() {
	id := l.nextID
	l.nextID++
	*list = append(*list, listener[F]{id: id, fn: fn})
	return func() {
		for i, h := range *list {
			if h.id == id {
				*list = append((*list)[:i], (*list)[i+1:]...)
				return
			}
		}
	}
}

// EveryFrame registers a repeating frame task and returns its cancel function
// Cancel is synchronous: a cancelled task never runs again, including later in the current frame
func (l *Loop) EveryFrame(fn func()) func() {
	t := &task{fn: fn}
	l.tasks = append(l.tasks, t)
	return func() {
		if t.cancelled {
			return
		}
		t.cancelled = true
		for i, other := range l.tasks {
			if other == t {
				l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
				return
			}
		}
	}
}

// Step runs exactly one frame on the calling goroutine
// Used by headless hosts and tests in place of Run
func (l *Loop) Step() {
	l.dispatch(l.queue.Consume())

	// Snapshot so tasks registered during this frame start next frame
	tasks := make([]*task, len(l.tasks))
	copy(tasks, l.tasks)
	for _, t := range tasks {
		if !t.cancelled {
			t.fn()
		}
	}

	if l.presenter != nil {
		l.presenter()
	}

	now := l.clock.Now()
	l.statsMu.Lock()
	if !l.lastFrame.IsZero() {
		l.lastDelta = now.Sub(l.lastFrame)
	}
	l.lastFrame = now
	l.statsMu.Unlock()
	l.frames.Add(1)
}

// dispatch delivers events in FIFO order to the listeners registered for their type
func (l *Loop) dispatch(events []event.Event) {
	for _, ev := range events {
		switch ev.Type {
		case event.EventPointerMove:
			for _, h := range snapshot(l.moves) {
				h.fn(ev.X, ev.Y)
			}
		case event.EventPointerPress:
			for _, h := range snapshot(l.presses) {
				h.fn(ev.X, ev.Y)
			}
		case event.EventKey:
			for _, h := range snapshot(l.keys) {
				h.fn(ev)
			}
		case event.EventResize:
			for _, h := range snapshot(l.resizes) {
				h.fn(int(ev.X), int(ev.Y))
			}
		}
	}
}

// snapshot copies a listener list so handlers may detach during dispatch
func snapshot[F any](list []listener[F]) []listener[F] {
	if len(list) == 0 {
		return nil
	}
	out := make([]listener[F], len(list))
	copy(out, list)
	return out
}

// Run drives frames at the configured interval on the calling goroutine until Stop
// is called or ctx is done. Calls queued by Invoke run between frames
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return errors.New("engine: loop already running")
	}
	defer l.running.Store(false)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.logger.Debug().Dur("interval", l.interval).Msg("loop started")
	defer l.logger.Debug().Uint64("frames", l.frames.Load()).Msg("loop stopped")

	for {
		select {
		case <-ctx.Done():
			l.Stop()
			return nil
		case <-l.stopChan:
			return nil
		case c := <-l.calls:
			c.fn()
			close(c.done)
		case <-ticker.C:
			l.Step()
		}
	}
}

// Invoke runs fn on the loop thread and waits for it to finish
// Call it from other goroutines only while Run is active; from the loop thread call fn directly
func (l *Loop) Invoke(fn func()) error {
	select {
	case <-l.stopChan:
		return ErrLoopStopped
	default:
	}
	if !l.running.Load() {
		return ErrLoopNotRunning
	}

	c := call{fn: fn, done: make(chan struct{})}
	select {
	case <-l.stopChan:
		return ErrLoopStopped
	case l.calls <- c:
	}
	select {
	case <-c.done:
		return nil
	case <-l.stopChan:
		return ErrLoopStopped
	}
}

// Stop ends Run, safe to call multiple times and from any goroutine
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
	})
}

// Done is closed once Stop has been called
func (l *Loop) Done() <-chan struct{} {
	return l.stopChan
}

// Stats returns frame counters
func (l *Loop) Stats() Stats {
	l.statsMu.RLock()
	defer l.statsMu.RUnlock()
	return Stats{
		Frames:    l.frames.Load(),
		LastFrame: l.lastFrame,
		Interval:  l.lastDelta,
	}
}
