package parameter

import "time"

// Loop Timing
const (
	// DefaultFPS is the frame rate used when none is configured
	DefaultFPS = 60

	// FrameUpdateInterval is the default frame interval (~60 FPS)
	FrameUpdateInterval = time.Second / DefaultFPS

	// InvokeQueueSize bounds pending cross-goroutine calls into the loop
	InvokeQueueSize = 64
)

// Event Queue
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 1024

	// EventBufferMask is the bitmask for fast modulo operations (1024 - 1)
	EventBufferMask = 1023
)
