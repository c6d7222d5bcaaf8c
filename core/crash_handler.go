package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
)

var (
	finalizerMu sync.Mutex
	finalizer   func()
	exit        = os.Exit
)

// SetCrashFinalizer registers the function that restores the host (terminal screen,
// input hooks) before a crash report is printed. Pass nil to clear it
func SetCrashFinalizer(fn func()) {
	finalizerMu.Lock()
	defer finalizerMu.Unlock()
	finalizer = fn
}

// HandleCrash is the unified panic handler that restores the host and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	finalizerMu.Lock()
	fn := finalizer
	finalizerMu.Unlock()
	if fn != nil {
		fn()
	}

	// \r\n keeps output aligned if the terminal is still in raw mode
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure host cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
