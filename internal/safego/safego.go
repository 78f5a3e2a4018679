package safego

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/andyrewlee/scrollster/internal/logging"
)

// PanicHandler receives panic details from recovered goroutines.
type PanicHandler func(name string, recovered any, stack []byte)

var (
	panicHandlerMu sync.RWMutex
	panicHandler   PanicHandler
)

// SetPanicHandler registers a global handler for recovered panics.
func SetPanicHandler(handler PanicHandler) {
	panicHandlerMu.Lock()
	panicHandler = handler
	panicHandlerMu.Unlock()
}

// Run executes fn, converting a panic into a logged error. It reports whether fn panicked.
// Runtime-fatal errors such as concurrent map writes are not recoverable.
func Run(name string, fn func()) (panicked bool) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		panicked = true
		label := name
		if label == "" {
			label = "goroutine"
		}
		stack := debug.Stack()
		logging.Error("panic in %s: %v\n%s", label, r, stack)

		panicHandlerMu.RLock()
		handler := panicHandler
		panicHandlerMu.RUnlock()
		if handler != nil {
			func() {
				defer func() { _ = recover() }()
				handler(label, r, stack)
			}()
		}
	}()
	fn()
	return false
}

// Go runs fn in a new goroutine with panic recovery.
func Go(name string, fn func()) {
	go Run(name, fn)
}

// GoErr runs fn in a new goroutine and passes its result to done.
// A panic is reported to done as an error.
func GoErr(name string, fn func() error, done func(error)) {
	go func() {
		var err error
		if Run(name, func() { err = fn() }) {
			err = fmt.Errorf("%s: panic", name)
		}
		if done != nil {
			done(err)
		}
	}()
}
