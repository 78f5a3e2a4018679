package supervisor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/andyrewlee/scrollster/internal/logging"
	"github.com/andyrewlee/scrollster/internal/safego"
)

// RestartPolicy controls when a worker is restarted.
type RestartPolicy int

const (
	RestartNever RestartPolicy = iota
	RestartOnError
	RestartAlways
)

type options struct {
	policy      RestartPolicy
	maxRestarts int
	backoff     time.Duration
	maxBackoff  time.Duration
}

// Option configures a supervised worker.
type Option func(*options)

// WithRestartPolicy sets the restart policy.
func WithRestartPolicy(policy RestartPolicy) Option {
	return func(o *options) { o.policy = policy }
}

// WithMaxRestarts limits restarts (0 = unlimited).
func WithMaxRestarts(max int) Option {
	return func(o *options) { o.maxRestarts = max }
}

// WithBackoff sets the first delay between restarts and its cap. The
// delay doubles after each restart.
func WithBackoff(initial, max time.Duration) Option {
	return func(o *options) {
		o.backoff = initial
		o.maxBackoff = max
	}
}

// Supervisor runs background workers (file following, command readers)
// until Stop.
type Supervisor struct {
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	onError func(name string, err error)
}

// New creates a supervisor bound to the parent context.
func New(parent context.Context) *Supervisor {
	ctx, cancel := context.WithCancel(parent)
	return &Supervisor{ctx: ctx, cancel: cancel}
}

// Context returns the supervisor context.
func (s *Supervisor) Context() context.Context {
	return s.ctx
}

// SetErrorHandler registers a handler for worker errors. Panics arrive
// as errors too.
func (s *Supervisor) SetErrorHandler(handler func(name string, err error)) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.onError = handler
	s.mu.Unlock()
}

// Stop cancels all workers and waits for them to exit. Safe to call twice.
func (s *Supervisor) Stop() {
	if s == nil {
		return
	}
	s.cancel()
	s.wg.Wait()
}

// Start runs fn until it returns without a restart being due, the restart
// limit is hit, or the supervisor stops.
func (s *Supervisor) Start(name string, fn func(context.Context) error, opts ...Option) {
	if s == nil || fn == nil {
		return
	}
	cfg := options{
		policy:     RestartOnError,
		backoff:    200 * time.Millisecond,
		maxBackoff: 3 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxBackoff < cfg.backoff {
		cfg.maxBackoff = cfg.backoff
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		restarts := 0
		backoff := cfg.backoff
		for {
			err := s.runOnce(name, fn)
			if s.ctx.Err() != nil {
				return
			}
			if err != nil {
				s.report(name, err)
			}
			if !shouldRestart(err, cfg.policy) {
				return
			}
			restarts++
			if cfg.maxRestarts > 0 && restarts > cfg.maxRestarts {
				logging.Error("supervisor: %s exceeded max restarts (%d)", name, cfg.maxRestarts)
				return
			}
			logging.Debug("supervisor: restarting %s in %s", name, backoff)
			if !s.sleep(backoff) {
				return
			}
			backoff = min(backoff*2, cfg.maxBackoff)
		}
	}()
}

func (s *Supervisor) runOnce(name string, fn func(context.Context) error) (err error) {
	if safego.Run(name, func() { err = fn(s.ctx) }) {
		err = fmt.Errorf("panic in %s", name)
	}
	return err
}

func (s *Supervisor) report(name string, err error) {
	s.mu.Lock()
	handler := s.onError
	s.mu.Unlock()
	if handler != nil {
		handler(name, err)
		return
	}
	logging.Warn("supervisor: %s failed: %v", name, err)
}

// sleep waits for d and reports false if the supervisor stopped first.
func (s *Supervisor) sleep(d time.Duration) bool {
	if d <= 0 {
		return s.ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-s.ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func shouldRestart(err error, policy RestartPolicy) bool {
	switch policy {
	case RestartAlways:
		return true
	case RestartOnError:
		return err != nil
	default:
		return false
	}
}
