package supervisor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func waitForCount(t *testing.T, n *int32, want int32, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if atomic.LoadInt32(n) >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("count = %d, want >= %d", atomic.LoadInt32(n), want)
}

func TestNilSupervisorIsSafe(t *testing.T) {
	var s *Supervisor
	s.Stop()
	s.SetErrorHandler(func(string, error) {})
	s.Start("test", func(context.Context) error { return nil })
}

func TestStartNilFn(t *testing.T) {
	s := New(context.Background())
	defer s.Stop()
	s.Start("test", nil)
}

func TestWorkerStopsOnStop(t *testing.T) {
	s := New(context.Background())

	started := make(chan struct{})
	stopped := make(chan struct{})
	s.Start("test", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		close(stopped)
		return ctx.Err()
	})

	<-started
	s.Stop()
	select {
	case <-stopped:
	default:
		t.Fatal("Stop returned before the worker exited")
	}
	s.Stop()
}

func TestRestartNever(t *testing.T) {
	s := New(context.Background())
	defer s.Stop()

	var calls int32
	s.Start("test", func(context.Context) error {
		atomic.AddInt32(&calls, 1)
		return errors.New("fail")
	}, WithRestartPolicy(RestartNever))

	waitForCount(t, &calls, 1, time.Second)
	time.Sleep(50 * time.Millisecond)
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("calls = %d, want 1", got)
	}
}

func TestRestartOnErrorStopsAfterSuccess(t *testing.T) {
	s := New(context.Background())
	defer s.Stop()

	var calls int32
	s.Start("test", func(context.Context) error {
		if atomic.AddInt32(&calls, 1) < 3 {
			return errors.New("transient")
		}
		return nil
	}, WithBackoff(time.Millisecond, time.Millisecond))

	waitForCount(t, &calls, 3, time.Second)
	time.Sleep(50 * time.Millisecond)
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("calls = %d, want 3", got)
	}
}

func TestMaxRestarts(t *testing.T) {
	s := New(context.Background())
	defer s.Stop()

	var calls int32
	s.Start("test", func(context.Context) error {
		atomic.AddInt32(&calls, 1)
		return errors.New("fail")
	}, WithMaxRestarts(2), WithBackoff(time.Millisecond, time.Millisecond))

	waitForCount(t, &calls, 3, time.Second)
	time.Sleep(50 * time.Millisecond)
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("calls = %d, want 3 (first run plus two restarts)", got)
	}
}

func TestErrorHandlerSeesErrorsAndPanics(t *testing.T) {
	s := New(context.Background())
	defer s.Stop()

	var mu sync.Mutex
	var got []string
	done := make(chan struct{})
	s.SetErrorHandler(func(name string, err error) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, name+": "+err.Error())
		if len(got) == 2 {
			close(done)
		}
	})

	var calls int32
	s.Start("worker", func(context.Context) error {
		if atomic.AddInt32(&calls, 1) == 1 {
			return errors.New("boom")
		}
		panic("bad")
	}, WithMaxRestarts(1), WithBackoff(time.Millisecond, time.Millisecond))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for error reports")
	}
	mu.Lock()
	defer mu.Unlock()
	if got[0] != "worker: boom" || got[1] != "worker: panic in worker" {
		t.Fatalf("reports = %q", got)
	}
}

func TestStopInterruptsBackoff(t *testing.T) {
	s := New(context.Background())

	var calls int32
	s.Start("test", func(context.Context) error {
		atomic.AddInt32(&calls, 1)
		return errors.New("fail")
	}, WithBackoff(time.Hour, time.Hour))

	waitForCount(t, &calls, 1, time.Second)
	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on backoff")
	}
}
