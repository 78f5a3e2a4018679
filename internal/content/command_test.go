package content

import (
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestCommandCollectsOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("pty not supported")
	}

	var mu sync.Mutex
	var last string
	exited := make(chan error, 1)
	cmd, err := StartCommand("printf 'hello\\nworld\\n'", 80, 24,
		func(text string) {
			mu.Lock()
			last = text
			mu.Unlock()
		},
		func(err error) { exited <- err },
	)
	if err != nil {
		t.Fatalf("StartCommand: %v", err)
	}
	defer cmd.Close()

	select {
	case err := <-exited:
		if err != nil {
			t.Fatalf("exit error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for exit")
	}

	mu.Lock()
	defer mu.Unlock()
	if !strings.Contains(last, "hello") || !strings.Contains(last, "world") {
		t.Fatalf("last output = %q", last)
	}
	if cmd.Output() != last {
		t.Fatalf("Output() = %q, want %q", cmd.Output(), last)
	}
}

func TestCommandCloseStopsProcess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("pty not supported")
	}

	cmd, err := StartCommand("sleep 30", 80, 24, nil, nil)
	if err != nil {
		t.Fatalf("StartCommand: %v", err)
	}
	if err := cmd.SetSize(100, 40); err != nil {
		t.Fatalf("SetSize: %v", err)
	}
	if err := cmd.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := cmd.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if err := cmd.SetSize(10, 10); err != nil {
		t.Fatalf("SetSize after Close: %v", err)
	}
}
