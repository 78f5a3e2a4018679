package content

import (
	"bytes"
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/creack/pty"
	"golang.org/x/time/rate"

	"github.com/andyrewlee/scrollster/internal/logging"
	"github.com/andyrewlee/scrollster/internal/safego"
)

// outputInterval bounds how often partial output is reported.
const outputInterval = 50 * time.Millisecond

// Command runs a shell command on a pty and collects its output.
type Command struct {
	mu     sync.Mutex
	ptmx   *os.File
	cmd    *exec.Cmd
	out    bytes.Buffer
	closed bool

	onOutput func(text string)
	onExit   func(error)
	report   rate.Sometimes
}

// StartCommand runs command through sh on a pty of cols x rows.
// onOutput receives the full plain-text output so far; it is throttled while
// the command runs and always called once more before onExit.
func StartCommand(command string, cols, rows int, onOutput func(text string), onExit func(error)) (*Command, error) {
	cmd := exec.Command("sh", "-c", command)
	cmd.Env = append(os.Environ(), "TERM=dumb")

	ptmx, err := pty.StartWithSize(cmd, winsize(cols, rows))
	if err != nil {
		return nil, err
	}

	c := &Command{
		ptmx:     ptmx,
		cmd:      cmd,
		onOutput: onOutput,
		onExit:   onExit,
		report:   rate.Sometimes{Interval: outputInterval},
	}
	safego.GoErr("content.command", c.readLoop, c.finish)
	return c, nil
}

func winsize(cols, rows int) *pty.Winsize {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)}
}

// SetSize resizes the pty so the command can reflow its output.
func (c *Command) SetSize(cols, rows int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.ptmx == nil {
		return nil
	}
	return pty.Setsize(c.ptmx, winsize(cols, rows))
}

// Output returns the plain-text output collected so far.
func (c *Command) Output() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ansi.Strip(c.out.String())
}

func (c *Command) readLoop() error {
	buf := make([]byte, 32*1024)
	for {
		n, err := c.ptmx.Read(buf)
		if n > 0 {
			c.mu.Lock()
			c.out.Write(buf[:n])
			c.mu.Unlock()
			c.report.Do(c.emit)
		}
		if err != nil {
			// The pty master reports EIO once the child side is gone.
			if errors.Is(err, io.EOF) || errors.Is(err, syscall.EIO) || errors.Is(err, os.ErrClosed) {
				return nil
			}
			return err
		}
	}
}

func (c *Command) emit() {
	if c.onOutput != nil {
		c.onOutput(c.Output())
	}
}

func (c *Command) finish(readErr error) {
	waitErr := c.cmd.Wait()

	c.mu.Lock()
	closed := c.closed
	c.closed = true
	if c.ptmx != nil {
		_ = c.ptmx.Close()
	}
	c.mu.Unlock()

	err := waitErr
	if err == nil {
		err = readErr
	}
	if closed {
		return
	}
	c.emit()
	if err != nil {
		logging.Info("command exited: %v", err)
	}
	if c.onExit != nil {
		c.onExit(err)
	}
}

// Close kills the command if it is still running.
func (c *Command) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if c.cmd != nil && c.cmd.Process != nil {
		_ = c.cmd.Process.Kill()
	}
	if c.ptmx != nil {
		return c.ptmx.Close()
	}
	return nil
}
