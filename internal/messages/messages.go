package messages

import (
	"time"

	"github.com/andyrewlee/scrollster/internal/content"
	"github.com/andyrewlee/scrollster/internal/scroll"
)

// ViewportInit is delivered one tick after the viewport handles exist
// so that sizes reflect the first layout.
type ViewportInit struct{}

// PollTick drives the resize watcher.
type PollTick struct {
	At time.Time
}

// SizeChanged is sent when the resize watcher detected new content or host sizes.
type SizeChanged struct {
	Change scroll.SizeChange
}

// ContentLoaded carries a freshly loaded or reloaded document.
type ContentLoaded struct {
	Doc content.Document
}

// ContentChanged is sent when a followed file changed on disk.
type ContentChanged struct {
	Path string
}

// CommandOutput carries the accumulated output of an --exec command.
type CommandOutput struct {
	Text string
}

// CommandExited is sent when an --exec command finishes.
type CommandExited struct {
	Err error
}

// ClipboardCopied is sent after the visible window was copied.
type ClipboardCopied struct {
	Lines int
}

// Error is sent when an operation fails
type Error struct {
	Err     error
	Context string
	Logged  bool
}

func (e Error) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}
