package content

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/andyrewlee/scrollster/internal/logging"
	"github.com/andyrewlee/scrollster/internal/safego"
)

var errWatchClosed = errors.New("file watcher closed unexpectedly")

// DefaultDebounce groups bursts of writes into one change notification.
const DefaultDebounce = 150 * time.Millisecond

// FileWatcher reports changes to a single file.
type FileWatcher struct {
	mu sync.Mutex

	path      string
	watcher   *fsnotify.Watcher
	onChanged func(path string)
	debounce  time.Duration
	timer     *time.Timer
	closed    bool
	closeOnce sync.Once
}

// NewFileWatcher watches path. The parent directory is watched rather than
// the file so that editors replacing the file by rename keep being seen.
func NewFileWatcher(path string, debounce time.Duration, onChanged func(path string)) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &FileWatcher{
		path:      abs,
		watcher:   watcher,
		onChanged: onChanged,
		debounce:  debounce,
	}, nil
}

// Path returns the absolute path being watched.
func (fw *FileWatcher) Path() string {
	return fw.path
}

// Run processes file system events until the context is canceled or the
// watcher closes. A watch error ends the run; the watcher is not reusable
// after that.
func (fw *FileWatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return fw.closedErr()
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			fw.schedule()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return fw.closedErr()
			}
			logging.Warn("file watcher %s: %v", fw.path, err)
			return fmt.Errorf("watch %s: %w", fw.path, err)
		}
	}
}

func (fw *FileWatcher) closedErr() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.closed {
		return nil
	}
	return errWatchClosed
}

// schedule fires onChanged once the file has been quiet for the debounce window.
func (fw *FileWatcher) schedule() {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.closed {
		return
	}
	if fw.timer != nil {
		fw.timer.Reset(fw.debounce)
		return
	}
	fw.timer = time.AfterFunc(fw.debounce, fw.fire)
}

func (fw *FileWatcher) fire() {
	fw.mu.Lock()
	fw.timer = nil
	closed := fw.closed
	fw.mu.Unlock()
	if closed || fw.onChanged == nil {
		return
	}
	safego.Run("content.watch", func() { fw.onChanged(fw.path) })
}

// Close stops the watcher. Pending notifications are dropped.
func (fw *FileWatcher) Close() error {
	var err error
	fw.closeOnce.Do(func() {
		fw.mu.Lock()
		fw.closed = true
		if fw.timer != nil {
			fw.timer.Stop()
			fw.timer = nil
		}
		fw.mu.Unlock()
		err = fw.watcher.Close()
	})
	return err
}
