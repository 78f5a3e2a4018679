package scroll

import "time"

// DefaultPollInterval is how often the watcher samples sizes.
const DefaultPollInterval = 500 * time.Millisecond

// Snapshot is the set of sizes the watcher compares between polls.
type Snapshot struct {
	ContentW, ContentH float64
	ParentW, ParentH   float64
}

// ParentChanged reports whether the host region changed between two snapshots.
func (s Snapshot) ParentChanged(other Snapshot) bool {
	return s.ParentW != other.ParentW || s.ParentH != other.ParentH
}

// SizeChange is the payload of the size-changed signal.
type SizeChange struct {
	Previous Snapshot
	Current  Snapshot
}

// Watcher detects size changes by comparing samples taken on a fixed interval.
// Time is supplied by the caller so polling is deterministic under a fake clock.
type Watcher struct {
	interval time.Duration
	sample   func() Snapshot
	emit     func(SizeChange)

	last     Snapshot
	lastPoll time.Time
	polled   bool
}

// NewWatcher creates a watcher. sample reads current sizes; emit receives changes.
func NewWatcher(interval time.Duration, sample func() Snapshot, emit func(SizeChange)) *Watcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Watcher{
		interval: interval,
		sample:   sample,
		emit:     emit,
	}
}

// Interval returns the poll interval.
func (w *Watcher) Interval() time.Duration {
	return w.interval
}

// Reset records the current sizes as known without emitting.
func (w *Watcher) Reset() {
	w.last = w.sample()
}

// Last returns the last known sizes.
func (w *Watcher) Last() Snapshot {
	return w.last
}

// Poll samples sizes if at least one interval has passed since the previous
// poll and emits a change if they differ. It reports whether a change was emitted.
func (w *Watcher) Poll(now time.Time) bool {
	if w.polled && now.Sub(w.lastPoll) < w.interval {
		return false
	}
	w.polled = true
	w.lastPoll = now
	return w.check()
}

// Check samples immediately, ignoring the interval.
func (w *Watcher) Check() bool {
	return w.check()
}

func (w *Watcher) check() bool {
	cur := w.sample()
	if cur == w.last {
		return false
	}
	change := SizeChange{Previous: w.last, Current: cur}
	w.last = cur
	if w.emit != nil {
		w.emit(change)
	}
	return true
}
