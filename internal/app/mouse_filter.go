package app

import (
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/time/rate"

	"github.com/andyrewlee/scrollster/internal/perf"
)

// mouseThrottle is the minimum spacing of wheel events and of motion
// events that do not change the pointer cell.
const mouseThrottle = 15 * time.Millisecond

// MouseFilter drops redundant mouse events before they reach the model.
type MouseFilter struct {
	mu           sync.Mutex
	motion       *rate.Limiter
	wheel        *rate.Limiter
	lastX, lastY int
}

// NewMouseFilter creates a filter with the default throttle.
func NewMouseFilter() *MouseFilter {
	return &MouseFilter{
		motion: rate.NewLimiter(rate.Every(mouseThrottle), 1),
		wheel:  rate.NewLimiter(rate.Every(mouseThrottle), 1),
		lastX:  -1,
		lastY:  -1,
	}
}

// Filter is a tea.WithFilter function.
func (f *MouseFilter) Filter(_ tea.Model, msg tea.Msg) tea.Msg {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch msg := msg.(type) {
	case tea.MouseMotionMsg:
		// Motion to a new cell always passes; drags must not lose cells.
		if msg.X != f.lastX || msg.Y != f.lastY {
			f.lastX, f.lastY = msg.X, msg.Y
			return msg
		}
		if !f.motion.Allow() {
			perf.Count("mouse_motion_dropped", 1)
			return nil
		}
	case tea.MouseWheelMsg:
		if !f.wheel.Allow() {
			perf.Count("mouse_wheel_dropped", 1)
			return nil
		}
	}
	return msg
}
