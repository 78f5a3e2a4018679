package scroll

import (
	"time"

	"github.com/andyrewlee/scrollster/internal/logging"
)

// Options configures a Controller.
type Options struct {
	// WheelStep is the content distance of one wheel tick.
	WheelStep float64
	// PollInterval is the resize watcher interval.
	PollInterval time.Duration
	// Anchor selects drag behavior.
	Anchor DragAnchor
	// When the parent is smaller than MinParentSize on an axis the
	// container takes FallbackSize instead. Zero disables the floor.
	MinParentSize float64
	FallbackSize  float64
	// BarStyle is applied verbatim to both thumbs.
	BarStyle map[string]string
}

// DefaultOptions returns the stock behavior: 100 unit wheel steps, 500ms polling,
// grab anchoring and a 300 unit fallback when the parent is under 150.
func DefaultOptions() Options {
	return Options{
		WheelStep:     DefaultWheelStep,
		PollInterval:  DefaultPollInterval,
		Anchor:        AnchorGrab,
		MinParentSize: 150,
		FallbackSize:  300,
	}
}

// AxisState is a read-only view of one axis.
type AxisState struct {
	Viewport      float64
	Content       float64
	ThumbLength   float64
	ThumbOffset   float64
	ContentOffset float64
	Fraction      float64
	Scrollable    bool
	Dragging      bool
}

// Controller keeps the content and thumb handles of a viewport in sync.
// It is not safe for concurrent use; drive it from a single event loop.
type Controller struct {
	h    Handles
	opts Options

	axes     [len(axes)]axisState
	bindings bindings
	watcher  *Watcher
	subs     []func(SizeChange)
	ready    bool
}

// New creates a controller for the given handles. Handles are checked by Init.
func New(h Handles, opts Options) *Controller {
	if opts.WheelStep == 0 {
		opts.WheelStep = DefaultWheelStep
	}
	c := &Controller{h: h, opts: opts}
	c.watcher = NewWatcher(opts.PollInterval, c.sample, c.emit)
	return c
}

// Init sizes the container, computes both axes and binds listeners.
// It must run after the handles are attached to a laid-out host.
func (c *Controller) Init() error {
	if err := c.h.validate(); err != nil {
		return err
	}
	c.sizeContainer()
	c.watcher.Reset()
	for _, a := range axes {
		c.setupAxis(a)
	}
	c.ready = true
	return nil
}

// Ready reports whether Init succeeded.
func (c *Controller) Ready() bool {
	return c.ready
}

// Options returns the controller options.
func (c *Controller) Options() Options {
	return c.opts
}

// Subscribe registers fn for the size-changed signal. Subscribers run after
// the controller has re-derived its own state.
func (c *Controller) Subscribe(fn func(SizeChange)) {
	c.subs = append(c.subs, fn)
}

// Dispatch routes a raw input event to the bound listeners and reports
// whether any ran.
func (c *Controller) Dispatch(ev Event) bool {
	if !c.ready {
		return false
	}
	return c.bindings.dispatch(ev)
}

// Poll runs the resize watcher for the given time.
func (c *Controller) Poll(now time.Time) bool {
	if !c.ready {
		return false
	}
	return c.watcher.Poll(now)
}

// Refresh checks sizes now, ignoring the poll interval.
func (c *Controller) Refresh() bool {
	if !c.ready {
		return false
	}
	return c.watcher.Check()
}

// PollInterval returns the resize watcher interval.
func (c *Controller) PollInterval() time.Duration {
	return c.watcher.Interval()
}

// ThumbLength computes the thumb length for the current sizes of a.
// Non-positive sizes yield the viewport size, i.e. not scrollable.
func (c *Controller) ThumbLength(a Axis) float64 {
	s := c.axes[a]
	if s.viewport <= 0 || s.content <= 0 {
		return s.viewport
	}
	return ThumbLength(s.viewport, s.content)
}

// Scrollable reports whether a is scrollable.
func (c *Controller) Scrollable(a Axis) bool {
	return c.axes[a].scrollable
}

// ClampOffset clamps target into the legal range of the thumb or content on a.
func (c *Controller) ClampOffset(target float64, a Axis, isThumb bool) float64 {
	s := c.axes[a]
	if isThumb {
		return ClampThumb(target, s.viewport, s.thumb)
	}
	return ClampContent(target, s.viewport, s.content)
}

// Bound reports whether listeners of mode are attached for a.
func (c *Controller) Bound(a Axis, m Mode) bool {
	return c.bindings.bound(a, m)
}

// Dragging reports whether a thumb drag is active on a.
func (c *Controller) Dragging(a Axis) bool {
	return c.axes[a].drag.active
}

// Fraction returns the scroll position of a in [0, 1].
func (c *Controller) Fraction(a Axis) float64 {
	return c.axes[a].fraction
}

// ContentOffset returns the content offset of a, in [-(content-viewport), 0].
func (c *Controller) ContentOffset(a Axis) float64 {
	return c.axes[a].contentOffset()
}

// ThumbOffset returns the thumb offset of a, in [0, viewport-thumb].
func (c *Controller) ThumbOffset(a Axis) float64 {
	return c.axes[a].thumbOffset()
}

// State returns a snapshot of a.
func (c *Controller) State(a Axis) AxisState {
	s := c.axes[a]
	return AxisState{
		Viewport:      s.viewport,
		Content:       s.content,
		ThumbLength:   s.thumb,
		ThumbOffset:   s.thumbOffset(),
		ContentOffset: s.contentOffset(),
		Fraction:      s.fraction,
		Scrollable:    s.scrollable,
		Dragging:      s.drag.active,
	}
}

func (c *Controller) sample() Snapshot {
	var snap Snapshot
	if c.h.Content != nil {
		b := c.h.Content.Bounds()
		snap.ContentW, snap.ContentH = b.W, b.H
	}
	if ps, ok := c.h.Container.(ParentSizer); ok {
		p := ps.ParentBounds()
		snap.ParentW, snap.ParentH = p.W, p.H
	}
	return snap
}

func (c *Controller) emit(change SizeChange) {
	logging.Debug("viewport size changed: content %.0fx%.0f parent %.0fx%.0f",
		change.Current.ContentW, change.Current.ContentH,
		change.Current.ParentW, change.Current.ParentH)
	if change.Current.ParentChanged(change.Previous) {
		c.sizeContainer()
	}
	for _, a := range axes {
		c.setupAxis(a)
	}
	if n, ok := c.h.Container.(Notifier); ok {
		n.Notify(change)
	}
	for _, fn := range c.subs {
		fn(change)
	}
}

// sizeContainer derives the container size from its parent.
func (c *Controller) sizeContainer() {
	ps, ok := c.h.Container.(ParentSizer)
	if !ok {
		return
	}
	parent := ps.ParentBounds()
	for _, a := range axes {
		size := parent.Extent(a)
		if c.opts.MinParentSize > 0 && size < c.opts.MinParentSize {
			size = c.opts.FallbackSize
		}
		c.h.Container.SetExtent(a, size)
	}
}

// setupAxis recomputes thumb length and scrollability for a and rebinds
// its listeners. The content keeps its offset where the new range allows.
func (c *Controller) setupAxis(a Axis) {
	s := &c.axes[a]
	prev := s.contentOffset()
	wasScrollable := s.scrollable

	s.viewport = c.h.Container.Bounds().Extent(a)
	s.content = c.h.Content.Bounds().Extent(a)
	thumb := c.h.thumb(a)

	if !Scrollable(s.viewport, s.content) {
		s.scrollable = false
		s.thumb = 0
		s.fraction = 0
		s.drag = dragState{}
		c.bindings.detachAxis(a)
		thumb.SetExtent(a, 0)
		thumb.SetOffset(a, 0)
		c.h.Content.SetOffset(a, 0)
		if wasScrollable {
			logging.Debug("%s scrolling disabled", a)
		}
		return
	}

	s.scrollable = true
	s.thumb = ThumbLength(s.viewport, s.content)
	s.setContentOffset(prev)
	thumb.SetExtent(a, s.thumb)
	c.applyBarStyle()
	c.bind(a)
	c.apply(a)
	if !wasScrollable {
		logging.Debug("%s scrolling enabled: viewport %.0f content %.0f thumb %.2f",
			a, s.viewport, s.content, s.thumb)
	}
}

// bind detaches then attaches every listener of a.
func (c *Controller) bind(a Axis) {
	c.bindings.attach(a, Wheel, &listener{target: TargetContainer, fn: c.wheel(a)})
	c.bindings.attach(a, PointerDown, &listener{target: thumbTarget(a), fn: c.pressThumb(a)})
	c.bindings.attach(a, PointerMove, &listener{global: true, fn: c.moveThumb(a)})
	c.bindings.attach(a, PointerUp, &listener{global: true, fn: c.releaseThumb(a)})
}

func (c *Controller) applyBarStyle() {
	if len(c.opts.BarStyle) == 0 {
		return
	}
	for _, th := range []Element{c.h.ThumbV, c.h.ThumbH} {
		st, ok := th.(Styler)
		if !ok {
			continue
		}
		for prop, value := range c.opts.BarStyle {
			st.SetStyle(prop, value)
		}
	}
}

// apply writes both offsets of a in one step.
func (c *Controller) apply(a Axis) {
	s := &c.axes[a]
	c.h.thumb(a).SetOffset(a, s.thumbOffset())
	c.h.Content.SetOffset(a, s.contentOffset())
}
