package scrollview

import (
	"time"

	tea "charm.land/bubbletea/v2"
	zone "github.com/lrstanley/bubblezone"

	"github.com/andyrewlee/scrollster/internal/content"
	"github.com/andyrewlee/scrollster/internal/logging"
	"github.com/andyrewlee/scrollster/internal/messages"
	"github.com/andyrewlee/scrollster/internal/scroll"
	"github.com/andyrewlee/scrollster/internal/ui/common"
)

const (
	zoneThumbV = "scrollview-thumb-v"
	zoneThumbH = "scrollview-thumb-h"
)

// Model hosts a scroll controller over a document in the terminal.
type Model struct {
	ctrl      *scroll.Controller
	container *containerBox
	content   *box
	thumbV    *box
	thumbH    *box

	doc    content.Document
	width  int
	height int
	sized  bool
	queued bool

	pending []scroll.SizeChange

	// Cells taken by the scrollbars, outside the controller's viewport.
	barCols int
	barRows int

	palette    common.Palette
	styles     common.Styles
	zone       *zone.Manager
	showStatus bool
	message    string
	err        error
}

// New creates a viewport model. The controller is initialized once the
// first window size has arrived.
func New(opts scroll.Options) *Model {
	m := &Model{
		container:  &containerBox{},
		content:    &box{},
		thumbV:     &box{},
		thumbH:     &box{},
		palette:    common.DarkPalette,
		styles:     common.DefaultStyles(),
		showStatus: true,
	}
	m.container.parent = m.parentBounds
	m.ctrl = scroll.New(scroll.Handles{
		Container: m.container,
		Content:   m.content,
		ThumbV:    m.thumbV,
		ThumbH:    m.thumbH,
	}, opts)
	m.ctrl.Subscribe(func(change scroll.SizeChange) {
		m.pending = append(m.pending, change)
	})
	return m
}

// SetZone sets the shared zone manager for thumb hit targets.
func (m *Model) SetZone(z *zone.Manager) { m.zone = z }

// SetPalette switches colors.
func (m *Model) SetPalette(p common.Palette) {
	m.palette = p
	m.styles = common.NewStyles(p)
}

// SetShowStatus controls whether the status line is rendered. It changes
// the parent height, so the controller re-checks sizes.
func (m *Model) SetShowStatus(show bool) tea.Cmd {
	if m.showStatus == show {
		return nil
	}
	m.showStatus = show
	return m.refresh()
}

// ShowStatus reports whether the status line is shown.
func (m *Model) ShowStatus() bool { return m.showStatus }

// SetMessage sets the status line message and clears any error.
func (m *Model) SetMessage(msg string) {
	m.message = msg
	m.err = nil
}

// SetError shows err in the status line.
func (m *Model) SetError(err error) { m.err = err }

// Controller returns the scroll controller.
func (m *Model) Controller() *scroll.Controller { return m.ctrl }

// Document returns the current document.
func (m *Model) Document() content.Document { return m.doc }

// SetDocument replaces the content. The scroll position is kept where the
// new size allows.
func (m *Model) SetDocument(doc content.Document) tea.Cmd {
	m.doc = doc
	m.content.rect.W = float64(doc.Width)
	m.content.rect.H = float64(doc.Height())
	return m.refresh()
}

// Init initializes the viewport.
func (m *Model) Init() tea.Cmd { return nil }

// SetSize sets the screen area. The first call schedules controller init
// for the next update so the layout is settled first.
func (m *Model) SetSize(width, height int) tea.Cmd {
	m.width = width
	m.height = height
	m.sized = true
	if m.ctrl.Ready() {
		return m.refresh()
	}
	if m.queued {
		return nil
	}
	m.queued = true
	return func() tea.Msg { return messages.ViewportInit{} }
}

// ViewportSize returns the visible viewport in cells.
func (m *Model) ViewportSize() (cols, rows int) {
	return m.visibleSize()
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m, m.SetSize(msg.Width, msg.Height)
	case messages.ViewportInit:
		return m, m.initController()
	case messages.PollTick:
		if !m.ctrl.Ready() {
			return m, nil
		}
		if m.ctrl.Poll(msg.At) {
			m.settleBars()
		}
		return m, common.SafeBatch(m.flushChanges(), m.pollCmd())
	case tea.MouseClickMsg:
		return m.handleMouseClick(msg)
	case tea.MouseMotionMsg:
		m.ctrl.Dispatch(scroll.Event{Kind: scroll.PointerMove, X: float64(msg.X), Y: float64(msg.Y)})
	case tea.MouseReleaseMsg:
		m.ctrl.Dispatch(scroll.Event{Kind: scroll.PointerUp, X: float64(msg.X), Y: float64(msg.Y)})
	case tea.MouseWheelMsg:
		return m.handleMouseWheel(msg)
	}
	return m, nil
}

func (m *Model) initController() tea.Cmd {
	if m.ctrl.Ready() {
		return nil
	}
	if err := m.ctrl.Init(); err != nil {
		m.err = err
		return common.ReportError("viewport init", err)
	}
	m.settleBars()
	cols, rows := m.visibleSize()
	logging.Info("viewport ready: %dx%d, content %dx%d", cols, rows, m.doc.Width, m.doc.Height())
	return common.SafeBatch(m.flushChanges(), m.pollCmd())
}

func (m *Model) pollCmd() tea.Cmd {
	return common.SafeTick(m.ctrl.PollInterval(), func(t time.Time) tea.Msg {
		return messages.PollTick{At: t}
	})
}

// refresh re-checks sizes now instead of waiting for the next poll.
func (m *Model) refresh() tea.Cmd {
	if !m.ctrl.Ready() {
		return nil
	}
	if m.ctrl.Refresh() {
		m.settleBars()
	}
	return m.flushChanges()
}

// settleBars reserves a column for the vertical bar and a row for the
// horizontal bar while each axis scrolls. Reserving cells only shrinks the
// viewport, so scrollability settles within a couple of rounds.
func (m *Model) settleBars() {
	for range 3 {
		cols := boolCells(m.ctrl.Scrollable(scroll.Vertical))
		rows := boolCells(m.ctrl.Scrollable(scroll.Horizontal))
		if cols == m.barCols && rows == m.barRows {
			return
		}
		m.barCols, m.barRows = cols, rows
		m.ctrl.Refresh()
	}
}

func boolCells(b bool) int {
	if b {
		return 1
	}
	return 0
}

// flushChanges turns size changes seen by the controller into messages.
func (m *Model) flushChanges() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(m.pending))
	for _, change := range m.pending {
		cmds = append(cmds, func() tea.Msg { return messages.SizeChanged{Change: change} })
	}
	m.pending = m.pending[:0]
	return common.SafeBatch(cmds...)
}

// screenSize is the area above the status line: content plus bars.
func (m *Model) screenSize() (cols, rows int) {
	rows = m.height
	if m.showStatus && rows > 0 {
		rows--
	}
	return m.width, rows
}

// parentBounds is the region the controller sizes the viewport from.
func (m *Model) parentBounds() scroll.Rect {
	cols, rows := m.screenSize()
	return scroll.Rect{W: float64(max(cols-m.barCols, 0)), H: float64(max(rows-m.barRows, 0))}
}

func (m *Model) handleMouseClick(msg tea.MouseClickMsg) (*Model, tea.Cmd) {
	if msg.Button != tea.MouseLeft {
		return m, nil
	}
	m.ctrl.Dispatch(scroll.Event{
		Kind:   scroll.PointerDown,
		X:      float64(msg.X),
		Y:      float64(msg.Y),
		Target: m.targetAt(msg.X, msg.Y),
	})
	return m, nil
}

func (m *Model) handleMouseWheel(msg tea.MouseWheelMsg) (*Model, tea.Cmd) {
	ev := scroll.Event{
		Kind: scroll.Wheel,
		X:    float64(msg.X),
		Y:    float64(msg.Y),
	}
	switch msg.Button {
	case tea.MouseWheelUp:
		ev.Axis = scroll.Vertical
	case tea.MouseWheelDown:
		ev.Axis, ev.Forward = scroll.Vertical, true
	case tea.MouseWheelLeft:
		ev.Axis = scroll.Horizontal
	case tea.MouseWheelRight:
		ev.Axis, ev.Forward = scroll.Horizontal, true
	default:
		return m, nil
	}
	// Terminals without horizontal wheel report shift+wheel instead.
	if msg.Mod.Contains(tea.ModShift) {
		ev.Axis = scroll.Horizontal
	}
	if m.insideScreen(msg.X, msg.Y) {
		ev.Target = scroll.TargetContainer
	}
	m.ctrl.Dispatch(ev)
	return m, nil
}

// targetAt resolves what a press at (x, y) landed on. Scanned zones are
// preferred; before the first scan the thumb spans are computed directly.
func (m *Model) targetAt(x, y int) scroll.Target {
	if m.thumbRegion(scroll.Vertical).Contains(x, y) {
		return scroll.TargetThumbV
	}
	if m.thumbRegion(scroll.Horizontal).Contains(x, y) {
		return scroll.TargetThumbH
	}
	if m.insideScreen(x, y) {
		return scroll.TargetContainer
	}
	return scroll.TargetNone
}

// insideScreen reports whether (x, y) is on the content or its bars.
func (m *Model) insideScreen(x, y int) bool {
	cols, rows := m.visibleSize()
	return common.HitRegion{Width: cols + m.barCols, Height: rows + m.barRows}.Contains(x, y)
}

func (m *Model) thumbRegion(a scroll.Axis) common.HitRegion {
	if !m.ctrl.Scrollable(a) {
		return common.HitRegion{}
	}
	id := zoneThumbV
	if a == scroll.Horizontal {
		id = zoneThumbH
	}
	if r, ok := common.ZoneRegion(m.zone, id); ok {
		return r
	}
	return m.thumbCells(a)
}

// thumbCells is the cell rectangle a thumb is drawn in. The vertical bar
// is the column right of the content, the horizontal bar the row below it.
func (m *Model) thumbCells(a scroll.Axis) common.HitRegion {
	cols, rows := m.visibleSize()
	if cols <= 0 || rows <= 0 || !m.ctrl.Scrollable(a) {
		return common.HitRegion{}
	}
	st := m.ctrl.State(a)
	if a == scroll.Horizontal {
		start, n := cellSpan(st.ThumbOffset, st.ThumbLength, cols)
		return common.HitRegion{ID: zoneThumbH, X: start, Y: rows, Width: n, Height: 1}
	}
	start, n := cellSpan(st.ThumbOffset, st.ThumbLength, rows)
	return common.HitRegion{ID: zoneThumbV, X: cols, Y: start, Width: 1, Height: n}
}

// visibleSize is the content window: the container clipped to its parent.
func (m *Model) visibleSize() (cols, rows int) {
	parent := m.parentBounds()
	w, h := parent.W, parent.H
	if m.ctrl.Ready() {
		b := m.container.Bounds()
		w, h = min(b.W, w), min(b.H, h)
	}
	return roundCells(w), roundCells(h)
}
