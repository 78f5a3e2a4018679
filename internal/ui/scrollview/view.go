package scrollview

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/andyrewlee/scrollster/internal/perf"
	"github.com/andyrewlee/scrollster/internal/scroll"
)

// roundCells rounds a float extent to whole cells, never negative.
func roundCells(v float64) int {
	if v <= 0 {
		return 0
	}
	return int(math.Floor(v + 0.5))
}

// cellSpan maps a thumb offset and length onto whole cells within limit.
// A visible thumb is always at least one cell.
func cellSpan(offset, length float64, limit int) (start, n int) {
	if limit <= 0 {
		return 0, 0
	}
	start = roundCells(offset)
	n = max(roundCells(length), 1)
	n = min(n, limit)
	if start+n > limit {
		start = limit - n
	}
	return start, n
}

// fit cuts or pads s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Cut(s, 0, width)
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// barCell renders one scrollbar cell from bar options layered over the
// palette. Unknown options are ignored.
func barCell(style map[string]string, thumb bool, fallback lipgloss.Style) string {
	st := fallback
	char := " "
	if thumb {
		for prop, value := range style {
			switch prop {
			case "background":
				st = st.Background(lipgloss.Color(value))
			case "foreground", "color":
				st = st.Foreground(lipgloss.Color(value))
			case "bold":
				st = st.Bold(truthy(value))
			case "faint":
				st = st.Faint(truthy(value))
			case "reverse":
				st = st.Reverse(truthy(value))
			case "char":
				if value != "" && ansi.StringWidth(value) == 1 {
					char = value
				}
			}
		}
	}
	return st.Render(char)
}

func truthy(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// View renders the visible window of the document, the scrollbars beside
// and below it, and the status line.
func (m *Model) View() string {
	if !m.sized {
		return ""
	}
	defer perf.Time("viewport_render")()
	cols, rows := m.visibleSize()
	out := m.withVerticalBar(m.contentLines(cols, rows), rows)
	if rows > 0 && cols > 0 && m.ctrl.Scrollable(scroll.Horizontal) {
		if out != "" {
			out += "\n"
		}
		out += m.horizontalBar(cols)
	}
	if m.showStatus {
		if out != "" {
			out += "\n"
		}
		out += m.statusLine(m.width)
	}
	return out
}

// Offsets returns the first visible document row and column.
func (m *Model) Offsets() (row, col int) {
	return roundCells(-m.ctrl.ContentOffset(scroll.Vertical)), roundCells(-m.ctrl.ContentOffset(scroll.Horizontal))
}

// VisibleText returns the visible window as plain text.
func (m *Model) VisibleText() string {
	cols, rows := m.visibleSize()
	row, col := m.Offsets()
	return m.doc.PlainWindow(row, col, cols, rows)
}

func (m *Model) contentLines(cols, rows int) []string {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	row, col := m.Offsets()
	window := m.doc.Window(row, col, cols, rows)
	lines := make([]string, rows)
	for i := range lines {
		var line string
		if i < len(window) {
			line = window[i]
		}
		lines[i] = fit(line, cols)
	}
	return lines
}

func (m *Model) thumbStyles() (thumb, track lipgloss.Style) {
	thumb = lipgloss.NewStyle().Background(m.palette.Thumb)
	track = lipgloss.NewStyle().Background(m.palette.Track)
	return thumb, track
}

// withVerticalBar appends the vertical bar cell to every content row and
// joins the rows. The thumb zone runs from its top cell to its bottom cell.
func (m *Model) withVerticalBar(lines []string, rows int) string {
	if rows == 0 || !m.ctrl.Scrollable(scroll.Vertical) {
		return strings.Join(lines, "\n")
	}
	region := m.thumbCells(scroll.Vertical)
	thumbStyle, trackStyle := m.thumbStyles()
	track := barCell(nil, false, trackStyle)
	thumb := barCell(m.thumbV.style, true, thumbStyle)
	top, bottom := region.Y, region.Y+region.Height-1

	var b, seg strings.Builder
	for r, line := range lines {
		switch {
		case r < top || r > bottom:
			if r > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(line + track)
		case r == top:
			if r > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(line)
			seg.WriteString(thumb)
		default:
			seg.WriteByte('\n')
			seg.WriteString(line + thumb)
		}
		if r == bottom {
			marked := seg.String()
			if m.zone != nil {
				marked = m.zone.Mark(zoneThumbV, marked)
			}
			b.WriteString(marked)
		}
	}
	return b.String()
}

// horizontalBar renders the row below the content. The corner cell under
// the vertical bar stays blank.
func (m *Model) horizontalBar(cols int) string {
	region := m.thumbCells(scroll.Horizontal)
	thumbStyle, trackStyle := m.thumbStyles()
	track := barCell(nil, false, trackStyle)
	thumb := barCell(m.thumbH.style, true, thumbStyle)

	var b strings.Builder
	b.WriteString(strings.Repeat(track, region.X))
	seg := strings.Repeat(thumb, region.Width)
	if m.zone != nil {
		seg = m.zone.Mark(zoneThumbH, seg)
	}
	b.WriteString(seg)
	b.WriteString(strings.Repeat(track, max(cols-region.X-region.Width, 0)))
	if m.barCols > 0 {
		b.WriteString(track)
	}
	return b.String()
}

// Indicator describes the vertical position: All, Top, Bot or NN%.
func (m *Model) Indicator() string {
	if !m.ctrl.Scrollable(scroll.Vertical) {
		return "All"
	}
	f := m.ctrl.Fraction(scroll.Vertical)
	switch {
	case f <= 0:
		return "Top"
	case f >= 1:
		return "Bot"
	}
	return fmt.Sprintf("%d%%", int(math.Round(f*100)))
}

func (m *Model) statusLine(width int) string {
	if width <= 0 {
		return ""
	}
	left := m.styles.StatusTitle.Render(" " + m.doc.Title + " ")
	var middle string
	switch {
	case m.err != nil:
		middle = m.styles.Error.Render(m.err.Error())
	case m.message != "":
		middle = m.styles.StatusMuted.Render(m.message)
	}

	pos := m.Indicator()
	if _, col := m.Offsets(); col > 0 {
		pos = fmt.Sprintf("col %d  %s", col+1, pos)
	}
	right := m.styles.StatusMuted.Render(" " + pos + " ")

	gap := width - ansi.StringWidth(left) - ansi.StringWidth(middle) - ansi.StringWidth(right)
	if gap < 1 {
		return fit(left+middle+right, width)
	}
	return left + middle + m.styles.Status.Render(strings.Repeat(" ", gap)) + right
}
