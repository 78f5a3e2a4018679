package content

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// DefaultTabWidth is used when a non-positive tab width is given.
const DefaultTabWidth = 8

// Document is a block of text lines with its natural size in cells.
type Document struct {
	Title string
	Lines []string
	Width int
}

// NewDocument splits text into lines, expands tabs and measures the widest line.
// Lines may carry ANSI styling; it does not count toward width.
func NewDocument(title, text string, tabWidth int) Document {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")

	doc := Document{Title: title}
	if text == "" {
		return doc
	}
	doc.Lines = strings.Split(text, "\n")
	for i, line := range doc.Lines {
		// Carriage returns overwrite the line; only the last segment is visible.
		if idx := strings.LastIndexByte(line, '\r'); idx >= 0 {
			line = line[idx+1:]
		}
		line = ExpandTabs(line, tabWidth)
		doc.Lines[i] = line
		if w := ansi.StringWidth(line); w > doc.Width {
			doc.Width = w
		}
	}
	return doc
}

// Height returns the number of lines.
func (d Document) Height() int {
	return len(d.Lines)
}

// Window returns the lines visible through a width x height window whose
// top-left corner sits at (col, row) in the document. Rows past the end are
// omitted; each line is cut to the window columns.
func (d Document) Window(row, col, width, height int) []string {
	if width <= 0 || height <= 0 {
		return nil
	}
	if row < 0 {
		row = 0
	}
	if col < 0 {
		col = 0
	}
	var out []string
	for r := row; r < row+height && r < len(d.Lines); r++ {
		out = append(out, ansi.Cut(d.Lines[r], col, col+width))
	}
	return out
}

// PlainWindow is Window with styling removed and trailing spaces trimmed,
// joined by newlines.
func (d Document) PlainWindow(row, col, width, height int) string {
	lines := d.Window(row, col, width, height)
	for i, line := range lines {
		lines[i] = strings.TrimRight(ansi.Strip(line), " ")
	}
	return strings.Join(lines, "\n")
}

// ExpandTabs replaces tabs with spaces up to the next tab stop.
// Escape sequences (CSI, OSC hyperlinks and the rest) are copied through
// and take no columns.
func ExpandTabs(line string, tabWidth int) string {
	if !strings.ContainsRune(line, '\t') {
		return line
	}
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}

	var b strings.Builder
	b.Grow(len(line) + tabWidth)
	col := 0
	var state byte
	for len(line) > 0 {
		seq, width, n, newState := ansi.DecodeSequence(line, state, nil)
		state = newState
		switch {
		case seq == "\t":
			pad := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", pad))
			col += pad
		case width == 0:
			b.WriteString(seq)
		default:
			b.WriteString(seq)
			col += runewidth.StringWidth(seq)
		}
		line = line[n:]
	}
	return b.String()
}
