package scrollview

import "github.com/andyrewlee/scrollster/internal/scroll"

// box is a cell rectangle the controller positions and sizes.
type box struct {
	rect  scroll.Rect
	style map[string]string
}

func (b *box) Bounds() scroll.Rect { return b.rect }

func (b *box) SetOffset(a scroll.Axis, v float64) {
	if a == scroll.Horizontal {
		b.rect.X = v
		return
	}
	b.rect.Y = v
}

func (b *box) SetExtent(a scroll.Axis, v float64) {
	if a == scroll.Horizontal {
		b.rect.W = v
		return
	}
	b.rect.H = v
}

// SetStyle records a bar option; the renderer ignores keys it does not know.
func (b *box) SetStyle(property, value string) {
	if b.style == nil {
		b.style = make(map[string]string)
	}
	b.style[property] = value
}

// containerBox is the viewport. Its parent is the screen area left over
// after the status line.
type containerBox struct {
	box
	parent  func() scroll.Rect
	notices int
	last    scroll.SizeChange
}

func (c *containerBox) ParentBounds() scroll.Rect {
	if c.parent == nil {
		return scroll.Rect{}
	}
	return c.parent()
}

func (c *containerBox) Notify(change scroll.SizeChange) {
	c.notices++
	c.last = change
}
