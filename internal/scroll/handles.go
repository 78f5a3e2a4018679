package scroll

import (
	"errors"
	"fmt"
)

// Axis selects a scroll direction.
type Axis int

const (
	Vertical Axis = iota
	Horizontal
)

var axes = [...]Axis{Vertical, Horizontal}

func (a Axis) String() string {
	switch a {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return "unknown"
	}
}

// Rect is a box in host units. X and Y are offsets from the parent.
type Rect struct {
	X, Y float64
	W, H float64
}

// Extent returns the size of r along a.
func (r Rect) Extent(a Axis) float64 {
	if a == Horizontal {
		return r.W
	}
	return r.H
}

// Origin returns the offset of r along a.
func (r Rect) Origin(a Axis) float64 {
	if a == Horizontal {
		return r.X
	}
	return r.Y
}

// Element is a live geometry handle owned by the host.
// The controller reads Bounds and writes position and size along one axis.
type Element interface {
	Bounds() Rect
	SetOffset(a Axis, v float64)
	SetExtent(a Axis, v float64)
}

// Styler is implemented by thumb handles that accept inline style properties.
// Properties are applied verbatim; the host decides which ones it understands.
type Styler interface {
	SetStyle(property, value string)
}

// ParentSizer is implemented by container handles that can report the size
// of the region they are placed in.
type ParentSizer interface {
	ParentBounds() Rect
}

// Notifier is implemented by container handles that want the size-changed signal.
type Notifier interface {
	Notify(SizeChange)
}

// Handles are the four host elements the controller drives.
type Handles struct {
	Container Element
	Content   Element
	ThumbV    Element
	ThumbH    Element
}

// ErrMissingHandle is returned by Init when a handle is absent.
var ErrMissingHandle = errors.New("scroll: missing handle")

func (h Handles) validate() error {
	checks := []struct {
		name string
		el   Element
	}{
		{"container", h.Container},
		{"content", h.Content},
		{"vertical thumb", h.ThumbV},
		{"horizontal thumb", h.ThumbH},
	}
	for _, c := range checks {
		if c.el == nil {
			return fmt.Errorf("%w: %s", ErrMissingHandle, c.name)
		}
	}
	return nil
}

func (h Handles) thumb(a Axis) Element {
	if a == Horizontal {
		return h.ThumbH
	}
	return h.ThumbV
}
