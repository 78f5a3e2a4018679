package scroll

// DragAnchor selects how a thumb drag maps pointer motion to thumb position.
type DragAnchor int

const (
	// AnchorGrab keeps the point where the thumb was grabbed under the
	// pointer: moving the pointer by d moves the thumb by d.
	AnchorGrab DragAnchor = iota
	// AnchorCenter recenters the thumb under the pointer on every move,
	// so the thumb jumps when a drag starts away from its middle.
	AnchorCenter
)

// ParseDragAnchor maps a config value to a DragAnchor. Unknown values grab.
func ParseDragAnchor(s string) DragAnchor {
	if s == "center" {
		return AnchorCenter
	}
	return AnchorGrab
}

func (d DragAnchor) String() string {
	if d == AnchorCenter {
		return "center"
	}
	return "grab"
}

// dragState is the Idle/Dragging machine of one axis.
type dragState struct {
	active bool
	anchor float64 // pointer position inside the container at press
	start  float64 // thumb offset at press
}

func (c *Controller) pressThumb(a Axis) func(Event) {
	return func(ev Event) {
		s := &c.axes[a]
		if !s.scrollable {
			return
		}
		s.drag = dragState{
			active: true,
			anchor: c.inner(a, ev),
			start:  s.thumbOffset(),
		}
	}
}

func (c *Controller) moveThumb(a Axis) func(Event) {
	return func(ev Event) {
		s := &c.axes[a]
		if !s.drag.active {
			return
		}
		pointer := c.inner(a, ev)
		var target float64
		switch c.opts.Anchor {
		case AnchorCenter:
			target = pointer - s.thumb/2
		default:
			target = s.drag.start + (pointer - s.drag.anchor)
		}
		// Content follows at -(target*content/viewport); with the fraction
		// as shared state that is the same position the clamped thumb gets.
		s.setThumbOffset(target)
		c.apply(a)
	}
}

func (c *Controller) releaseThumb(a Axis) func(Event) {
	return func(Event) {
		s := &c.axes[a]
		if !s.drag.active {
			return
		}
		s.drag = dragState{}
	}
}

// inner converts an event coordinate to container-local space.
func (c *Controller) inner(a Axis, ev Event) float64 {
	return ev.coord(a) - c.h.Container.Bounds().Origin(a)
}
