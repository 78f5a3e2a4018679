package scroll

// EventKind identifies a raw input event.
type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
	Wheel
	eventKinds
)

// Target is the handle an event landed on.
type Target int

const (
	TargetNone Target = iota
	TargetContainer
	TargetThumbV
	TargetThumbH
)

func thumbTarget(a Axis) Target {
	if a == Horizontal {
		return TargetThumbH
	}
	return TargetThumbV
}

// Event is one raw input event from the host. X and Y are pointer
// coordinates in the same space as the container origin.
type Event struct {
	Kind   EventKind
	X, Y   float64
	Target Target

	// Wheel only.
	Axis    Axis
	Forward bool
}

func (e Event) coord(a Axis) float64 {
	if a == Horizontal {
		return e.X
	}
	return e.Y
}

// Mode groups the listeners bound for one interaction style.
type Mode int

const (
	ModeWheel Mode = iota
	ModeDrag
)

// listener is an owned binding. global listeners receive events
// regardless of target, so a drag that leaves the thumb is still tracked.
type listener struct {
	target Target
	global bool
	fn     func(Event)
}

// bindings holds at most one listener per axis and event kind.
type bindings struct {
	slots [len(axes)][eventKinds]*listener
}

// attach replaces whatever was bound in the slot.
func (b *bindings) attach(a Axis, kind EventKind, l *listener) {
	b.detach(a, kind)
	b.slots[a][kind] = l
}

func (b *bindings) detach(a Axis, kind EventKind) {
	b.slots[a][kind] = nil
}

func (b *bindings) detachAxis(a Axis) {
	for kind := EventKind(0); kind < eventKinds; kind++ {
		b.detach(a, kind)
	}
}

func (b *bindings) bound(a Axis, m Mode) bool {
	switch m {
	case ModeWheel:
		return b.slots[a][Wheel] != nil
	case ModeDrag:
		return b.slots[a][PointerDown] != nil ||
			b.slots[a][PointerMove] != nil ||
			b.slots[a][PointerUp] != nil
	}
	return false
}

func (b *bindings) count() int {
	n := 0
	for _, a := range axes {
		for _, l := range b.slots[a] {
			if l != nil {
				n++
			}
		}
	}
	return n
}

// dispatch runs every listener bound for ev.Kind whose target matches.
// Listeners are snapshotted first so a handler that rebinds cannot
// observe a half-updated table.
func (b *bindings) dispatch(ev Event) bool {
	var run []*listener
	for _, a := range axes {
		l := b.slots[a][ev.Kind]
		if l == nil {
			continue
		}
		if ev.Kind == Wheel && ev.Axis != a {
			continue
		}
		if !l.global && l.target != ev.Target {
			continue
		}
		run = append(run, l)
	}
	for _, l := range run {
		l.fn(ev)
	}
	return len(run) > 0
}
