package scroll

import (
	"math"
	"testing"
)

type fakeElement struct {
	rect  Rect
	style map[string]string
}

func (f *fakeElement) Bounds() Rect { return f.rect }

func (f *fakeElement) SetOffset(a Axis, v float64) {
	if a == Horizontal {
		f.rect.X = v
		return
	}
	f.rect.Y = v
}

func (f *fakeElement) SetExtent(a Axis, v float64) {
	if a == Horizontal {
		f.rect.W = v
		return
	}
	f.rect.H = v
}

func (f *fakeElement) SetStyle(property, value string) {
	if f.style == nil {
		f.style = map[string]string{}
	}
	f.style[property] = value
}

type fakeContainer struct {
	fakeElement
	parent   Rect
	notified []SizeChange
}

func (f *fakeContainer) ParentBounds() Rect { return f.parent }

func (f *fakeContainer) Notify(change SizeChange) {
	f.notified = append(f.notified, change)
}

type rig struct {
	container *fakeContainer
	content   *fakeElement
	thumbV    *fakeElement
	thumbH    *fakeElement
	ctrl      *Controller
}

func newRig(t *testing.T, opts Options, parentW, parentH, contentW, contentH float64) *rig {
	t.Helper()
	r := &rig{
		container: &fakeContainer{parent: Rect{W: parentW, H: parentH}},
		content:   &fakeElement{rect: Rect{W: contentW, H: contentH}},
		thumbV:    &fakeElement{},
		thumbH:    &fakeElement{},
	}
	r.ctrl = New(Handles{
		Container: r.container,
		Content:   r.content,
		ThumbV:    r.thumbV,
		ThumbH:    r.thumbH,
	}, opts)
	if err := r.ctrl.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return r
}

func (r *rig) thumb(a Axis) *fakeElement {
	if a == Horizontal {
		return r.thumbH
	}
	return r.thumbV
}

func (r *rig) press(a Axis, at float64) {
	ev := Event{Kind: PointerDown, Target: thumbTarget(a)}
	if a == Horizontal {
		ev.X = at
	} else {
		ev.Y = at
	}
	r.ctrl.Dispatch(ev)
}

func (r *rig) move(a Axis, to float64) {
	ev := Event{Kind: PointerMove}
	if a == Horizontal {
		ev.X = to
	} else {
		ev.Y = to
	}
	r.ctrl.Dispatch(ev)
}

func (r *rig) release() {
	r.ctrl.Dispatch(Event{Kind: PointerUp})
}

func (r *rig) wheel(a Axis, forward bool) bool {
	return r.ctrl.Dispatch(Event{Kind: Wheel, Target: TargetContainer, Axis: a, Forward: forward})
}

const epsilon = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) <= epsilon
}

// assertInSync checks that thumb and content sit at the same scroll fraction
// and that the handles hold what the controller reports.
func assertInSync(t *testing.T, r *rig, a Axis) {
	t.Helper()
	st := r.ctrl.State(a)
	if got := r.thumb(a).rect.Origin(a); !approx(got, st.ThumbOffset) {
		t.Fatalf("%s thumb handle at %v, state says %v", a, got, st.ThumbOffset)
	}
	if got := r.content.rect.Origin(a); !approx(got, st.ContentOffset) {
		t.Fatalf("%s content handle at %v, state says %v", a, got, st.ContentOffset)
	}
	if !st.Scrollable {
		return
	}
	thumbFrac := st.ThumbOffset / (st.Viewport - st.ThumbLength)
	contentFrac := -st.ContentOffset / (st.Content - st.Viewport)
	if !approx(thumbFrac, contentFrac) {
		t.Fatalf("%s out of sync: thumb fraction %v, content fraction %v", a, thumbFrac, contentFrac)
	}
}
