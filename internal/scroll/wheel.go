package scroll

// DefaultWheelStep is the content distance moved by one wheel tick.
const DefaultWheelStep = 100

// wheelDelta is -1 for forward (down/right) ticks, which move content
// up/left, and +1 otherwise.
func wheelDelta(forward bool) float64 {
	if forward {
		return -1
	}
	return 1
}

func (c *Controller) wheel(a Axis) func(Event) {
	return func(ev Event) {
		s := &c.axes[a]
		if !s.scrollable {
			return
		}
		step := wheelDelta(ev.Forward) * c.opts.WheelStep
		// The thumb moves by step * -(viewport/content); deriving it from
		// the shared fraction yields exactly that.
		s.setContentOffset(s.contentOffset() + step)
		c.apply(a)
	}
}
