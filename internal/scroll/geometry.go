package scroll

// ThumbLength returns the thumb length for a viewport showing part of content:
// the viewport size scaled by the visible fraction. Both sizes must be positive.
func ThumbLength(viewport, content float64) float64 {
	return viewport / content * viewport
}

// Scrollable reports whether content overflows the viewport.
// Non-positive sizes are never scrollable and skip the ratio entirely.
func Scrollable(viewport, content float64) bool {
	if viewport <= 0 || content <= 0 {
		return false
	}
	return ThumbLength(viewport, content) < viewport
}

// ClampThumb clamps a thumb offset into [0, viewport-thumb].
func ClampThumb(target, viewport, thumb float64) float64 {
	limit := viewport - thumb
	if limit < 0 {
		limit = 0
	}
	switch {
	case target <= 0:
		return 0
	case target >= limit:
		return limit
	}
	return target
}

// ClampContent clamps a content offset into [-(content-viewport), 0].
// Content that fits is pinned to 0.
func ClampContent(target, viewport, content float64) float64 {
	limit := viewport - content
	if limit > 0 {
		limit = 0
	}
	switch {
	case target >= 0:
		return 0
	case target <= limit:
		return limit
	}
	return target
}

// axisState is the derived state of one axis. fraction is the only
// position value stored; both offsets are computed from it.
type axisState struct {
	viewport   float64
	content    float64
	thumb      float64
	scrollable bool
	fraction   float64
	drag       dragState
}

// track is the distance the thumb can travel.
func (s *axisState) track() float64 {
	return s.viewport - s.thumb
}

// span is the distance the content can travel.
func (s *axisState) span() float64 {
	return s.content - s.viewport
}

func (s *axisState) thumbOffset() float64 {
	if !s.scrollable {
		return 0
	}
	return s.fraction * s.track()
}

func (s *axisState) contentOffset() float64 {
	if !s.scrollable {
		return 0
	}
	if s.fraction == 0 {
		return 0
	}
	return -s.fraction * s.span()
}

func (s *axisState) setThumbOffset(v float64) {
	v = ClampThumb(v, s.viewport, s.thumb)
	track := s.track()
	if track <= 0 {
		s.fraction = 0
		return
	}
	s.fraction = v / track
}

func (s *axisState) setContentOffset(v float64) {
	v = ClampContent(v, s.viewport, s.content)
	span := s.span()
	if span <= 0 || v == 0 {
		s.fraction = 0
		return
	}
	s.fraction = -v / span
}
