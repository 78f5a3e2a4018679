package common

import zone "github.com/lrstanley/bubblezone"

// HitRegion represents a rectangular hit target in view-local coordinates.
type HitRegion struct {
	ID     string
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether the point is within the hit region bounds.
func (h HitRegion) Contains(x, y int) bool {
	return x >= h.X && x < h.X+h.Width && y >= h.Y && y < h.Y+h.Height
}

// Empty reports whether the region covers no cells.
func (h HitRegion) Empty() bool {
	return h.Width <= 0 || h.Height <= 0
}

// ZoneRegion looks up a scanned zone as a hit region. ok is false when the
// manager is nil or the zone has not been rendered yet.
func ZoneRegion(z *zone.Manager, id string) (HitRegion, bool) {
	if z == nil {
		return HitRegion{}, false
	}
	info := z.Get(id)
	if info == nil || info.IsZero() {
		return HitRegion{}, false
	}
	return HitRegion{
		ID:     id,
		X:      info.StartX,
		Y:      info.StartY,
		Width:  info.EndX - info.StartX + 1,
		Height: info.EndY - info.StartY + 1,
	}, true
}
