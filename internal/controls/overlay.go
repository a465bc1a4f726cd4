package controls

// OverlayRect is the overlay's square in window coordinates (origin
// top-left, y down), as reported by mouse events.
type OverlayRect struct {
	X, Y, Size int32
}

// OverlayPlacement returns the overlay square anchored to the top-right
// corner of a window, with a margin.
func OverlayPlacement(windowW, windowH, size, margin int32) OverlayRect {
	size = max(min(size, windowW-2*margin, windowH-2*margin), 0)
	return OverlayRect{X: windowW - size - margin, Y: margin, Size: size}
}

// Contains reports whether a window point falls inside the overlay.
func (r OverlayRect) Contains(x, y int32) bool {
	return r.Size > 0 && x >= r.X && x < r.X+r.Size && y >= r.Y && y < r.Y+r.Size
}

// TexturePoint maps a window point inside the overlay to texture space,
// with v growing upward. ok is false outside the overlay.
func (r OverlayRect) TexturePoint(x, y int32) (p [2]float32, ok bool) {
	if !r.Contains(x, y) {
		return p, false
	}
	size := float32(r.Size)
	p[0] = (float32(x-r.X) + 0.5) / size
	p[1] = 1 - (float32(y-r.Y)+0.5)/size
	return p, true
}
