package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/surfacelab/pkg/math"
)

// Trackball turns mouse drags into an accumulated rotation by projecting
// cursor positions onto a virtual sphere centered in the viewport.
type Trackball struct {
	width, height float32

	rotation math.Quat
	dragging bool
	last     math.Vec3
}

// NewTrackball creates a trackball for a viewport of the given size.
func NewTrackball(width, height int) *Trackball {
	t := &Trackball{rotation: math.QuatIdentity()}
	t.Resize(width, height)
	return t
}

// Resize updates the viewport size used to map cursor positions.
func (t *Trackball) Resize(width, height int) {
	t.width = float32(max(width, 1))
	t.height = float32(max(height, 1))
}

// BeginDrag starts a drag at window coordinates (x, y).
func (t *Trackball) BeginDrag(x, y int32) {
	t.dragging = true
	t.last = t.project(x, y)
}

// Drag rotates by the arc between the previous and current cursor
// positions. It is a no-op outside a drag.
func (t *Trackball) Drag(x, y int32) {
	if !t.dragging {
		return
	}
	cur := t.project(x, y)
	t.rotation = math.QuatBetween(t.last, cur).Mul(t.rotation).Normalize()
	t.last = cur
}

// EndDrag finishes the current drag.
func (t *Trackball) EndDrag() {
	t.dragging = false
}

// Dragging reports whether a drag is in progress.
func (t *Trackball) Dragging() bool {
	return t.dragging
}

// Reset discards the accumulated rotation.
func (t *Trackball) Reset() {
	t.rotation = math.QuatIdentity()
	t.dragging = false
}

// Matrix returns the accumulated rotation.
func (t *Trackball) Matrix() math.Mat4 {
	return t.rotation.ToMat4()
}

// project maps window coordinates (origin top-left, y down) onto the unit
// sphere. Points outside the sphere's silhouette land on its rim.
func (t *Trackball) project(x, y int32) math.Vec3 {
	r := min(t.width, t.height) / 2
	p := math.Vec3{
		X: (float32(x) - t.width/2) / r,
		Y: (t.height/2 - float32(y)) / r,
	}
	d2 := p.X*p.X + p.Y*p.Y
	if d2 >= 1 {
		return p.Normalize()
	}
	p.Z = math32.Sqrt(1 - d2)
	return p
}
