// Package camera provides the viewer's trackball camera and projection.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/surfacelab/pkg/math"
)

// Camera places the surface in front of the viewer: the trackball rotation,
// then a fixed tilt, then a translation along -Z by the zoom distance.
type Camera struct {
	Trackball *Trackball

	Zoom     float32 // z translation, negative is away from the viewer
	ZoomStep float32
	MinZoom  float32
	MaxZoom  float32

	TiltAxis  math.Vec3
	TiltAngle float32 // radians

	FOVY      float32 // radians
	Near, Far float32
}

// New creates a camera for a viewport of the given size with the default
// framing.
func New(width, height int) *Camera {
	return &Camera{
		Trackball: NewTrackball(width, height),
		Zoom:      -35,
		ZoomStep:  1,
		MinZoom:   -90,
		MaxZoom:   -2,
		TiltAxis:  math.Vec3{X: 0.707, Y: 0.707},
		TiltAngle: 0.7,
		FOVY:      math32.Pi / 8,
		Near:      0.1,
		Far:       100,
	}
}

// HandleWheel zooms by one step per wheel notch. Positive wheelY (scrolling
// away from the user) moves the surface closer.
func (c *Camera) HandleWheel(wheelY int32) {
	switch {
	case wheelY > 0:
		c.Zoom += c.ZoomStep
	case wheelY < 0:
		c.Zoom -= c.ZoomStep
	default:
		return
	}
	c.Zoom = min(max(c.Zoom, c.MinZoom), c.MaxZoom)
}

// ModelView returns translate(0, 0, zoom) * tilt * trackball.
func (c *Camera) ModelView() math.Mat4 {
	tilt := math.RotateAxis(c.TiltAxis, c.TiltAngle)
	return math.Translate(0, 0, c.Zoom).Mul(tilt).Mul(c.Trackball.Matrix())
}

// NormalMatrix returns the matrix that carries normals and tangents into
// view space.
func (c *Camera) NormalMatrix() math.Mat4 {
	return math.NormalMatrix(c.ModelView())
}

// Projection returns the perspective projection for the given aspect ratio.
func (c *Camera) Projection(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(c.FOVY, aspect, c.Near, c.Far)
}
