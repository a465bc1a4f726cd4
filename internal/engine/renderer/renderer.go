// Package renderer draws surface meshes and the texture-space overlay
// with OpenGL 4.1 core.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/surfacelab/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [3]float32
}

// Renderer owns global GL state and the frame viewport.
type Renderer struct {
	config Config
}

// New initializes OpenGL and sets the default state.
// Must be called after the GL context is created and made current.
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	r := &Renderer{config: cfg}
	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Resize updates the drawable size in pixels.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = max(width, 1)
	r.config.Height = max(height, 1)
	logger.Debug("renderer resized",
		zap.Int("width", r.config.Width),
		zap.Int("height", r.config.Height),
	)
}

// Size returns the drawable size in pixels.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Aspect returns width / height.
func (r *Renderer) Aspect() float32 {
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin starts a new frame covering the whole drawable.
func (r *Renderer) Begin() {
	gl.Viewport(0, 0, int32(r.config.Width), int32(r.config.Height))
	c := r.config.ClearColor
	gl.ClearColor(c[0], c[1], c[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ReadPixels reads the current back buffer as tightly packed RGBA rows,
// bottom row first.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}

// CheckError drains the GL error queue and reports the first error.
func CheckError(op string) error {
	first := gl.GetError()
	if first == gl.NO_ERROR {
		return nil
	}
	for gl.GetError() != gl.NO_ERROR {
	}
	return fmt.Errorf("%s: GL error 0x%x", op, first)
}
