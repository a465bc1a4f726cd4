// Package window owns the SDL2 window and its OpenGL context.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/surfacelab/internal/logger"
)

func init() {
	// SDL and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	Samples    int // MSAA samples, 0 disables multisampling
}

// glAttributes request a 4.1 core context, the newest macOS provides.
var glAttributes = []struct {
	attr  sdl.GLattr
	value int
}{
	{sdl.GL_CONTEXT_MAJOR_VERSION, 4},
	{sdl.GL_CONTEXT_MINOR_VERSION, 1},
	{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
	{sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG},
	{sdl.GL_DOUBLEBUFFER, 1},
	{sdl.GL_DEPTH_SIZE, 24},
}

// Window is an SDL2 window with a current GL context.
type Window struct {
	win        *sdl.Window
	ctx        sdl.GLContext
	fullscreen bool
}

// New opens the window and makes its GL context current.
func New(cfg Config) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	if err := setAttributes(cfg.Samples); err != nil {
		sdl.Quit()
		return nil, err
	}

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	win, err := sdl.CreateWindow(cfg.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width), int32(cfg.Height), flags)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	ctx, err := win.GLCreateContext()
	if err != nil {
		win.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	w := &Window{win: win, ctx: ctx, fullscreen: cfg.Fullscreen}
	w.SetVSync(cfg.VSync)

	dw, dh := w.DrawableSize()
	logger.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("drawable_width", dw),
		zap.Int("drawable_height", dh),
		zap.Int("samples", cfg.Samples),
		zap.Bool("fullscreen", cfg.Fullscreen),
	)
	return w, nil
}

func setAttributes(samples int) error {
	for _, a := range glAttributes {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			return fmt.Errorf("setting GL attribute %d: %w", a.attr, err)
		}
	}
	if samples > 0 {
		// Multisampling is optional; drivers without it still get a window.
		if err := sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, 1); err == nil {
			sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, samples)
		}
	}
	return nil
}

// SetVSync enables or disables swap synchronization.
func (w *Window) SetVSync(on bool) {
	interval := 0
	if on {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		logger.Warn("failed to set swap interval", zap.Int("interval", interval), zap.Error(err))
	}
}

// SetFullscreen switches between desktop fullscreen and windowed mode.
func (w *Window) SetFullscreen(on bool) error {
	var flags uint32
	if on {
		flags = sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	if err := w.win.SetFullscreen(flags); err != nil {
		return fmt.Errorf("SDL_SetWindowFullscreen failed: %w", err)
	}
	w.fullscreen = on
	return nil
}

// Fullscreen reports whether the window is fullscreen.
func (w *Window) Fullscreen() bool {
	return w.fullscreen
}

// Size returns the window size in screen coordinates, as used by mouse
// events.
func (w *Window) Size() (int, int) {
	width, height := w.win.GetSize()
	return int(width), int(height)
}

// DrawableSize returns the framebuffer size in pixels, which differs from
// Size on high-DPI displays.
func (w *Window) DrawableSize() (int, int) {
	width, height := w.win.GLGetDrawableSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.win.SetTitle(title)
}

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() {
	w.win.GLSwap()
}

// Close destroys the context and window and shuts SDL down.
func (w *Window) Close() {
	logger.Info("closing window")
	if w.ctx != nil {
		sdl.GLDeleteContext(w.ctx)
	}
	if w.win != nil {
		w.win.Destroy()
	}
	sdl.Quit()
}
