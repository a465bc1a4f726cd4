// Package viewer implements the interactive surface viewer: window, input,
// background rebuilds and rendering.
package viewer

import (
	"context"
	"fmt"
	stdmath "math"
	"os"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/surfacelab/internal/assets"
	"github.com/Faultbox/surfacelab/internal/config"
	"github.com/Faultbox/surfacelab/internal/controls"
	"github.com/Faultbox/surfacelab/internal/engine/camera"
	"github.com/Faultbox/surfacelab/internal/engine/input"
	"github.com/Faultbox/surfacelab/internal/engine/lighting"
	"github.com/Faultbox/surfacelab/internal/engine/renderer"
	"github.com/Faultbox/surfacelab/internal/engine/screenshot"
	"github.com/Faultbox/surfacelab/internal/engine/texture"
	"github.com/Faultbox/surfacelab/internal/engine/window"
	"github.com/Faultbox/surfacelab/internal/logger"
	"github.com/Faultbox/surfacelab/internal/rebuild"
	"github.com/Faultbox/surfacelab/internal/remote"
	"github.com/Faultbox/surfacelab/pkg/math"
	"github.com/Faultbox/surfacelab/pkg/surface"
)

const overlayMargin = 10

// App is the viewer instance.
type App struct {
	cfg *config.Config
	log *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	surfaces *renderer.SurfaceRenderer
	overlay  *renderer.OverlayRenderer
	input    *input.Input
	camera   *camera.Camera
	light    lighting.PointLight

	state   *controls.State
	worker  *rebuild.Worker
	remote  *remote.Server
	assets  *assets.Manager
	capture *screenshot.Capture

	mesh        *renderer.GPUMesh
	meshHasUVs  bool
	running     bool
	wantShot    bool
	buildsShown int
}

// New creates the window, GL resources and background workers.
func New(cfg *config.Config) (*App, error) {
	state, err := controls.NewState(cfg)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:     cfg,
		log:     logger.Named("viewer"),
		state:   state,
		worker:  rebuild.NewWorker(),
		assets:  assets.NewManager(),
		capture: screenshot.New(cfg.Graphics.ScreenshotDir, "surface"),
		input:   input.New(),
	}

	// Window first: it creates the GL context.
	a.window, err = window.New(window.Config{
		Title:      a.title(),
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    4,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	dw, dh := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:      dw,
		Height:     dh,
		ClearColor: cfg.Graphics.ClearColor,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	if a.surfaces, err = renderer.NewSurfaceRenderer(); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create surface renderer: %w", err)
	}
	if a.overlay, err = renderer.NewOverlayRenderer(); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create overlay renderer: %w", err)
	}

	ww, wh := a.window.Size()
	a.camera = newCamera(cfg, ww, wh)
	lc := cfg.Lighting
	a.light = lighting.New(lc.Position, lc.Color, lc.Ambient, lc.Shininess)

	a.addAssetDirs()
	a.loadTextures()

	if cfg.Remote.Listen != "" {
		a.remote = remote.New(state.Params)
	}

	a.log.Info("viewer initialized",
		zap.Stringer("params", state.Params),
		zap.Stringer("variant", state.Variant))
	return a, nil
}

func newCamera(cfg *config.Config, width, height int) *camera.Camera {
	c := camera.New(width, height)
	cc := cfg.Camera
	c.Zoom = cc.Zoom
	c.ZoomStep = cc.ZoomStep
	c.MinZoom = cc.MinZoom
	c.MaxZoom = cc.MaxZoom
	c.TiltAxis = math.V3(cc.TiltAxis)
	c.TiltAngle = cc.TiltAngle
	c.FOVY = float32(float64(cfg.Graphics.FOVDegrees) * stdmath.Pi / 180)
	c.Near = cfg.Graphics.Near
	c.Far = cfg.Graphics.Far
	return c
}

// addAssetDirs registers the texture search roots. Later roots win.
func (a *App) addAssetDirs() {
	for _, dir := range []string{config.ConfigDir(), "."} {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		if err := a.assets.AddDir(dir); err != nil {
			a.log.Debug("skipping asset dir", zap.String("dir", dir), zap.Error(err))
		}
	}
}

func (a *App) loadTextures() {
	tc := a.cfg.Textures
	diffuse, _ := texture.Load(a.assets, tc.Diffuse, texture.KindDiffuse, tc.MaxSize)
	normal, _ := texture.Load(a.assets, tc.Normal, texture.KindNormal, tc.MaxSize)
	specular, _ := texture.Load(a.assets, tc.Specular, texture.KindSpecular, tc.MaxSize)
	a.surfaces.SetTextures(diffuse, normal, specular)
}

// Run runs the main loop until the window closes or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.worker.Run(ctx)
	if a.remote != nil {
		go func() {
			if err := a.remote.ListenAndServe(ctx, a.cfg.Remote.Listen); err != nil {
				a.log.Error("remote control stopped", zap.Error(err))
			}
		}()
	}
	a.requestBuild()

	a.running = true
	frames := 0
	fpsTimer := time.Now()

	a.log.Info("starting main loop")

	for a.running {
		if ctx.Err() != nil {
			break
		}

		// 1. Process input
		if a.input.Update() {
			a.running = false
			break
		}
		for _, event := range a.input.Events() {
			a.handleEvent(event)
		}

		// 2. Collect background work
		a.poll()

		// 3. Render and present
		a.render()
		if a.wantShot {
			a.wantShot = false
			a.takeScreenshot()
		}
		a.window.SwapBuffers()

		frames++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frames))
			frames = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handleEvent(e input.Event) {
	switch e.Type {
	case input.EventWindowResize:
		dw, dh := a.window.DrawableSize()
		a.renderer.Resize(dw, dh)
		ww, wh := a.window.Size()
		a.camera.Trackball.Resize(ww, wh)

	case input.EventKeyDown:
		action := keyAction(e.Key, e.Shift)
		if e.Repeat && !repeatable(action) {
			return
		}
		a.applyEffect(a.state.Apply(action))

	case input.EventMouseDown:
		if e.Button != sdl.BUTTON_LEFT {
			return
		}
		if a.overlayVisible() {
			if p, ok := a.overlayPlacement().TexturePoint(e.MouseX, e.MouseY); ok {
				a.state.SetPoint(p)
				return
			}
		}
		a.camera.Trackball.BeginDrag(e.MouseX, e.MouseY)

	case input.EventMouseMove:
		if a.camera.Trackball.Dragging() && a.input.ButtonDown(sdl.BUTTON_LEFT) {
			a.camera.Trackball.Drag(e.MouseX, e.MouseY)
		}

	case input.EventMouseUp:
		if e.Button == sdl.BUTTON_LEFT {
			a.camera.Trackball.EndDrag()
		}

	case input.EventWheel:
		a.camera.HandleWheel(e.WheelY)
	}
}

func (a *App) applyEffect(eff controls.Effect) {
	switch eff {
	case controls.EffectRebuild:
		a.requestBuild()
	case controls.EffectResetView:
		a.camera.Trackball.Reset()
		a.camera.Zoom = a.cfg.Camera.Zoom
	case controls.EffectToggleFullscreen:
		if err := a.window.SetFullscreen(!a.window.Fullscreen()); err != nil {
			a.log.Warn("fullscreen toggle failed", zap.Error(err))
			return
		}
		a.cfg.Graphics.Fullscreen = a.window.Fullscreen()
	case controls.EffectSave:
		a.save()
	case controls.EffectScreenshot:
		a.wantShot = true
	case controls.EffectQuit:
		a.running = false
	}
}

func (a *App) save() {
	a.state.Store(a.cfg)
	if err := a.cfg.Save(); err != nil {
		a.log.Error("failed to save config", zap.Error(err))
		return
	}
	a.log.Info("config saved", zap.String("dir", config.ConfigDir()))
}

func (a *App) takeScreenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.capture.SavePixels(pixels, w, h)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

func (a *App) requestBuild() {
	gen := a.worker.Submit(a.state.Params, a.cfg.SurfaceConfig(a.state.Variant))
	if a.remote != nil {
		a.remote.SetCurrent(a.state.Params)
	}
	a.window.SetTitle(a.title())
	a.log.Debug("rebuild requested",
		zap.Uint64("generation", gen),
		zap.Stringer("params", a.state.Params))
}

// poll applies finished builds and remote updates without blocking.
func (a *App) poll() {
	var updates <-chan surface.Params
	if a.remote != nil {
		updates = a.remote.Updates()
	}

	select {
	case p := <-updates:
		eff, err := a.state.SetParams(p)
		if err != nil {
			a.log.Warn("ignoring remote params", zap.Error(err))
		} else {
			a.applyEffect(eff)
		}
	default:
	}

	select {
	case res := <-a.worker.Results():
		a.showResult(res)
	default:
	}
}

func (a *App) showResult(res rebuild.Result) {
	if res.Err != nil {
		a.log.Warn("rebuild failed", zap.Stringer("params", res.Params), zap.Error(res.Err))
		return
	}

	gpu, err := renderer.UploadMesh(res.Mesh)
	if err != nil {
		a.log.Error("mesh upload failed", zap.Error(err))
		return
	}
	if a.mesh != nil {
		a.mesh.Delete()
	}
	a.mesh = gpu
	a.meshHasUVs = len(res.Mesh.UVs) > 0
	a.overlay.Update(res.Mesh)
	a.buildsShown++

	a.log.Info("mesh ready",
		zap.Stringer("mesh", res.Mesh),
		zap.Duration("elapsed", res.Elapsed))

	if a.remote != nil {
		a.remote.Broadcast(remote.NewStats(res.Mesh, a.state.Variant, res.Elapsed))
	}
}

func (a *App) render() {
	a.renderer.Begin()

	if a.mesh != nil {
		a.surfaces.Draw(a.mesh, renderer.Frame{
			Projection: a.camera.Projection(a.renderer.Aspect()),
			ModelView:  a.camera.ModelView(),
			Normal:     a.camera.NormalMatrix(),
			Light:      a.light,
			Point:      a.state.Point,
			Scale:      a.state.Scale,
		})
	}

	if a.overlayVisible() {
		a.overlay.Draw(a.overlayViewport(), a.surfaces.DiffuseTexture(), a.state.Point, a.state.Scale)
	}

	if err := renderer.CheckError("frame"); err != nil {
		a.log.Warn("GL error", zap.Error(err))
	}
}

func (a *App) overlayVisible() bool {
	return a.state.Overlay && a.meshHasUVs
}

// overlayPlacement returns the overlay square in window coordinates.
func (a *App) overlayPlacement() controls.OverlayRect {
	ww, wh := a.window.Size()
	return controls.OverlayPlacement(int32(ww), int32(wh), int32(a.cfg.UVOverlay.Size), overlayMargin)
}

// overlayViewport converts the overlay square to GL pixel coordinates
// (origin bottom-left), accounting for high-DPI scaling.
func (a *App) overlayViewport() renderer.Rect {
	r := a.overlayPlacement()
	ww, wh := a.window.Size()
	dw, dh := a.renderer.Size()
	sx := float64(dw) / float64(max(ww, 1))
	sy := float64(dh) / float64(max(wh, 1))
	return renderer.Rect{
		X: int(float64(r.X) * sx),
		Y: int(float64(int32(wh)-r.Y-r.Size) * sy),
		W: int(float64(r.Size) * sx),
		H: int(float64(r.Size) * sy),
	}
}

func (a *App) title() string {
	return fmt.Sprintf("surfacelab  %s  [%s]", a.state.Params, a.state.Variant)
}

// Close releases GL resources and the window.
func (a *App) Close() {
	a.log.Info("closing viewer", zap.Int("meshes_shown", a.buildsShown))

	if a.mesh != nil {
		a.mesh.Delete()
		a.mesh = nil
	}
	if a.overlay != nil {
		a.overlay.Close()
	}
	if a.surfaces != nil {
		a.surfaces.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
