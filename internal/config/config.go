// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/surfacelab/pkg/surface"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all viewer settings.
type Config struct {
	Surface   SurfaceConfig   `yaml:"surface"`
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Camera    CameraConfig    `yaml:"camera"`
	Lighting  LightingConfig  `yaml:"lighting"`
	Textures  TextureConfig   `yaml:"textures"`
	UVOverlay UVOverlayConfig `yaml:"uv_overlay"`
	Remote    RemoteConfig    `yaml:"remote"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SurfaceConfig holds the shape parameters and tessellation settings.
type SurfaceConfig struct {
	A          float64 `yaml:"a"`
	C          float64 `yaml:"c"`
	Phi        float64 `yaml:"phi"`         // radians
	USteps     int     `yaml:"u_steps"`     // 0 = variant default
	VSteps     int     `yaml:"v_steps"`     // 0 = variant default
	Variant    string  `yaml:"variant"`     // wireframe, lit or textured
	IndexWidth int     `yaml:"index_width"` // 16 or 32
	ParamStep  float64 `yaml:"param_step"`  // keyboard increment
}

// GraphicsConfig holds display and projection settings.
type GraphicsConfig struct {
	Width         int        `yaml:"width"`
	Height        int        `yaml:"height"`
	Fullscreen    bool       `yaml:"fullscreen"`
	VSync         bool       `yaml:"vsync"`
	FOVDegrees    float32    `yaml:"fov_degrees"`
	Near          float32    `yaml:"near"`
	Far           float32    `yaml:"far"`
	ClearColor    [3]float32 `yaml:"clear_color"`
	ScreenshotDir string     `yaml:"screenshot_dir"`
}

// CameraConfig holds trackball and zoom settings.
type CameraConfig struct {
	Zoom      float32    `yaml:"zoom"`
	ZoomStep  float32    `yaml:"zoom_step"`
	MinZoom   float32    `yaml:"min_zoom"`
	MaxZoom   float32    `yaml:"max_zoom"`
	TiltAxis  [3]float32 `yaml:"tilt_axis"`
	TiltAngle float32    `yaml:"tilt_angle"` // radians
}

// LightingConfig holds the point light and material settings.
type LightingConfig struct {
	Position  [3]float32 `yaml:"position"`
	Color     [3]float32 `yaml:"color"`
	Ambient   float32    `yaml:"ambient"`
	Shininess float32    `yaml:"shininess"`
}

// TextureConfig holds texture map paths for the textured variant.
type TextureConfig struct {
	Diffuse  string `yaml:"diffuse"`
	Normal   string `yaml:"normal"`
	Specular string `yaml:"specular"`
	MaxSize  int    `yaml:"max_size"` // 0 = no downscale
}

// UVOverlayConfig holds settings for the texture-space overlay.
type UVOverlayConfig struct {
	Enabled   bool       `yaml:"enabled"`
	Size      int        `yaml:"size"` // pixels
	Point     [2]float32 `yaml:"point"`
	Scale     [2]float32 `yaml:"scale"`
	ScaleStep float32    `yaml:"scale_step"`
}

// RemoteConfig holds the WebSocket control endpoint settings.
type RemoteConfig struct {
	Listen string `yaml:"listen"` // empty = disabled
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Surface: SurfaceConfig{
			A:          1.0,
			C:          0.5,
			Phi:        0.3,
			Variant:    "textured",
			IndexWidth: 16,
			ParamStep:  0.1,
		},
		Graphics: GraphicsConfig{
			Width:         1024,
			Height:        768,
			Fullscreen:    false,
			VSync:         true,
			FOVDegrees:    22.5,
			Near:          0.1,
			Far:           100,
			ClearColor:    [3]float32{0, 0, 0},
			ScreenshotDir: "screenshots",
		},
		Camera: CameraConfig{
			Zoom:      -35,
			ZoomStep:  1,
			MinZoom:   -90,
			MaxZoom:   -2,
			TiltAxis:  [3]float32{0.707, 0.707, 0},
			TiltAngle: 0.7,
		},
		Lighting: LightingConfig{
			Position:  [3]float32{5, 5, 5},
			Color:     [3]float32{0.7, 0, 0},
			Ambient:   0.1,
			Shininess: 32,
		},
		Textures: TextureConfig{
			Diffuse:  "textures/diffuse.jpg",
			Normal:   "textures/normal.jpg",
			Specular: "textures/specular.jpg",
			MaxSize:  2048,
		},
		UVOverlay: UVOverlayConfig{
			Enabled:   true,
			Size:      256,
			Point:     [2]float32{0.5, 0.5},
			Scale:     [2]float32{1, 1},
			ScaleStep: 0.1,
		},
		Remote: RemoteConfig{
			Listen: "",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Params returns the configured shape parameters.
func (c *Config) Params() surface.Params {
	return surface.Params{A: c.Surface.A, C: c.Surface.C, Phi: c.Surface.Phi}
}

// Variant returns the configured preset.
func (c *Config) Variant() (surface.Variant, error) {
	return surface.ParseVariant(c.Surface.Variant)
}

// SurfaceConfig returns the builder configuration for the given preset with
// the configured grid and index width overrides applied.
func (c *Config) SurfaceConfig(v surface.Variant) surface.Config {
	sc := surface.VariantConfig(v)
	if c.Surface.USteps > 0 {
		sc.Grid.USteps = c.Surface.USteps
	}
	if c.Surface.VSteps > 0 {
		sc.Grid.VSteps = c.Surface.VSteps
	}
	if c.Surface.IndexWidth != 0 {
		sc.IndexWidth = surface.IndexWidth(c.Surface.IndexWidth)
	}
	return sc
}

// Validate checks that the config can drive the viewer.
func (c *Config) Validate() error {
	v, err := c.Variant()
	if err != nil {
		return fmt.Errorf("%w: surface: %w", ErrInvalidConfig, err)
	}
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("%w: surface: %w", ErrInvalidConfig, err)
	}
	if c.Surface.USteps < 0 || c.Surface.VSteps < 0 {
		return fmt.Errorf("%w: surface: negative step count", ErrInvalidConfig)
	}
	if err := c.SurfaceConfig(v).Validate(); err != nil {
		return fmt.Errorf("%w: surface: %w", ErrInvalidConfig, err)
	}
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("%w: graphics: window size %dx%d", ErrInvalidConfig, c.Graphics.Width, c.Graphics.Height)
	}
	if c.Graphics.FOVDegrees <= 0 || c.Graphics.FOVDegrees >= 180 {
		return fmt.Errorf("%w: graphics: fov_degrees %v", ErrInvalidConfig, c.Graphics.FOVDegrees)
	}
	if c.Graphics.Near <= 0 || c.Graphics.Far <= c.Graphics.Near {
		return fmt.Errorf("%w: graphics: near %v far %v", ErrInvalidConfig, c.Graphics.Near, c.Graphics.Far)
	}
	if c.Camera.MinZoom > c.Camera.MaxZoom {
		return fmt.Errorf("%w: camera: min_zoom %v > max_zoom %v", ErrInvalidConfig, c.Camera.MinZoom, c.Camera.MaxZoom)
	}
	if c.UVOverlay.Enabled && c.UVOverlay.Size <= 0 {
		return fmt.Errorf("%w: uv_overlay: size %d", ErrInvalidConfig, c.UVOverlay.Size)
	}
	return nil
}
