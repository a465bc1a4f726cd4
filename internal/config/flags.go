package config

import (
	"flag"
	"strconv"
)

// optionalFloat is a float flag that records whether it was given.
type optionalFloat struct {
	value float64
	set   bool
}

func (f *optionalFloat) String() string {
	if !f.set {
		return ""
	}
	return strconv.FormatFloat(f.value, 'g', -1, 64)
}

func (f *optionalFloat) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	f.value, f.set = v, true
	return nil
}

func (f *optionalFloat) reset() { *f = optionalFloat{} }

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagVariant    = flag.String("variant", "", "Surface variant: wireframe, lit or textured")
	flagSteps      = flag.Int("steps", 0, "Grid steps along both u and v")
	flagListen     = flag.String("listen", "", "Remote control listen address (e.g. :8080)")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")

	flagA   optionalFloat
	flagC   optionalFloat
	flagPhi optionalFloat
)

func init() {
	flag.Var(&flagA, "a", "Surface parameter a (base radius)")
	flag.Var(&flagC, "c", "Surface parameter c (curvature)")
	flag.Var(&flagPhi, "phi", "Surface parameter phi in radians (tilt)")
}

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if flagA.set {
		cfg.Surface.A = flagA.value
	}
	if flagC.set {
		cfg.Surface.C = flagC.value
	}
	if flagPhi.set {
		cfg.Surface.Phi = flagPhi.value
	}
	if *flagVariant != "" {
		cfg.Surface.Variant = *flagVariant
	}
	if *flagSteps > 0 {
		cfg.Surface.USteps = *flagSteps
		cfg.Surface.VSteps = *flagSteps
	}
	if *flagListen != "" {
		cfg.Remote.Listen = *flagListen
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}
