package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory and in
// ConfigDir.
const FileName = "surfacelab.yaml"

// EnvConfigPath names an environment variable pointing at a config file.
// The --config flag takes precedence over it.
const EnvConfigPath = "SURFACELAB_CONFIG"

// Load merges defaults, the first config file found and CLI flags, in that
// order, and validates the result.
func Load() (*Config, error) {
	cfg := Default()

	path, explicit := ConfigPath(), true
	if path == "" {
		path, explicit = findConfigFile(), false
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("loading config from %s: %w", path, err)
			}
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile returns the first existing candidate: $SURFACELAB_CONFIG,
// ./surfacelab.yaml, then ConfigDir()/surfacelab.yaml.
func findConfigFile() string {
	var candidates []string
	if env := os.Getenv(EnvConfigPath); env != "" {
		candidates = append(candidates, env)
	}
	candidates = append(candidates, FileName, filepath.Join(ConfigDir(), FileName))

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user config directory for this OS.
func ConfigDir() string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "SurfaceLab")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "SurfaceLab")
		}
		return filepath.Join(home, "AppData", "Roaming", "SurfaceLab")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "surfacelab")
	}
	return filepath.Join(home, ".config", "surfacelab")
}

// loadFromFile decodes a YAML file over cfg. Keys missing from the file keep
// their current value; unknown keys are an error.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing yaml: %w", err)
	}
	return nil
}
