package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over the standard locations.
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the render pipeline cannot operate with.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("invalid viewport %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	if c.Renderer.FOVDegrees <= 0 || c.Renderer.FOVDegrees >= 180 {
		return fmt.Errorf("invalid fov %v degrees", c.Renderer.FOVDegrees)
	}
	if c.Renderer.NearPlane <= 0 {
		return fmt.Errorf("near plane must be positive, got %v", c.Renderer.NearPlane)
	}
	if c.Renderer.FarPlane <= c.Renderer.NearPlane {
		return fmt.Errorf("far plane %v must exceed near plane %v",
			c.Renderer.FarPlane, c.Renderer.NearPlane)
	}
	if c.Terrain.PlanetRadius <= 0 {
		return fmt.Errorf("planet radius must be positive, got %v", c.Terrain.PlanetRadius)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "AirshipTerrain")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "AirshipTerrain")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "airship-terrain")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "airship-terrain")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
