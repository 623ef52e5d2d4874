// Package config loads the YAML configuration of an oxy-gl application.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"gopkg.in/yaml.v3"
)

// MaxDimension is the largest accepted window width or height.
const MaxDimension = 9999

// Config is the root of the configuration file.
type Config struct {
	Window   WindowConfig `yaml:"window"`
	Camera   CameraConfig `yaml:"camera"`
	Engine   EngineConfig `yaml:"engine"`
	Assets   AssetsConfig `yaml:"assets"`
	LogLevel string       `yaml:"log_level"`
}

// WindowConfig configures the window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	VSync  *bool  `yaml:"vsync"` // pointer to distinguish unset vs false
}

// CameraConfig configures the camera the demo draws through.
type CameraConfig struct {
	// Kind is "default", "perspective" or "orthographic".
	Kind       string      `yaml:"kind"`
	Fov        float32     `yaml:"fov"`
	Near       float32     `yaml:"near"`
	Far        float32     `yaml:"far"`
	OrthoSize  float32     `yaml:"ortho_size"`
	ClearColor common.RGBA `yaml:"clear_color"`
	// Offscreen renders into the camera's own framebuffer instead of the window.
	Offscreen bool `yaml:"offscreen"`
}

// EngineConfig configures the frame loop.
type EngineConfig struct {
	TickRate   float64 `yaml:"tick_rate"`
	FrameLimit float64 `yaml:"frame_limit"`
	Profiling  bool    `yaml:"profiling"`
}

// AssetsConfig names the files the demo loads.
type AssetsConfig struct {
	// Shader is the logical shader path, without the .vert/.frag extension.
	Shader  string `yaml:"shader"`
	Texture string `yaml:"texture"`
	// Model is an optional .gltf or .glb file drawn instead of the built-in cube.
	Model string `yaml:"model"`
}

// Default returns the configuration used when no file is given.
//
// Returns:
//   - Config: the defaults
func Default() Config {
	var c Config
	c.normalize()
	return c
}

// Load reads, normalizes and validates a configuration file.
//
// Parameters:
//   - path: the YAML file
//
// Returns:
//   - Config: the configuration
//   - error: an error if the file cannot be read, parsed or validated
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes, normalizes and validates YAML configuration. Unknown keys are rejected.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Config: the configuration
//   - error: an error if the document cannot be parsed or validated
func Parse(data []byte) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse: %w", err)
	}
	c.normalize()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// normalize fills every unset field with its default.
func (c *Config) normalize() {
	c.Window.Title = common.Coalesce(c.Window.Title, "oxy-gl")
	c.Window.Width = common.Coalesce(c.Window.Width, int(camera.DefaultWidth))
	c.Window.Height = common.Coalesce(c.Window.Height, int(camera.DefaultHeight))
	if c.Window.VSync == nil {
		vsync := true
		c.Window.VSync = &vsync
	}
	c.Camera.Kind = strings.ToLower(common.Coalesce(c.Camera.Kind, camera.KindPerspective.String()))
	c.Camera.Fov = common.Coalesce(c.Camera.Fov, camera.DefaultFov)
	c.Camera.Near = common.Coalesce(c.Camera.Near, camera.DefaultNear)
	c.Camera.Far = common.Coalesce(c.Camera.Far, camera.DefaultFar)
	c.Camera.OrthoSize = common.Coalesce(c.Camera.OrthoSize, camera.DefaultOrthoSize)
	c.Camera.ClearColor = common.Coalesce(c.Camera.ClearColor, camera.DefaultClearColor)
	c.Engine.TickRate = common.Coalesce(c.Engine.TickRate, 60)
	c.Assets.Shader = common.Coalesce(c.Assets.Shader, "examples/assets/basic")
	c.LogLevel = common.Coalesce(c.LogLevel, "info")
}

// Validate reports every out-of-range value.
//
// Returns:
//   - error: the joined validation errors, nil if the configuration is valid
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width < 0 || c.Window.Width > MaxDimension {
		errs = append(errs, fmt.Errorf("window.width %d out of range 0..%d", c.Window.Width, MaxDimension))
	}
	if c.Window.Height < 0 || c.Window.Height > MaxDimension {
		errs = append(errs, fmt.Errorf("window.height %d out of range 0..%d", c.Window.Height, MaxDimension))
	}
	if _, err := c.Camera.CameraKind(); err != nil {
		errs = append(errs, err)
	}
	if c.Camera.Fov <= 0 || c.Camera.Fov >= 180 {
		errs = append(errs, fmt.Errorf("camera.fov %v out of range (0, 180)", c.Camera.Fov))
	}
	if c.Camera.Near <= 0 {
		errs = append(errs, fmt.Errorf("camera.near %v must be positive", c.Camera.Near))
	}
	if c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera.far %v must exceed camera.near %v", c.Camera.Far, c.Camera.Near))
	}
	if c.Engine.TickRate < 0 {
		errs = append(errs, fmt.Errorf("engine.tick_rate %v must not be negative", c.Engine.TickRate))
	}
	if c.Engine.FrameLimit < 0 {
		errs = append(errs, fmt.Errorf("engine.frame_limit %v must not be negative", c.Engine.FrameLimit))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// CameraKind maps Kind to a camera.Kind.
//
// Returns:
//   - camera.Kind: the kind
//   - error: an error for an unrecognised name
func (c CameraConfig) CameraKind() (camera.Kind, error) {
	for _, k := range []camera.Kind{camera.KindDefault, camera.KindPerspective, camera.KindOrthographic} {
		if c.Kind == k.String() {
			return k, nil
		}
	}
	return camera.KindDefault, fmt.Errorf("camera.kind %q is not one of default, perspective, orthographic", c.Kind)
}

// SlogLevel parses LogLevel.
//
// Returns:
//   - slog.Level: the level
//   - error: an error for an unrecognised level
func (c Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}
