package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// MaxConfigFileBytes bounds the size of a config file Load accepts.
const MaxConfigFileBytes = 64 * 1024

// Camera types.
const (
	CameraMock       = "mock"
	CameraGPIORemote = "gpio_remote"
	CameraCommand    = "command"
)

// Permission provider types.
const (
	PermissionStatic = "static"
	PermissionDevice = "device"
)

// CameraConfig describes which camera backs the live view and how to drive it.
// Type selects a concrete implementation ("mock", "gpio_remote", "command").
type CameraConfig struct {
	Type             string   `yaml:"type"`
	Name             string   `yaml:"name"`               // display name; defaults per type
	FocusPin         int      `yaml:"focus_pin"`          // gpio_remote: GPIO pin for FOCUS line
	ShutterPin       int      `yaml:"shutter_pin"`        // gpio_remote: GPIO pin for SHUTTER line
	FocusDelayMs     int      `yaml:"focus_delay_ms"`     // gpio_remote: autofocus delay (ms)
	ShutterDelayMs   int      `yaml:"shutter_delay_ms"`   // gpio_remote: shutter hold time (ms)
	WidthPx          int      `yaml:"width_px"`           // reported (gpio_remote) or rendered (mock) width
	HeightPx         int      `yaml:"height_px"`          // reported (gpio_remote) or rendered (mock) height
	Command          []string `yaml:"command"`            // command: argv, must contain "{output}"
	OutputDir        string   `yaml:"output_dir"`         // command: where captured files land
	Extension        string   `yaml:"extension"`          // command: file extension, e.g. ".jpg"
	CaptureTimeoutMs int      `yaml:"capture_timeout_ms"` // upper bound on one capture
	FailEvery        int      `yaml:"fail_every"`         // mock: fail every Nth capture, 0 = never
	MockDelayMs      int      `yaml:"mock_delay_ms"`      // mock: simulated exposure time
}

// PermissionConfig describes where the camera permission answer comes from.
type PermissionConfig struct {
	Type           string `yaml:"type"`             // "static" or "device"
	Status         string `yaml:"status"`           // static: unknown, denied or granted
	GrantOnRequest bool   `yaml:"grant_on_request"` // static: a request grants access
	Device         string `yaml:"device"`           // device: path checked for read/write access

	present bool // the permission block appeared in the file
}

// UnmarshalYAML records that the block was present, so an explicit
// grant_on_request: false is not mistaken for an absent block.
func (p *PermissionConfig) UnmarshalYAML(node *yaml.Node) error {
	type plain PermissionConfig
	if err := node.Decode((*plain)(p)); err != nil {
		return err
	}
	p.present = true
	return nil
}

// NotifyConfig controls how notices reach the user.
type NotifyConfig struct {
	Desktop     bool   `yaml:"desktop"`       // mirror notices to desktop notifications
	ErrorsOnly  bool   `yaml:"errors_only"`   // only mirror error notices
	Icon        string `yaml:"icon"`          // optional icon path
	NoticeTTLMs int    `yaml:"notice_ttl_ms"` // how long a notice stays on screen
}

// DefaultsConfig contains generic parameters.
type DefaultsConfig struct {
	DebugLevel int    `yaml:"debug_level"` // debug level 0-4 (0=off, 1=info, 2=live, 3=verbose, 4=trace)
	MockGPIO   bool   `yaml:"mock_gpio"`   // use mock GPIO (true=dev/test, false=real Raspberry Pi)
	StartTab   string `yaml:"start_tab"`   // inventory, pictures or settings
	LogFile    string `yaml:"log_file"`    // debug output target while the TUI owns the terminal
}

// Config aggregates all application configuration.
type Config struct {
	Camera     CameraConfig     `yaml:"camera"`
	Permission PermissionConfig `yaml:"permission"`
	Notify     NotifyConfig     `yaml:"notify"`
	Defaults   DefaultsConfig   `yaml:"defaults"`
}

// ValidateConfigPath accepts only .yaml files that live directly in a
// directory named "configs".
func ValidateConfigPath(path string) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	clean := filepath.Clean(path)
	for _, part := range strings.Split(filepath.ToSlash(clean), "/") {
		if part == ".." {
			return fmt.Errorf("config path %q must not traverse parent directories", path)
		}
	}
	if filepath.Ext(clean) != ".yaml" {
		return fmt.Errorf("config path %q must have a .yaml extension", path)
	}
	if filepath.Base(filepath.Dir(clean)) != "configs" {
		return fmt.Errorf("config path %q must be inside a configs/ directory", path)
	}
	return nil
}

// Load reads a YAML file and returns the configuration.
func Load(path string) (*Config, error) {
	if err := ValidateConfigPath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxConfigFileBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if len(data) > MaxConfigFileBytes {
		return nil, fmt.Errorf("config file exceeds %d bytes", MaxConfigFileBytes)
	}
	return Parse(data)
}

// Parse decodes YAML, applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) applyDefaults() error {
	// Camera
	switch cfg.Camera.Type {
	case "":
		return errors.New("camera.type is required")
	case CameraMock:
		if cfg.Camera.FailEvery < 0 {
			return fmt.Errorf("camera.fail_every must be >= 0, got %d", cfg.Camera.FailEvery)
		}
	case CameraGPIORemote:
		if cfg.Camera.FocusPin <= 0 || cfg.Camera.ShutterPin <= 0 {
			return errors.New("camera.focus_pin and camera.shutter_pin are required for gpio_remote")
		}
		if cfg.Camera.FocusPin == cfg.Camera.ShutterPin {
			return fmt.Errorf("camera.focus_pin and camera.shutter_pin must differ, both are %d", cfg.Camera.FocusPin)
		}
	case CameraCommand:
		if len(cfg.Camera.Command) == 0 {
			return errors.New("camera.command is required for command cameras")
		}
		if cfg.Camera.OutputDir == "" {
			cfg.Camera.OutputDir = filepath.Join(os.TempDir(), "cardcam")
		}
		if cfg.Camera.Extension == "" {
			cfg.Camera.Extension = ".jpg"
		}
	default:
		return fmt.Errorf("unsupported camera.type: %s", cfg.Camera.Type)
	}
	if cfg.Camera.WidthPx < 0 || cfg.Camera.HeightPx < 0 {
		return fmt.Errorf("camera resolution must be positive, got %dx%d", cfg.Camera.WidthPx, cfg.Camera.HeightPx)
	}
	if cfg.Camera.FocusDelayMs <= 0 {
		cfg.Camera.FocusDelayMs = 500 // 500ms for autofocus
	}
	if cfg.Camera.ShutterDelayMs <= 0 {
		cfg.Camera.ShutterDelayMs = 200 // 200ms shutter hold
	}
	if cfg.Camera.CaptureTimeoutMs <= 0 {
		cfg.Camera.CaptureTimeoutMs = 10000
	}

	// Permission. With no permission block at all, a request grants access so
	// the default setup can reach the camera; any explicit block is taken as is.
	switch cfg.Permission.Type {
	case "":
		cfg.Permission.Type = PermissionStatic
	case PermissionStatic, PermissionDevice:
	default:
		return fmt.Errorf("unsupported permission.type: %s", cfg.Permission.Type)
	}
	if cfg.Permission.Type == PermissionStatic {
		switch strings.ToLower(cfg.Permission.Status) {
		case "":
			cfg.Permission.Status = "unknown"
			if !cfg.Permission.present {
				cfg.Permission.GrantOnRequest = true
			}
		case "unknown", "denied", "granted":
			cfg.Permission.Status = strings.ToLower(cfg.Permission.Status)
		default:
			return fmt.Errorf("permission.status must be unknown, denied or granted, got %q", cfg.Permission.Status)
		}
	}
	if cfg.Permission.Type == PermissionDevice && cfg.Permission.Device == "" {
		cfg.Permission.Device = "/dev/video0"
	}

	// Notify
	if cfg.Notify.NoticeTTLMs <= 0 {
		cfg.Notify.NoticeTTLMs = 3000
	}

	// Defaults
	if cfg.Defaults.DebugLevel < 0 || cfg.Defaults.DebugLevel > 4 {
		return fmt.Errorf("debug_level must be between 0 and 4, got %d", cfg.Defaults.DebugLevel)
	}
	if cfg.Defaults.StartTab == "" {
		cfg.Defaults.StartTab = "pictures"
	}
	if cfg.Defaults.LogFile == "" {
		cfg.Defaults.LogFile = "cardcam.log"
	}
	return nil
}

// FocusDelay returns the autofocus delay duration.
func (c *Config) FocusDelay() time.Duration {
	return time.Duration(c.Camera.FocusDelayMs) * time.Millisecond
}

// ShutterDelay returns the shutter hold duration.
func (c *Config) ShutterDelay() time.Duration {
	return time.Duration(c.Camera.ShutterDelayMs) * time.Millisecond
}

// CaptureTimeout bounds a single capture, including permission prompts.
func (c *Config) CaptureTimeout() time.Duration {
	return time.Duration(c.Camera.CaptureTimeoutMs) * time.Millisecond
}

// MockDelay returns the simulated exposure time of the mock camera.
func (c *Config) MockDelay() time.Duration {
	return time.Duration(c.Camera.MockDelayMs) * time.Millisecond
}

// NoticeTTL returns how long a notice stays visible.
func (c *Config) NoticeTTL() time.Duration {
	return time.Duration(c.Notify.NoticeTTLMs) * time.Millisecond
}
