package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// ---------- ValidateConfigPath ----------

func TestValidateConfigPath_Valid(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "configs")
	if err := os.Mkdir(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(cfgDir, "default.yaml")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ValidateConfigPath(path); err != nil {
		t.Errorf("expected valid path, got error: %v", err)
	}
}

func TestValidateConfigPath_Rejected(t *testing.T) {
	cases := []struct {
		name string
		path string
	}{
		{"empty", ""},
		{"traversal", "../../etc/passwd"},
		{"traversal_through_configs", "configs/../../../etc/shadow.yaml"},
		{"json", "configs/default.json"},
		{"yml", "configs/default.yml"},
		{"no_extension", "configs/default"},
		{"other_dir", "other/default.yaml"},
		{"bare_file", "default.yaml"},
		{"tmp", "/tmp/default.yaml"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateConfigPath(tc.path); err == nil {
				t.Errorf("expected error for %q, got nil", tc.path)
			}
		})
	}
}

func TestValidateConfigPath_SpecialChars(t *testing.T) {
	for _, name := range []string{"con fig.yaml", "café.yaml"} {
		path := filepath.Join("configs", name)
		if err := ValidateConfigPath(path); err != nil {
			t.Errorf("unexpected error for %q: %v", name, err)
		}
	}
}

func TestValidateConfigPath_VeryLongPath(t *testing.T) {
	long := "configs/" + strings.Repeat("a", 1000) + ".yaml"
	// Must not panic.
	_ = ValidateConfigPath(long)
}

// ---------- Load ----------

// writeConfig creates a temporary configs/ dir with the given YAML content and returns the path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "configs")
	if err := os.Mkdir(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(cfgDir, "test.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const validYAML = `
camera:
  type: "gpio_remote"
  name: "d90"
  focus_pin: 24
  shutter_pin: 25
  focus_delay_ms: 400
  shutter_delay_ms: 150
  width_px: 4288
  height_px: 2848
  capture_timeout_ms: 5000
permission:
  type: "device"
  device: "/dev/gpiomem"
notify:
  desktop: true
  errors_only: true
  notice_ttl_ms: 1500
defaults:
  debug_level: 2
  mock_gpio: true
  start_tab: "settings"
  log_file: "/tmp/cardcam-test.log"
`

func TestLoad_ValidFullConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Camera.Type != CameraGPIORemote {
		t.Errorf("camera.type = %q, want %q", cfg.Camera.Type, CameraGPIORemote)
	}
	if cfg.Camera.Name != "d90" || cfg.Camera.FocusPin != 24 || cfg.Camera.ShutterPin != 25 {
		t.Errorf("camera = %+v", cfg.Camera)
	}
	if cfg.FocusDelay() != 400*time.Millisecond {
		t.Errorf("FocusDelay = %v, want 400ms", cfg.FocusDelay())
	}
	if cfg.ShutterDelay() != 150*time.Millisecond {
		t.Errorf("ShutterDelay = %v, want 150ms", cfg.ShutterDelay())
	}
	if cfg.CaptureTimeout() != 5*time.Second {
		t.Errorf("CaptureTimeout = %v, want 5s", cfg.CaptureTimeout())
	}
	if cfg.Permission.Type != PermissionDevice || cfg.Permission.Device != "/dev/gpiomem" {
		t.Errorf("permission = %+v", cfg.Permission)
	}
	if !cfg.Notify.Desktop || !cfg.Notify.ErrorsOnly || cfg.NoticeTTL() != 1500*time.Millisecond {
		t.Errorf("notify = %+v", cfg.Notify)
	}
	if cfg.Defaults.DebugLevel != 2 || !cfg.Defaults.MockGPIO || cfg.Defaults.StartTab != "settings" {
		t.Errorf("defaults = %+v", cfg.Defaults)
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load(writeConfig(t, "camera:\n  type: mock\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Camera.FocusDelayMs != 500 {
		t.Errorf("focus_delay_ms default = %d, want 500", cfg.Camera.FocusDelayMs)
	}
	if cfg.Camera.ShutterDelayMs != 200 {
		t.Errorf("shutter_delay_ms default = %d, want 200", cfg.Camera.ShutterDelayMs)
	}
	if cfg.CaptureTimeout() != 10*time.Second {
		t.Errorf("CaptureTimeout default = %v, want 10s", cfg.CaptureTimeout())
	}
	if cfg.Permission.Type != PermissionStatic || cfg.Permission.Status != "unknown" || !cfg.Permission.GrantOnRequest {
		t.Errorf("permission defaults = %+v", cfg.Permission)
	}
	if cfg.NoticeTTL() != 3*time.Second {
		t.Errorf("NoticeTTL default = %v, want 3s", cfg.NoticeTTL())
	}
	if cfg.Defaults.StartTab != "pictures" || cfg.Defaults.LogFile != "cardcam.log" {
		t.Errorf("defaults = %+v", cfg.Defaults)
	}
}

func TestLoad_CommandDefaults(t *testing.T) {
	yaml := `
camera:
  type: command
  command: ["libcamera-still", "-n", "-o", "{output}"]
`
	cfg, err := Load(writeConfig(t, yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Camera.Extension != ".jpg" {
		t.Errorf("extension default = %q, want .jpg", cfg.Camera.Extension)
	}
	if cfg.Camera.OutputDir == "" {
		t.Error("output_dir should default to a temp directory")
	}
	if len(cfg.Camera.Command) != 4 || cfg.Camera.Command[3] != "{output}" {
		t.Errorf("command = %v", cfg.Camera.Command)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"empty", ""},
		{"missing_camera_type", "permission:\n  type: static\n"},
		{"unknown_camera_type", "camera:\n  type: nikon_d90_gpio\n"},
		{"gpio_without_pins", "camera:\n  type: gpio_remote\n"},
		{"gpio_same_pin", "camera:\n  type: gpio_remote\n  focus_pin: 5\n  shutter_pin: 5\n"},
		{"command_without_argv", "camera:\n  type: command\n"},
		{"negative_resolution", "camera:\n  type: mock\n  width_px: -1\n"},
		{"negative_fail_every", "camera:\n  type: mock\n  fail_every: -2\n"},
		{"unknown_permission_type", "camera:\n  type: mock\npermission:\n  type: prompt\n"},
		{"bad_permission_status", "camera:\n  type: mock\npermission:\n  status: maybe\n"},
		{"debug_level_too_high", "camera:\n  type: mock\ndefaults:\n  debug_level: 5\n"},
		{"invalid_yaml", "{{{{invalid yaml!!!!"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.yaml)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoad_PermissionStatusCaseInsensitive(t *testing.T) {
	cfg, err := Load(writeConfig(t, "camera:\n  type: mock\npermission:\n  status: Granted\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Permission.Status != "granted" {
		t.Errorf("status = %q, want granted", cfg.Permission.Status)
	}
	if cfg.Permission.GrantOnRequest {
		t.Error("explicit status should not enable grant_on_request")
	}
}

func TestLoad_GrantOnRequestHonoured(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want bool
	}{
		{"block_absent", "camera:\n  type: mock\n", true},
		{"explicit_false", "camera:\n  type: mock\npermission:\n  grant_on_request: false\n", false},
		{"explicit_true", "camera:\n  type: mock\npermission:\n  grant_on_request: true\n", true},
		{"type_only", "camera:\n  type: mock\npermission:\n  type: static\n", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tc.yaml))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Permission.Status != "unknown" {
				t.Errorf("status = %q, want unknown", cfg.Permission.Status)
			}
			if cfg.Permission.GrantOnRequest != tc.want {
				t.Errorf("grant_on_request = %v, want %v", cfg.Permission.GrantOnRequest, tc.want)
			}
		})
	}
}

func TestLoad_UnknownFields(t *testing.T) {
	yaml := `
camera:
  type: mock
unknown_section:
  foo: bar
`
	if _, err := Load(writeConfig(t, yaml)); err != nil {
		t.Errorf("unknown fields should be ignored, got error: %v", err)
	}
}

func TestLoad_FileTooLarge(t *testing.T) {
	data := strings.Repeat("#", MaxConfigFileBytes+1)
	if _, err := Load(writeConfig(t, data)); err == nil {
		t.Error("expected error for oversized config file, got nil")
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs", "nonexistent.yaml")
	if _, err := Load(path); err == nil {
		t.Error("expected error for nonexistent file, got nil")
	}
}

func TestLoad_RejectsPathOutsideConfigs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cardcam.yaml")
	if err := os.WriteFile(path, []byte("camera:\n  type: mock\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for config outside configs/, got nil")
	}
}
