package main

import (
	"fmt"

	"github.com/cjeanneret/cardcam/internal/config"
	"github.com/cjeanneret/cardcam/internal/debug"
	"github.com/cjeanneret/cardcam/internal/gallery"
	"github.com/cjeanneret/cardcam/internal/hw/camera"
	"github.com/cjeanneret/cardcam/internal/hw/gpio"
	"github.com/cjeanneret/cardcam/internal/hw/permission"
	"github.com/cjeanneret/cardcam/internal/logic/capture"
	"github.com/cjeanneret/cardcam/internal/notice"
)

// app holds the collaborators behind the capture flow.
type app struct {
	gpio  gpio.Driver // nil unless the camera needs one
	bus   *notice.Broadcaster
	saves *gallery.Confirm
	ctrl  *capture.Controller
}

// newApp wires the controller to bus. Callers create the bus first so that
// they can route debug output through it before anything is initialized.
func newApp(cfg *config.Config, bus *notice.Broadcaster) (*app, error) {
	a := &app{
		bus:   bus,
		saves: gallery.NewConfirm(),
	}

	if cfg.Camera.Type == config.CameraGPIORemote {
		debug.Value("Mock GPIO", cfg.Defaults.MockGPIO)
		debug.Step(1, "Initializing GPIO driver")
		g, err := gpio.NewDriver(cfg.Defaults.MockGPIO)
		if err != nil {
			return nil, fmt.Errorf("init GPIO: %w", err)
		}
		a.gpio = g
	}

	debug.Step(2, "Initializing camera")
	cam, err := newCameraFromConfig(a.gpio, cfg)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("init camera: %w", err)
	}
	debug.Value("Camera type", cfg.Camera.Type)
	debug.Value("Camera name", cam.Name())

	debug.Step(3, "Initializing permission provider")
	perm, err := newPermissionFromConfig(cfg)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("init permission: %w", err)
	}
	debug.PrintStruct("Permission config", cfg.Permission)

	a.ctrl = capture.NewController(perm, cam, a.saves, a.bus)
	return a, nil
}

// Close releases the GPIO driver, if any.
func (a *app) Close() error {
	if a.gpio == nil {
		return nil
	}
	if err := a.gpio.Close(); err != nil {
		return fmt.Errorf("close GPIO driver: %w", err)
	}
	return nil
}

// newCameraFromConfig selects a camera implementation based on configuration.
func newCameraFromConfig(g gpio.Driver, cfg *config.Config) (camera.Camera, error) {
	switch cfg.Camera.Type {
	case config.CameraMock:
		return camera.NewMock(camera.MockConfig{
			WidthPx:   cfg.Camera.WidthPx,
			HeightPx:  cfg.Camera.HeightPx,
			Delay:     cfg.MockDelay(),
			FailEvery: cfg.Camera.FailEvery,
		}), nil
	case config.CameraGPIORemote:
		if g == nil {
			return nil, fmt.Errorf("camera type %s needs a GPIO driver", cfg.Camera.Type)
		}
		cam, err := camera.NewGPIORemote(g, camera.GPIORemoteConfig{
			Name:         cfg.Camera.Name,
			FocusPin:     cfg.Camera.FocusPin,
			ShutterPin:   cfg.Camera.ShutterPin,
			FocusDelay:   cfg.FocusDelay(),
			ShutterDelay: cfg.ShutterDelay(),
			WidthPx:      cfg.Camera.WidthPx,
			HeightPx:     cfg.Camera.HeightPx,
		})
		if err != nil {
			return nil, err
		}
		return cam, nil
	case config.CameraCommand:
		cam, err := camera.NewCommand(camera.CommandConfig{
			Name:      cfg.Camera.Name,
			Argv:      cfg.Camera.Command,
			OutputDir: cfg.Camera.OutputDir,
			Extension: cfg.Camera.Extension,
			Timeout:   cfg.CaptureTimeout(),
		})
		if err != nil {
			return nil, err
		}
		return cam, nil
	default:
		return nil, fmt.Errorf("unsupported camera type: %s", cfg.Camera.Type)
	}
}

// newPermissionFromConfig selects where the camera permission answer comes from.
func newPermissionFromConfig(cfg *config.Config) (permission.Provider, error) {
	switch cfg.Permission.Type {
	case config.PermissionStatic:
		status, err := permission.ParseStatus(cfg.Permission.Status)
		if err != nil {
			return nil, err
		}
		return permission.NewStatic(status, cfg.Permission.GrantOnRequest), nil
	case config.PermissionDevice:
		return permission.NewDevice(cfg.Permission.Device), nil
	default:
		return nil, fmt.Errorf("unsupported permission type: %s", cfg.Permission.Type)
	}
}
