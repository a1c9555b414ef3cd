package camera

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cjeanneret/cardcam/internal/debug"
	"github.com/cjeanneret/cardcam/internal/hw/gpio"
)

// GPIORemote triggers a camera through its wired remote-release connector:
// - GND: connected to Raspberry Pi ground
// - FOCUS: autofocus (active LOW)
// - SHUTTER: trigger (active LOW)
//
// The image is written to the camera's own card, so the returned Photo only
// carries a gpio:// reference and the configured resolution.
type GPIORemote struct {
	gpio         gpio.Driver
	name         string
	focusPin     int
	shutterPin   int
	focusDelay   time.Duration // time for autofocus
	shutterDelay time.Duration // shutter hold time
	width        int
	height       int

	mu    sync.Mutex
	shots int
}

// GPIORemoteConfig holds the wiring and timing of a remote-release camera.
type GPIORemoteConfig struct {
	Name         string
	FocusPin     int
	ShutterPin   int
	FocusDelay   time.Duration
	ShutterDelay time.Duration
	WidthPx      int
	HeightPx     int
}

// NewGPIORemote configures both lines as outputs and parks them HIGH (inactive).
// Drivers that implement gpio.Labeler learn which line is which.
func NewGPIORemote(g gpio.Driver, cfg GPIORemoteConfig) (*GPIORemote, error) {
	if cfg.FocusPin == cfg.ShutterPin {
		return nil, fmt.Errorf("focus and shutter share pin %d", cfg.FocusPin)
	}
	if l, ok := g.(gpio.Labeler); ok {
		l.Label(cfg.FocusPin, "focus")
		l.Label(cfg.ShutterPin, "shutter")
	}
	for _, pin := range []int{cfg.FocusPin, cfg.ShutterPin} {
		if err := g.SetupPin(pin, gpio.Output); err != nil {
			return nil, fmt.Errorf("setup pin %d: %w", pin, err)
		}
		if err := g.WritePin(pin, gpio.High); err != nil {
			return nil, fmt.Errorf("park pin %d: %w", pin, err)
		}
	}
	name := cfg.Name
	if name == "" {
		name = "gpio-remote"
	}
	return &GPIORemote{
		gpio:         g,
		name:         name,
		focusPin:     cfg.FocusPin,
		shutterPin:   cfg.ShutterPin,
		focusDelay:   cfg.FocusDelay,
		shutterDelay: cfg.ShutterDelay,
		width:        cfg.WidthPx,
		height:       cfg.HeightPx,
	}, nil
}

func (r *GPIORemote) Name() string { return r.name }

// Capture runs FOCUS -> wait for AF -> SHUTTER -> hold -> release.
// Both lines are released on every exit path.
func (r *GPIORemote) Capture(ctx context.Context) (Photo, error) {
	debug.Verbose("Camera %s: triggering shot (focus=%d, shutter=%d)", r.name, r.focusPin, r.shutterPin)

	if err := r.gpio.WritePin(r.focusPin, gpio.Low); err != nil {
		return Photo{}, fmt.Errorf("activate focus: %w", err)
	}
	defer r.release(r.focusPin)

	if err := sleep(ctx, r.focusDelay); err != nil {
		return Photo{}, fmt.Errorf("wait for autofocus: %w", err)
	}

	if err := r.gpio.WritePin(r.shutterPin, gpio.Low); err != nil {
		return Photo{}, fmt.Errorf("activate shutter: %w", err)
	}
	holdErr := sleep(ctx, r.shutterDelay)
	if err := r.gpio.WritePin(r.shutterPin, gpio.High); err != nil {
		return Photo{}, fmt.Errorf("release shutter: %w", err)
	}
	if holdErr != nil {
		return Photo{}, fmt.Errorf("hold shutter: %w", holdErr)
	}

	r.mu.Lock()
	r.shots++
	seq := r.shots
	r.mu.Unlock()

	p := newPhoto(r.name)
	p.URI = fmt.Sprintf("gpio://%s/%04d", r.name, seq)
	p.MIMEType = "image/jpeg"
	p.Width = r.width
	p.Height = r.height
	return p, nil
}

func (r *GPIORemote) release(pin int) {
	if err := r.gpio.WritePin(pin, gpio.High); err != nil {
		debug.Error(fmt.Errorf("release pin %d: %w", pin, err))
	}
}
