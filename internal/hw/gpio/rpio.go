package gpio

import (
	"fmt"
	"sync"

	"github.com/stianeikeland/go-rpio/v4"

	"github.com/cjeanneret/cardcam/internal/debug"
)

// rpiLine is a pin the driver has configured.
type rpiLine struct {
	pin  rpio.Pin
	mode PinMode
}

// RPiDriver drives the remote-release lines through go-rpio. Pins are set up
// on first use when SetupPin was not called, and put back to input on Close so
// a stopped process never leaves the shutter held.
type RPiDriver struct {
	roles

	mu    sync.Mutex
	lines map[int]rpiLine
}

// NewRPiRealDriver memory-maps the GPIO block.
// Requires a Raspberry Pi with access to /dev/gpiomem or root.
func NewRPiRealDriver() (*RPiDriver, error) {
	debug.Info("Opening Raspberry Pi GPIO (go-rpio)")
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("open GPIO: %w (are you running on a Raspberry Pi?)", err)
	}
	return &RPiDriver{lines: make(map[int]rpiLine)}, nil
}

func (r *RPiDriver) SetupPin(pin int, mode PinMode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := r.setup(pin, mode)
	return err
}

// setup configures pin as mode. Caller holds r.mu.
func (r *RPiDriver) setup(pin int, mode PinMode) (rpiLine, error) {
	debug.GPIO("SetupPin", pin, r.Role(pin), mode)
	l := rpiLine{pin: rpio.Pin(pin), mode: mode}
	switch mode {
	case Input:
		l.pin.Input()
	case Output:
		l.pin.Output()
	default:
		return rpiLine{}, fmt.Errorf("pin %d: unknown mode %s", pin, mode)
	}
	r.lines[pin] = l
	return l, nil
}

// line returns the configured pin, setting it up as mode if it is new.
// Caller holds r.mu.
func (r *RPiDriver) line(pin int, mode PinMode) (rpiLine, error) {
	if l, ok := r.lines[pin]; ok {
		return l, nil
	}
	return r.setup(pin, mode)
}

func (r *RPiDriver) WritePin(pin int, level Level) error {
	debug.GPIO("WritePin", pin, r.Role(pin), level)
	r.mu.Lock()
	defer r.mu.Unlock()

	l, err := r.line(pin, Output)
	if err != nil {
		return err
	}
	if l.mode != Output {
		return fmt.Errorf("write pin %d: configured as %s", pin, l.mode)
	}
	if level == High {
		l.pin.High()
	} else {
		l.pin.Low()
	}
	return nil
}

func (r *RPiDriver) ReadPin(pin int) (Level, error) {
	debug.GPIO("ReadPin", pin, r.Role(pin), nil)
	r.mu.Lock()
	defer r.mu.Unlock()

	l, err := r.line(pin, Input)
	if err != nil {
		return Low, err
	}
	return Level(l.pin.Read() == rpio.High), nil
}

// Close releases every line it configured and unmaps GPIO memory.
func (r *RPiDriver) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for pin, l := range r.lines {
		if l.mode == Output {
			debug.GPIO("Release", pin, r.Role(pin), Input)
			l.pin.Input()
		}
	}
	r.lines = make(map[int]rpiLine)
	if err := rpio.Close(); err != nil {
		return fmt.Errorf("close GPIO: %w", err)
	}
	return nil
}
