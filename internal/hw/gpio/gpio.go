package gpio

import (
	"fmt"
	"sync"

	"github.com/cjeanneret/cardcam/internal/debug"
)

// Level represents the logical state of a GPIO pin.
type Level bool

const (
	Low  Level = false
	High Level = true
)

func (l Level) String() string {
	if l {
		return "HIGH"
	}
	return "LOW"
}

// PinMode indicates whether a GPIO is input or output.
type PinMode int

const (
	Input PinMode = iota
	Output
)

func (m PinMode) String() string {
	switch m {
	case Input:
		return "input"
	case Output:
		return "output"
	}
	return fmt.Sprintf("PinMode(%d)", int(m))
}

// Driver is the minimal pin interface the camera remote release needs.
// A real Raspberry Pi implementation or a mock for development on PC.
type Driver interface {
	SetupPin(pin int, mode PinMode) error
	WritePin(pin int, level Level) error
	ReadPin(pin int) (Level, error)
	Close() error
}

// Labeler is implemented by drivers that can name what a pin is wired to.
// Roles only show up in GPIO trace output.
type Labeler interface {
	Label(pin int, role string)
}

// roles maps pins to the line they drive.
type roles struct {
	mu    sync.RWMutex
	names map[int]string
}

func (r *roles) Label(pin int, role string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.names == nil {
		r.names = make(map[int]string)
	}
	r.names[pin] = role
}

// Role returns the label set for pin, or "" when it has none.
func (r *roles) Role(pin int) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.names[pin]
}

// MockDriver keeps pin levels in memory. Used on machines without GPIO.
type MockDriver struct {
	roles

	mu     sync.Mutex
	levels map[int]Level
}

// NewDriver creates a GPIO driver based on the chosen mode.
// If mock is true, returns a MockDriver (for dev/test).
// If mock is false, returns a real RPiDriver (for Raspberry Pi).
func NewDriver(mock bool) (Driver, error) {
	if mock {
		debug.Info("Using MOCK GPIO driver (development mode)")
		return NewMockDriver(), nil
	}
	return NewRPiRealDriver()
}

// NewMockDriver returns an in-memory driver with all pins LOW.
func NewMockDriver() *MockDriver {
	return &MockDriver{levels: make(map[int]Level)}
}

func (m *MockDriver) SetupPin(pin int, mode PinMode) error {
	debug.GPIO("SetupPin", pin, m.Role(pin), mode)
	return nil
}

func (m *MockDriver) WritePin(pin int, level Level) error {
	debug.GPIO("WritePin", pin, m.Role(pin), level)
	m.mu.Lock()
	m.levels[pin] = level
	m.mu.Unlock()
	return nil
}

func (m *MockDriver) ReadPin(pin int) (Level, error) {
	debug.GPIO("ReadPin", pin, m.Role(pin), nil)
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.levels[pin], nil
}

func (m *MockDriver) Close() error {
	debug.Trace("GPIO Close (mock)")
	return nil
}
