package ui

import (
	"fmt"
	"strings"
)

// Screen is the active tab. It is independent of the capture flow: switching
// tabs never touches the captured photo.
type Screen int

const (
	Inventory Screen = iota
	Pictures
	Settings
	screenCount
)

var screenNames = [...]string{"inventory", "pictures", "settings"}

// Screens lists the tabs in display order.
func Screens() []Screen {
	return []Screen{Inventory, Pictures, Settings}
}

// ParseScreen accepts a tab name (case-insensitive) or its 1-based position.
func ParseScreen(s string) (Screen, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for i, name := range screenNames {
		if v == name || v == fmt.Sprint(i+1) {
			return Screen(i), nil
		}
	}
	return Inventory, fmt.Errorf("unknown screen %q (want inventory, pictures or settings)", s)
}

// Next returns the tab to the right, wrapping around.
func (s Screen) Next() Screen {
	return (s + 1) % screenCount
}

// Prev returns the tab to the left, wrapping around.
func (s Screen) Prev() Screen {
	return (s + screenCount - 1) % screenCount
}

func (s Screen) String() string {
	if s < 0 || s >= screenCount {
		return fmt.Sprintf("Screen(%d)", int(s))
	}
	return screenNames[s]
}

// Title is the label shown in the tab bar.
func (s Screen) Title() string {
	switch s {
	case Inventory:
		return "Inventory"
	case Pictures:
		return "Pictures"
	case Settings:
		return "Settings"
	default:
		return s.String()
	}
}

// Set implements pflag.Value so a Screen can be bound to a flag.
func (s *Screen) Set(v string) error {
	parsed, err := ParseScreen(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Type implements pflag.Value.
func (s *Screen) Type() string { return "screen" }
