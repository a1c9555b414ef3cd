// Package permission reads and requests the host's camera authorization.
// The host owns the decision; providers only report it.
package permission

import (
	"context"
	"fmt"
	"strings"
)

// Status is the host's answer for camera access.
type Status int

const (
	Unknown Status = iota
	Denied
	Granted
)

func (s Status) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case Denied:
		return "denied"
	case Granted:
		return "granted"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ParseStatus accepts the names produced by String.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unknown":
		return Unknown, nil
	case "denied":
		return Denied, nil
	case "granted":
		return Granted, nil
	}
	return Unknown, fmt.Errorf("unknown permission status %q", s)
}

// Provider is the permission subsystem as seen by the capture flow.
type Provider interface {
	// Status returns the current answer without prompting.
	Status(ctx context.Context) (Status, error)
	// Request asks the host for access. It may block pending user
	// interaction and never returns Unknown without an error.
	Request(ctx context.Context) (Status, error)
}
