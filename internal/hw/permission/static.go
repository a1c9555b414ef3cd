package permission

import (
	"context"
	"sync"

	"github.com/cjeanneret/cardcam/internal/debug"
)

// Static answers from configuration. With GrantOnRequest set, the first
// Request flips the status to Granted, which mimics a user accepting a prompt.
type Static struct {
	mu             sync.Mutex
	status         Status
	grantOnRequest bool
	requests       int
}

// NewStatic returns a provider that reports initial until a request changes it.
func NewStatic(initial Status, grantOnRequest bool) *Static {
	return &Static{status: initial, grantOnRequest: grantOnRequest}
}

func (s *Static) Status(ctx context.Context) (Status, error) {
	if err := ctx.Err(); err != nil {
		return Unknown, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, nil
}

func (s *Static) Request(ctx context.Context) (Status, error) {
	if err := ctx.Err(); err != nil {
		return Unknown, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++
	if s.grantOnRequest {
		s.status = Granted
	} else if s.status == Unknown {
		s.status = Denied
	}
	debug.Verbose("Permission request %d (static): %s", s.requests, s.status)
	return s.status, nil
}

// Requests reports how many times Request was called.
func (s *Static) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}
