// Package gallery is the save target of the capture flow. Photos are not
// persisted: Confirm acknowledges the save and remembers what it saw.
package gallery

import (
	"context"
	"errors"
	"sync"

	"github.com/cjeanneret/cardcam/internal/debug"
	"github.com/cjeanneret/cardcam/internal/hw/camera"
)

// ErrDuplicate is returned when the same photo is saved twice.
var ErrDuplicate = errors.New("photo already saved")

// Entry records one confirmed save.
type Entry struct {
	ID     string
	URI    string
	Source string
	Size   int
}

// Confirm is a confirm-only saver.
type Confirm struct {
	mu      sync.Mutex
	entries []Entry
	seen    map[string]struct{}
}

// NewConfirm returns an empty confirm-only gallery.
func NewConfirm() *Confirm {
	return &Confirm{seen: make(map[string]struct{})}
}

// Save acknowledges p. Saving the same photo twice returns ErrDuplicate.
func (g *Confirm) Save(ctx context.Context, p camera.Photo) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.seen[p.ID]; ok {
		return ErrDuplicate
	}
	g.seen[p.ID] = struct{}{}
	g.entries = append(g.entries, Entry{ID: p.ID, URI: p.URI, Source: p.Source, Size: p.Size()})
	debug.Verbose("Gallery: confirmed %s (%s, %d bytes)", p.ID, p.URI, p.Size())
	return nil
}

// Entries returns the confirmed saves, oldest first.
func (g *Confirm) Entries() []Entry {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Entry(nil), g.entries...)
}

// Len returns the number of confirmed saves.
func (g *Confirm) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.entries)
}
