package permission

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"

	"golang.org/x/sys/unix"

	"github.com/cjeanneret/cardcam/internal/debug"
)

// Device derives camera permission from access to a device node, e.g.
// /dev/video0 for a V4L2 camera or /dev/gpiomem for a remote release.
// Access is granted by the host (udev rules, group membership), so a
// request re-checks after the user has had a chance to fix it.
type Device struct {
	path    string
	checked atomic.Bool
}

// NewDevice returns a provider for the given device node.
func NewDevice(path string) *Device {
	return &Device{path: path}
}

// Path returns the checked device node.
func (d *Device) Path() string { return d.path }

// Status reports Unknown until the node has been checked once.
func (d *Device) Status(ctx context.Context) (Status, error) {
	if !d.checked.Load() {
		return Unknown, ctx.Err()
	}
	return d.check(ctx)
}

func (d *Device) Request(ctx context.Context) (Status, error) {
	d.checked.Store(true)
	return d.check(ctx)
}

func (d *Device) check(ctx context.Context) (Status, error) {
	if err := ctx.Err(); err != nil {
		return Unknown, err
	}
	err := unix.Access(d.path, unix.R_OK|unix.W_OK)
	switch {
	case err == nil:
		debug.Verbose("Permission: %s accessible", d.path)
		return Granted, nil
	case errors.Is(err, unix.EACCES), errors.Is(err, unix.EPERM), errors.Is(err, unix.EROFS):
		debug.Verbose("Permission: %s not accessible: %v", d.path, err)
		return Denied, nil
	case errors.Is(err, unix.ENOENT):
		return Denied, fmt.Errorf("device %s: %w", d.path, os.ErrNotExist)
	default:
		return Unknown, fmt.Errorf("check %s: %w", d.path, err)
	}
}
