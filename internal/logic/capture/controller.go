// Package capture contains the capture flow: acquire camera permission,
// take a photo, preview it, then retake or save it.
package capture

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cjeanneret/cardcam/internal/debug"
	"github.com/cjeanneret/cardcam/internal/hw/camera"
	"github.com/cjeanneret/cardcam/internal/hw/permission"
	"github.com/cjeanneret/cardcam/internal/notice"
)

// Saver stores a previewed photo somewhere the user can find it again.
type Saver interface {
	Save(ctx context.Context, p camera.Photo) error
}

// Notifier receives transient notices for the user.
type Notifier interface {
	Notify(n notice.Notice)
}

// Controller owns the flow state. Every action runs to completion before the
// next one is accepted: while a collaborator call is in flight, further
// actions return ErrBusy. The mutex is never held across collaborator calls.
type Controller struct {
	perm     permission.Provider
	camera   camera.Camera
	saver    Saver
	notifier Notifier

	mu     sync.Mutex
	state  State
	busy   string // name of the in-flight action, "" when idle
	notice notice.Notice
}

// NewController starts in PermissionUnknown. saver and notifier may be nil:
// without a saver, Save only confirms; without a notifier, notices are kept
// in the snapshot only.
func NewController(perm permission.Provider, cam camera.Camera, saver Saver, notifier Notifier) *Controller {
	return &Controller{
		perm:     perm,
		camera:   cam,
		saver:    saver,
		notifier: notifier,
		state:    PermissionUnknown{},
	}
}

// CameraName returns the name of the camera behind the live view.
func (c *Controller) CameraName() string {
	return c.camera.Name()
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		State:  c.state,
		Busy:   c.busy != "",
		Action: c.busy,
		Notice: c.notice,
	}
}

// begin claims the controller for action if the current state is one of
// allowed. The returned state is the one the action starts from.
func (c *Controller) begin(action string, allowed ...Kind) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy != "" {
		debug.Verbose("Flow: %s dropped, %s in progress", action, c.busy)
		return c.state, ErrBusy
	}
	for _, k := range allowed {
		if c.state.Kind() == k {
			c.busy = action
			return c.state, nil
		}
	}
	debug.Verbose("Flow: %s ignored in %s", action, c.state.Kind())
	return c.state, ErrIgnored
}

// finish installs next, releases the busy marker and publishes n if set.
func (c *Controller) finish(action string, next State, n *notice.Notice) Snapshot {
	c.mu.Lock()
	prev := c.state
	c.state = next
	c.busy = ""
	if n != nil {
		c.notice = *n
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if prev.Kind() != next.Kind() {
		debug.Transition(prev.Kind().String(), next.Kind().String(), action)
	}
	if n != nil && c.notifier != nil {
		c.notifier.Notify(*n)
	}
	return snap
}

func noticeFor(level notice.Level, format string, args ...interface{}) *notice.Notice {
	n := notice.New(level, fmt.Sprintf(format, args...))
	return &n
}

// Start resolves the initial permission state. When the host has not
// decided yet, it requests access once.
func (c *Controller) Start(ctx context.Context) (Snapshot, error) {
	const action = "start"
	from, err := c.begin(action, KindPermissionUnknown)
	if err != nil {
		return c.Snapshot(), err
	}

	status, err := c.perm.Status(ctx)
	if err != nil {
		err = fmt.Errorf("check camera permission: %w", err)
		debug.Error(err)
		return c.finish(action, from, noticeFor(notice.LevelError, "Could not check camera permission: %v", err)), err
	}
	debug.Value("Camera permission", status)

	if status == permission.Unknown {
		return c.request(ctx, action, from)
	}
	return c.resolve(action, status)
}

// RequestPermission asks the host for camera access. A refusal keeps the
// flow in PermissionDenied and returns ErrPermissionDenied.
func (c *Controller) RequestPermission(ctx context.Context) (Snapshot, error) {
	const action = "request permission"
	from, err := c.begin(action, KindPermissionUnknown, KindPermissionDenied)
	if err != nil {
		return c.Snapshot(), err
	}
	return c.request(ctx, action, from)
}

func (c *Controller) request(ctx context.Context, action string, from State) (Snapshot, error) {
	status, err := c.perm.Request(ctx)
	if err != nil {
		err = fmt.Errorf("request camera permission: %w", err)
		debug.Error(err)
		next := from
		if status == permission.Denied {
			next = PermissionDenied{}
		}
		return c.finish(action, next, noticeFor(notice.LevelError, "Camera permission request failed: %v", err)), err
	}
	debug.Live("Permission request answered: %s", status)
	return c.resolve(action, status)
}

func (c *Controller) resolve(action string, status permission.Status) (Snapshot, error) {
	if status == permission.Granted {
		return c.finish(action, CameraLive{}, nil), nil
	}
	// Denied, or still undecided after a request.
	return c.finish(action, PermissionDenied{}, noticeFor(notice.LevelError, "Camera access denied")), ErrPermissionDenied
}

// Capture takes a photo. Only valid in CameraLive; on success the flow moves
// to Previewing, on failure it stays in CameraLive and returns a
// *CaptureFailedError. There is no automatic retry.
func (c *Controller) Capture(ctx context.Context) (Snapshot, error) {
	const action = "capture"
	from, err := c.begin(action, KindCameraLive)
	if err != nil {
		return c.Snapshot(), err
	}

	photo, err := c.camera.Capture(ctx)
	if err != nil {
		cerr := &CaptureFailedError{Camera: c.camera.Name(), Err: err}
		debug.Error(cerr)
		return c.finish(action, from, noticeFor(notice.LevelError, "Capture failed: %v", err)), cerr
	}
	debug.Shot(photo.Source, photo.ID, photo.Width, photo.Height)
	return c.finish(action, Previewing{Photo: photo}, nil), nil
}

// Retake discards the previewed photo and returns to the live view.
func (c *Controller) Retake() (Snapshot, error) {
	const action = "retake"
	if _, err := c.begin(action, KindPreviewing); err != nil {
		return c.Snapshot(), err
	}
	return c.finish(action, CameraLive{}, nil), nil
}

// Save hands the previewed photo to the saver. The flow stays in Previewing
// either way; a failure returns a *SaveFailedError.
func (c *Controller) Save(ctx context.Context) (Snapshot, error) {
	const action = "save"
	from, err := c.begin(action, KindPreviewing)
	if err != nil {
		return c.Snapshot(), err
	}
	photo := from.(Previewing).Photo

	if c.saver != nil {
		if err := c.saver.Save(ctx, photo); err != nil {
			serr := &SaveFailedError{PhotoID: photo.ID, Err: err}
			debug.Error(serr)
			return c.finish(action, from, noticeFor(notice.LevelError, "Save failed: %v", err)), serr
		}
	}
	debug.Live("Photo %s saved", photo.ID)
	return c.finish(action, from, noticeFor(notice.LevelInfo, "Photo saved")), nil
}

// Describe renders err as the short text shown to the user.
func Describe(err error) string {
	var cerr *CaptureFailedError
	var serr *SaveFailedError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrBusy):
		return "Busy, please wait"
	case errors.Is(err, ErrIgnored):
		return "Not available right now"
	case errors.Is(err, ErrPermissionDenied):
		return "Camera access denied"
	case errors.As(err, &cerr):
		return "Capture failed: " + cerr.Err.Error()
	case errors.As(err, &serr):
		return "Save failed: " + serr.Err.Error()
	default:
		return err.Error()
	}
}
