package capture

import "errors"

var (
	// ErrPermissionDenied is returned when the host refuses camera access.
	ErrPermissionDenied = errors.New("camera permission denied")
	// ErrCaptureFailed matches every *CaptureFailedError.
	ErrCaptureFailed = errors.New("capture failed")
	// ErrSaveFailed matches every *SaveFailedError.
	ErrSaveFailed = errors.New("save failed")
	// ErrIgnored is returned when an action does not apply to the current state.
	// Nothing changed.
	ErrIgnored = errors.New("action not available in current state")
	// ErrBusy is returned when an action arrives while another one is waiting
	// on a collaborator. Nothing changed.
	ErrBusy = errors.New("another action is in progress")
)

// CaptureFailedError wraps a camera error. The flow stays in CameraLive.
type CaptureFailedError struct {
	Camera string
	Err    error
}

func (e *CaptureFailedError) Error() string {
	return "capture failed (" + e.Camera + "): " + e.Err.Error()
}

func (e *CaptureFailedError) Unwrap() error { return e.Err }

func (e *CaptureFailedError) Is(target error) bool { return target == ErrCaptureFailed }

// SaveFailedError wraps a saver error. The flow stays in Previewing.
type SaveFailedError struct {
	PhotoID string
	Err     error
}

func (e *SaveFailedError) Error() string {
	return "save of photo " + e.PhotoID + " failed: " + e.Err.Error()
}

func (e *SaveFailedError) Unwrap() error { return e.Err }

func (e *SaveFailedError) Is(target error) bool { return target == ErrSaveFailed }

// IsNoEffect reports whether err means the action was dropped without
// changing anything (wrong state or another action in flight).
func IsNoEffect(err error) bool {
	return errors.Is(err, ErrIgnored) || errors.Is(err, ErrBusy)
}
