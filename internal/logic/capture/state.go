package capture

import (
	"fmt"

	"github.com/cjeanneret/cardcam/internal/hw/camera"
	"github.com/cjeanneret/cardcam/internal/notice"
)

// Kind names a flow state. It is what callers switch on.
type Kind int

const (
	KindPermissionUnknown Kind = iota
	KindPermissionDenied
	KindCameraLive
	KindPreviewing
)

func (k Kind) String() string {
	switch k {
	case KindPermissionUnknown:
		return "PermissionUnknown"
	case KindPermissionDenied:
		return "PermissionDenied"
	case KindCameraLive:
		return "CameraLive"
	case KindPreviewing:
		return "Previewing"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// State is one variant of the capture flow. The set is closed: only the
// four types below implement it.
type State interface {
	Kind() Kind
	isState()
}

// PermissionUnknown is the initial state, before the host has answered.
type PermissionUnknown struct{}

// PermissionDenied means the host refused camera access.
type PermissionDenied struct{}

// CameraLive shows the live feed and accepts capture.
type CameraLive struct{}

// Previewing holds the one captured photo. A photo exists only here.
type Previewing struct {
	Photo camera.Photo
}

func (PermissionUnknown) Kind() Kind { return KindPermissionUnknown }
func (PermissionDenied) Kind() Kind { return KindPermissionDenied }
func (CameraLive) Kind() Kind { return KindCameraLive }
func (Previewing) Kind() Kind { return KindPreviewing }

func (PermissionUnknown) isState() {}
func (PermissionDenied) isState() {}
func (CameraLive) isState() {}
func (Previewing) isState() {}

// Snapshot is an immutable copy of the controller's state handed to views.
type Snapshot struct {
	State  State
	Busy   bool          // an action is waiting on the camera or the host
	Action string        // the action that is in flight while Busy
	Notice notice.Notice // most recent notice, zero if none
}

// Kind is shorthand for s.State.Kind().
func (s Snapshot) Kind() Kind {
	return s.State.Kind()
}

// Photo returns the captured photo when previewing.
func (s Snapshot) Photo() (camera.Photo, bool) {
	if p, ok := s.State.(Previewing); ok {
		return p.Photo, true
	}
	return camera.Photo{}, false
}
