package camera

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Camera is the high-level interface used by the rest of the application.
// It represents an abstract "camera", regardless of how it's controlled
// (GPIO remote release, external capture tool, mock).
type Camera interface {
	// Name identifies the camera in the live view and in logs.
	Name() string
	// Capture takes a single still image. It may block while the hardware
	// focuses and encodes.
	Capture(ctx context.Context) (Photo, error)
}

// ErrNoImage is returned when a capture completed but produced nothing usable.
var ErrNoImage = errors.New("camera produced no image")

// Photo is a reference to one captured still image.
type Photo struct {
	ID       string
	URI      string // where the image lives (file://, gpio://, mem://)
	Data     []byte // encoded image, nil when the image stays on the device
	MIMEType string
	Width    int
	Height   int
	TakenAt  time.Time
	Source   string // camera name
}

// Dimensions formats the image size as WxH, or "unknown".
func (p Photo) Dimensions() string {
	if p.Width <= 0 || p.Height <= 0 {
		return "unknown"
	}
	return fmt.Sprintf("%dx%d", p.Width, p.Height)
}

// Size returns the encoded size in bytes (0 when the image is not held in memory).
func (p Photo) Size() int {
	return len(p.Data)
}

func newPhoto(source string) Photo {
	return Photo{
		ID:      uuid.NewString(),
		TakenAt: time.Now(),
		Source:  source,
	}
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
