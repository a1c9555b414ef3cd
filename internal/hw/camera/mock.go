package camera

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync"
	"time"

	"github.com/cjeanneret/cardcam/internal/debug"
)

// ErrMockFailure is the injected failure returned by Mock when FailEvery triggers.
var ErrMockFailure = errors.New("mock camera: simulated sensor failure")

// Mock renders a small PNG test card on every capture. It stands in for a
// real camera during development.
type Mock struct {
	width     int
	height    int
	delay     time.Duration
	failEvery int

	mu    sync.Mutex
	calls int
}

// MockConfig tunes the mock camera.
type MockConfig struct {
	WidthPx   int
	HeightPx  int
	Delay     time.Duration // simulated exposure + encode time
	FailEvery int           // fail every Nth capture, 0 = never
}

// NewMock builds a mock camera. Zero sizes default to a 320x448 card ratio.
func NewMock(cfg MockConfig) *Mock {
	if cfg.WidthPx <= 0 {
		cfg.WidthPx = 320
	}
	if cfg.HeightPx <= 0 {
		cfg.HeightPx = 448
	}
	return &Mock{
		width:     cfg.WidthPx,
		height:    cfg.HeightPx,
		delay:     cfg.Delay,
		failEvery: cfg.FailEvery,
	}
}

func (m *Mock) Name() string { return "mock" }

// Calls reports how many captures were attempted.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *Mock) Capture(ctx context.Context) (Photo, error) {
	m.mu.Lock()
	m.calls++
	n := m.calls
	m.mu.Unlock()

	if err := sleep(ctx, m.delay); err != nil {
		return Photo{}, err
	}
	if m.failEvery > 0 && n%m.failEvery == 0 {
		debug.Verbose("Mock camera: injecting failure on capture %d", n)
		return Photo{}, ErrMockFailure
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, testCard(m.width, m.height, n)); err != nil {
		return Photo{}, fmt.Errorf("encode test card: %w", err)
	}

	p := newPhoto(m.Name())
	p.URI = fmt.Sprintf("mem://mock/%04d", n)
	p.Data = buf.Bytes()
	p.MIMEType = "image/png"
	p.Width = m.width
	p.Height = m.height
	return p, nil
}

// testCard draws a bordered card whose fill shade changes with seq, so
// consecutive captures are distinguishable.
func testCard(w, h, seq int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	shade := uint8(40 + (seq*37)%160)
	fill := color.RGBA{R: shade, G: 80, B: 255 - shade, A: 255}
	border := color.RGBA{R: 230, G: 200, B: 40, A: 255}
	edge := w / 20
	if edge < 1 {
		edge = 1
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < edge || y < edge || x >= w-edge || y >= h-edge {
				img.Set(x, y, border)
			} else {
				img.Set(x, y, fill)
			}
		}
	}
	return img
}
