package notice

import (
	"context"
	"sync"
	"testing"
	"time"
)

type shown struct {
	title, msg, icon string
}

type recorder struct {
	mu    sync.Mutex
	calls []shown
}

func (r *recorder) notify(title, message, iconPath string) error {
	r.mu.Lock()
	r.calls = append(r.calls, shown{title, message, iconPath})
	r.mu.Unlock()
	return nil
}

func (r *recorder) snapshot() []shown {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]shown(nil), r.calls...)
}

func TestDesktop_ShowFiltersInfo(t *testing.T) {
	rec := &recorder{}
	d := NewDesktop("cardcam", "icon.png", true)
	d.notify = rec.notify

	d.Show(New(LevelInfo, "saved"))
	d.Show(New(LevelError, "capture failed"))

	calls := rec.snapshot()
	if len(calls) != 1 {
		t.Fatalf("expected 1 desktop notification, got %d", len(calls))
	}
	if calls[0].title != "cardcam: error" || calls[0].msg != "capture failed" || calls[0].icon != "icon.png" {
		t.Errorf("unexpected notification: %+v", calls[0])
	}
}

func TestDesktop_RunForwardsUntilCancelled(t *testing.T) {
	rec := &recorder{}
	d := NewDesktop("cardcam", "", false)
	d.notify = rec.notify
	b := NewBroadcaster()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx, b)
		close(done)
	}()

	// wait for the subscription to be registered
	deadline := time.After(time.Second)
	for {
		b.mu.RLock()
		n := len(b.clients)
		b.mu.RUnlock()
		if n == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("desktop sink never subscribed")
		case <-time.After(time.Millisecond):
		}
	}

	b.Publish(LevelInfo, "saved")
	deadline = time.After(time.Second)
	for len(rec.snapshot()) == 0 {
		select {
		case <-deadline:
			t.Fatal("notice not forwarded")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if got := rec.snapshot()[0]; got.title != "cardcam" || got.msg != "saved" {
		t.Errorf("unexpected notification: %+v", got)
	}
}
