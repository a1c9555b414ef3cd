package notice

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestBroadcaster_SubscribeAndReceive(t *testing.T) {
	b := NewBroadcaster()
	ch, unsub := b.Subscribe()
	defer unsub()

	b.Publish(LevelInfo, "hello")

	select {
	case n := <-ch:
		if n.Msg != "hello" {
			t.Errorf("msg = %q, want \"hello\"", n.Msg)
		}
		if n.Level != LevelInfo {
			t.Errorf("level = %q, want \"info\"", n.Level)
		}
		if n.Time.IsZero() {
			t.Error("notice should have a timestamp")
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for notice")
	}
}

func TestBroadcaster_MultipleSubscribers(t *testing.T) {
	b := NewBroadcaster()
	ch1, unsub1 := b.Subscribe()
	defer unsub1()
	ch2, unsub2 := b.Subscribe()
	defer unsub2()

	b.Publish(LevelError, "multi")

	for i, ch := range []<-chan Notice{ch1, ch2} {
		select {
		case n := <-ch:
			if n.Msg != "multi" || !n.IsError() {
				t.Errorf("subscriber %d: got %+v", i, n)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d: timeout", i)
		}
	}
}

func TestBroadcaster_UnsubscribeClosesChannel(t *testing.T) {
	b := NewBroadcaster()
	ch, unsub := b.Subscribe()
	unsub()
	unsub() // second call is a no-op

	if _, ok := <-ch; ok {
		t.Error("expected channel to be closed after unsubscribe")
	}
	// Publishing after unsubscribe should not panic
	b.Publish(LevelInfo, "after unsub")
}

func TestBroadcaster_FullChannelDropsNotice(t *testing.T) {
	b := NewBroadcaster()
	ch, unsub := b.Subscribe()
	defer unsub()

	for i := 0; i < 64; i++ {
		b.Publish(LevelInfo, "fill")
	}
	// This should not block; the notice is dropped.
	b.Publish(LevelInfo, "overflow")

	count := 0
	for {
		select {
		case <-ch:
			count++
		default:
			if count != 64 {
				t.Errorf("expected 64 buffered notices, got %d", count)
			}
			return
		}
	}
}

func TestBroadcaster_SubscribeFuncSeesEveryNotice(t *testing.T) {
	b := NewBroadcaster()
	var got []string
	unsub := b.SubscribeFunc(func(n Notice) { got = append(got, n.Msg) })

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				b.Publish(LevelInfo, fmt.Sprintf("%d-%d", i, j))
			}
		}(i)
	}
	wg.Wait()
	unsub()
	unsub()
	b.Publish(LevelInfo, "after unsub")

	if len(got) != 200 {
		t.Fatalf("received %d notices, want 200", len(got))
	}
	for _, msg := range got {
		if msg == "after unsub" {
			t.Error("func subscriber called after cleanup")
		}
	}
}

func TestWriter_Write(t *testing.T) {
	b := NewBroadcaster()
	ch, unsub := b.Subscribe()
	defer unsub()

	w := Writer(b)
	in := "  trimmed message  \n"
	n, err := w.Write([]byte(in))
	if err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if n != len(in) {
		t.Errorf("n = %d, want %d", n, len(in))
	}

	select {
	case got := <-ch:
		if got.Msg != "trimmed message" {
			t.Errorf("msg = %q, want \"trimmed message\"", got.Msg)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout")
	}
}

func TestWriter_EmptyWriteIgnored(t *testing.T) {
	b := NewBroadcaster()
	ch, unsub := b.Subscribe()
	defer unsub()

	Writer(b).Write([]byte("   \n"))

	select {
	case <-ch:
		t.Error("expected no notice for whitespace-only write")
	case <-time.After(50 * time.Millisecond):
	}
}
