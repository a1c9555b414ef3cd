package notice

import (
	"strings"
	"sync"
	"time"
)

// Level classifies a notice.
type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notice is a transient message for the user (saved, capture failed, ...).
type Notice struct {
	Time  time.Time
	Level Level
	Msg   string
}

// IsError reports whether the notice describes a failure.
func (n Notice) IsError() bool { return n.Level == LevelError }

// New stamps a notice with the current time.
func New(level Level, msg string) Notice {
	return Notice{Time: time.Now(), Level: level, Msg: msg}
}

// Broadcaster distributes notices to multiple subscribers.
type Broadcaster struct {
	mu      sync.RWMutex
	clients map[chan Notice]struct{}
	sinks   map[*sink]struct{}
}

// sink is a synchronous subscriber. Calls to fn are serialized.
type sink struct {
	mu sync.Mutex
	fn func(Notice)
}

// NewBroadcaster creates a new broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		clients: make(map[chan Notice]struct{}),
		sinks:   make(map[*sink]struct{}),
	}
}

// Subscribe returns a channel that receives notices and a cleanup function.
// The caller must call the returned cleanup when done.
func (b *Broadcaster) Subscribe() (<-chan Notice, func()) {
	ch := make(chan Notice, 64)
	b.mu.Lock()
	b.clients[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	unsub := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.clients, ch)
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, unsub
}

// SubscribeFunc calls fn with every notice, in the publishing goroutine.
// Nothing is dropped, so fn must be quick and must not publish itself. Once
// the returned cleanup returns, fn is not called again.
func (b *Broadcaster) SubscribeFunc(fn func(Notice)) func() {
	s := &sink{fn: fn}
	b.mu.Lock()
	b.sinks[s] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.sinks, s)
			b.mu.Unlock()
		})
	}
}

// Notify sends n to all subscribers.
// Slow channel subscribers may miss notices (non-blocking, buffered); func
// subscribers see every one.
func (b *Broadcaster) Notify(n Notice) {
	if n.Time.IsZero() {
		n.Time = time.Now()
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for s := range b.sinks {
		s.mu.Lock()
		s.fn(n)
		s.mu.Unlock()
	}
	for ch := range b.clients {
		select {
		case ch <- n:
		default:
			// channel full, skip
		}
	}
}

// Publish is a convenience wrapper around Notify.
func (b *Broadcaster) Publish(level Level, msg string) {
	b.Notify(New(level, msg))
}

// Writer implements io.Writer; each non-blank Write is published at info level.
func Writer(b *Broadcaster) *broadcastWriter {
	return &broadcastWriter{b: b}
}

// broadcastWriter wraps Broadcaster as io.Writer for use with debug.SetOutput.
type broadcastWriter struct {
	b *Broadcaster
}

func (w *broadcastWriter) Write(p []byte) (n int, err error) {
	msg := strings.TrimSpace(string(p))
	if msg != "" {
		w.b.Publish(LevelInfo, msg)
	}
	return len(p), nil
}
