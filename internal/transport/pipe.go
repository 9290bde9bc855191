package transport

import (
	"sync"
	"sync/atomic"

	"github.com/vovakirdan/momorun/internal/gesture"
)

// ChannelLink is an in-process Transport end backed by Go channels.
// Two ends are created together by NewPipe.
type ChannelLink struct {
	in       chan gesture.Message
	peer     *ChannelLink
	up       *atomic.Bool // shared by both ends
	done     chan struct{}
	doneOnce sync.Once
}

// NewPipe creates two connected link ends. bufferSize controls how many
// messages each end buffers before the oldest is dropped.
func NewPipe(bufferSize int) (*ChannelLink, *ChannelLink) {
	if bufferSize < 1 {
		bufferSize = 64
	}
	up := &atomic.Bool{}
	up.Store(true)

	a := &ChannelLink{in: make(chan gesture.Message, bufferSize), up: up, done: make(chan struct{})}
	b := &ChannelLink{in: make(chan gesture.Message, bufferSize), up: up, done: make(chan struct{})}
	a.peer = b
	b.peer = a
	return a, b
}

// Send delivers msg to the peer's buffer.
// If the buffer is full, the oldest message is dropped to make room.
func (l *ChannelLink) Send(msg gesture.Message) bool {
	if !l.Reachable() {
		return false
	}

	select {
	case l.peer.in <- msg:
		return true
	default:
		// Buffer full, drop oldest and retry
		select {
		case <-l.peer.in:
		default:
		}
		select {
		case l.peer.in <- msg:
			return true
		default:
			return false
		}
	}
}

// Incoming returns the channel of received messages.
func (l *ChannelLink) Incoming() <-chan gesture.Message {
	return l.in
}

// Reachable reports whether both ends are open and the link is up.
func (l *ChannelLink) Reachable() bool {
	if !l.up.Load() {
		return false
	}
	select {
	case <-l.done:
		return false
	case <-l.peer.done:
		return false
	default:
		return true
	}
}

// SetUp simulates the link going down or coming back. Sends while the
// link is down are dropped.
func (l *ChannelLink) SetUp(up bool) {
	l.up.Store(up)
}

// Done returns the channel that closes when this end is closed.
func (l *ChannelLink) Done() <-chan struct{} {
	return l.done
}

// Close shuts this end down. Safe to call multiple times.
func (l *ChannelLink) Close() error {
	l.doneOnce.Do(func() {
		close(l.done)
	})
	return nil
}

var _ Transport = (*ChannelLink)(nil)
