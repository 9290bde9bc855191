package transport

import (
	"sync"

	"github.com/vovakirdan/momorun/internal/gesture"
)

// Relay is a stable Transport whose underlying link can be swapped while
// it is in use. The runner holds one Relay for its whole lifetime;
// controllers attach and detach as they connect and disconnect.
type Relay struct {
	mu      sync.Mutex
	current Transport
	gen     uint64

	in       chan gesture.Message
	done     chan struct{}
	doneOnce sync.Once
}

// NewRelay creates a relay with no attached link.
func NewRelay(bufferSize int) *Relay {
	if bufferSize < 1 {
		bufferSize = defaultQueueSize
	}
	return &Relay{
		in:   make(chan gesture.Message, bufferSize),
		done: make(chan struct{}),
	}
}

// Attach makes t the active link, closing any previous one.
// Messages from t are forwarded to Incoming until t is done.
func (r *Relay) Attach(t Transport) {
	r.mu.Lock()
	prev := r.current
	r.current = t
	r.gen++
	gen := r.gen
	r.mu.Unlock()

	if prev != nil {
		_ = prev.Close()
	}

	go r.forward(t, gen)
}

func (r *Relay) forward(t Transport, gen uint64) {
	defer func() {
		r.mu.Lock()
		if r.gen == gen {
			r.current = nil
		}
		r.mu.Unlock()
	}()

	incoming := t.Incoming()
	for {
		select {
		case <-r.done:
			return
		case <-t.Done():
			return
		case msg, ok := <-incoming:
			if !ok {
				return
			}
			select {
			case r.in <- msg:
			default:
				// Consumer is behind; drop rather than stall the link.
			}
		}
	}
}

// Attached reports whether a link is currently attached.
func (r *Relay) Attached() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current != nil
}

// Send forwards msg to the active link, if any.
func (r *Relay) Send(msg gesture.Message) bool {
	r.mu.Lock()
	t := r.current
	r.mu.Unlock()
	if t == nil {
		return false
	}
	return t.Send(msg)
}

// Incoming returns messages from whichever link is attached.
func (r *Relay) Incoming() <-chan gesture.Message {
	return r.in
}

// Reachable reports whether an attached link is reachable.
func (r *Relay) Reachable() bool {
	r.mu.Lock()
	t := r.current
	r.mu.Unlock()
	return t != nil && t.Reachable()
}

// Done closes when the relay is closed.
func (r *Relay) Done() <-chan struct{} {
	return r.done
}

// Close closes the relay and the attached link.
func (r *Relay) Close() error {
	r.doneOnce.Do(func() {
		close(r.done)
	})
	r.mu.Lock()
	t := r.current
	r.current = nil
	r.mu.Unlock()
	if t != nil {
		return t.Close()
	}
	return nil
}

var _ Transport = (*Relay)(nil)
