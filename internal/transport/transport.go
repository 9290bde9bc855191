// Package transport provides the best-effort links that carry gesture
// messages between the controller and the runner.
//
// Every link is fire-and-forget: Send never blocks, never retries and reports
// false when the message was dropped. Callers are expected to ignore the
// result; silence from the peer is a normal condition.
package transport

import (
	"errors"
	"sync"

	"github.com/vovakirdan/momorun/internal/gesture"
)

// ErrClosed is returned when operating on a closed link.
var ErrClosed = errors.New("transport: link closed")

// Transport is one end of a controller/runner link.
type Transport interface {
	// Send queues a message for the peer. Returns false if it was dropped.
	Send(msg gesture.Message) bool

	// Incoming delivers messages received from the peer.
	Incoming() <-chan gesture.Message

	// Reachable reports whether the peer can currently receive messages.
	Reachable() bool

	// Done closes when the link is shut down.
	Done() <-chan struct{}

	// Close shuts the link down. Safe to call multiple times.
	Close() error
}

// Offline is a link with no peer. Every send is dropped and nothing is
// ever received. Used when the runner is played without a controller.
type Offline struct {
	done     chan struct{}
	doneOnce sync.Once
}

// NewOffline creates a disconnected link.
func NewOffline() *Offline {
	return &Offline{done: make(chan struct{})}
}

// Send drops the message.
func (o *Offline) Send(gesture.Message) bool { return false }

// Incoming returns a channel that never delivers.
func (o *Offline) Incoming() <-chan gesture.Message { return nil }

// Reachable always reports false.
func (o *Offline) Reachable() bool { return false }

// Done closes when the link is closed.
func (o *Offline) Done() <-chan struct{} { return o.done }

// Close marks the link closed.
func (o *Offline) Close() error {
	o.doneOnce.Do(func() {
		close(o.done)
	})
	return nil
}

var _ Transport = (*Offline)(nil)
