package gesture

// DefaultInboxSize is the queue depth used when none is configured.
const DefaultInboxSize = 64

// Inbox is a bounded queue between a transport receive goroutine (single
// producer) and the simulation tick (single consumer). Push never blocks;
// when the queue is full the gesture is dropped.
type Inbox struct {
	ch chan Gesture
}

// NewInbox creates an inbox holding at most size gestures.
func NewInbox(size int) *Inbox {
	if size < 1 {
		size = DefaultInboxSize
	}
	return &Inbox{ch: make(chan Gesture, size)}
}

// Push enqueues g. Returns false if the inbox was full and g was dropped.
func (in *Inbox) Push(g Gesture) bool {
	select {
	case in.ch <- g:
		return true
	default:
		return false
	}
}

// Drain appends every queued gesture to buf and returns it.
// Gestures pushed while draining may be picked up by the next call.
func (in *Inbox) Drain(buf []Gesture) []Gesture {
	for {
		select {
		case g := <-in.ch:
			buf = append(buf, g)
		default:
			return buf
		}
	}
}

// Flush discards every queued gesture and returns how many were dropped.
func (in *Inbox) Flush() int {
	n := 0
	for {
		select {
		case <-in.ch:
			n++
		default:
			return n
		}
	}
}

// Len returns the number of queued gestures.
func (in *Inbox) Len() int {
	return len(in.ch)
}
