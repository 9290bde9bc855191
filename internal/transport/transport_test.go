package transport

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/momorun/internal/gesture"
)

func msgFor(t *testing.T, g gesture.Gesture) gesture.Message {
	t.Helper()
	m, ok := gesture.ForGesture(g)
	if !ok {
		t.Fatalf("ForGesture(%v) failed", g)
	}
	return m
}

func receive(t *testing.T, tr Transport) gesture.Message {
	t.Helper()
	select {
	case m := <-tr.Incoming():
		return m
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
		return gesture.Message{}
	}
}

func TestOffline(t *testing.T) {
	o := NewOffline()
	if o.Reachable() {
		t.Error("Reachable() = true, expected false")
	}
	if o.Send(msgFor(t, gesture.Jump)) {
		t.Error("Send() = true, expected false")
	}
	_ = o.Close()
	_ = o.Close()
	select {
	case <-o.Done():
	default:
		t.Error("Done() not closed after Close()")
	}
}

func TestPipeDelivers(t *testing.T) {
	a, b := NewPipe(4)
	defer a.Close()
	defer b.Close()

	if !a.Send(msgFor(t, gesture.Left)) {
		t.Fatal("Send() = false, expected true")
	}
	got, _ := receive(t, b).Gesture()
	if got != gesture.Left {
		t.Errorf("received %v, expected Left", got)
	}

	if !b.Send(gesture.ScreenMessage(gesture.ScreenGame)) {
		t.Fatal("reverse Send() = false")
	}
	if key := receive(t, a).Key(); key != gesture.KeyScreenType {
		t.Errorf("reverse key = %q, expected %q", key, gesture.KeyScreenType)
	}
}

func TestPipeDropsOldestWhenFull(t *testing.T) {
	a, b := NewPipe(2)
	defer a.Close()
	defer b.Close()

	a.Send(msgFor(t, gesture.Left))
	a.Send(msgFor(t, gesture.Right))
	a.Send(msgFor(t, gesture.Jump))

	first, _ := receive(t, b).Gesture()
	second, _ := receive(t, b).Gesture()
	if first != gesture.Right || second != gesture.Jump {
		t.Errorf("received %v, %v; expected Right, Jump", first, second)
	}
}

func TestPipeUnreachable(t *testing.T) {
	a, b := NewPipe(2)

	a.SetUp(false)
	if a.Reachable() || b.Reachable() {
		t.Error("link down but Reachable() = true")
	}
	if a.Send(msgFor(t, gesture.Jump)) {
		t.Error("Send() while down = true, expected false")
	}
	a.SetUp(true)

	_ = b.Close()
	if a.Reachable() {
		t.Error("peer closed but Reachable() = true")
	}
	if a.Send(msgFor(t, gesture.Jump)) {
		t.Error("Send() to closed peer = true, expected false")
	}
	_ = a.Close()
}

func TestRelaySwapsLinks(t *testing.T) {
	r := NewRelay(8)
	defer r.Close()

	if r.Reachable() || r.Send(msgFor(t, gesture.Jump)) {
		t.Fatal("empty relay should not be reachable")
	}

	runner1, ctrl1 := NewPipe(4)
	r.Attach(runner1)
	ctrl1.Send(msgFor(t, gesture.Crouch))
	if g, _ := receive(t, r).Gesture(); g != gesture.Crouch {
		t.Errorf("received %v, expected Crouch", g)
	}

	runner2, ctrl2 := NewPipe(4)
	r.Attach(runner2)
	if ctrl1.Reachable() {
		t.Error("previous link still reachable after Attach")
	}
	ctrl2.Send(msgFor(t, gesture.Restart))
	if g, _ := receive(t, r).Gesture(); g != gesture.Restart {
		t.Errorf("received %v, expected Restart", g)
	}

	if !r.Send(gesture.ScreenMessage(gesture.ScreenGame)) {
		t.Error("Send() through relay = false")
	}
	if key := receive(t, ctrl2).Key(); key != gesture.KeyScreenType {
		t.Errorf("controller got key %q", key)
	}
}

// drainedLink is a link whose incoming channel is closed while Done
// stays open.
type drainedLink struct {
	in   chan gesture.Message
	done chan struct{}
}

func newDrainedLink() *drainedLink {
	in := make(chan gesture.Message)
	close(in)
	return &drainedLink{in: in, done: make(chan struct{})}
}

func (d *drainedLink) Send(gesture.Message) bool        { return false }
func (d *drainedLink) Incoming() <-chan gesture.Message { return d.in }
func (d *drainedLink) Reachable() bool                  { return false }
func (d *drainedLink) Done() <-chan struct{}            { return d.done }
func (d *drainedLink) Close() error                     { return nil }

func TestRelayDetachesClosedIncoming(t *testing.T) {
	r := NewRelay(8)
	defer r.Close()

	r.Attach(newDrainedLink())

	deadline := time.Now().Add(2 * time.Second)
	for r.Attached() {
		if time.Now().After(deadline) {
			t.Fatal("relay still attached to a link with closed incoming")
		}
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case m := <-r.Incoming():
		t.Errorf("relay forwarded %+v from a closed channel", m)
	default:
	}
}

func TestWebsocketRoundTrip(t *testing.T) {
	logger := log.New(io.Discard)
	links := make(chan *WSLink, 1)
	srv := NewServer(logger, func(l *WSLink) { links <- l })

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, err := Dial(ctx, url, logger)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer client.Close()

	var server *WSLink
	select {
	case server = <-links:
	case <-time.After(2 * time.Second):
		t.Fatal("server never accepted link")
	}

	if !client.Send(msgFor(t, gesture.Left)) {
		t.Fatal("client Send() = false")
	}
	if g, _ := receive(t, server).Gesture(); g != gesture.Left {
		t.Errorf("server received %v, expected Left", g)
	}

	server.Send(gesture.CalorieValueMessage(550))
	got := receive(t, client)
	if got.CurrentCalorieValue == nil || *got.CurrentCalorieValue != 550 {
		t.Errorf("client received %v, expected calorie value 550", got)
	}

	_ = client.Close()
	select {
	case <-server.Done():
	case <-time.After(2 * time.Second):
		t.Error("server link not closed after client Close()")
	}
}

func TestWebsocketIgnoresMalformed(t *testing.T) {
	logger := log.New(io.Discard)
	links := make(chan *WSLink, 1)
	srv := NewServer(logger, func(l *WSLink) { links <- l })
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	raw, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer raw.Close()
	server := <-links

	for _, payload := range []string{`not json`, `{"direction":"up"}`, `{}`, `{"direction":"left"}`} {
		if err := raw.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
			t.Fatalf("WriteMessage() error = %v", err)
		}
	}

	if g, _ := receive(t, server).Gesture(); g != gesture.Left {
		t.Errorf("received %v, expected Left after malformed messages", g)
	}
	if !server.Reachable() {
		t.Error("malformed input closed the link")
	}
}
