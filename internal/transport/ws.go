package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/momorun/internal/gesture"
)

const (
	writeWait    = 5 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second

	defaultQueueSize = 64
)

// WSLink is a Transport end over a websocket connection. A reader and a
// writer goroutine run for the lifetime of the connection; Send only
// enqueues.
type WSLink struct {
	conn   *websocket.Conn
	logger *log.Logger

	in  chan gesture.Message
	out chan []byte

	done      chan struct{}
	closeOnce sync.Once
}

func newWSLink(conn *websocket.Conn, logger *log.Logger, queueSize int) *WSLink {
	if queueSize < 1 {
		queueSize = defaultQueueSize
	}
	if logger == nil {
		logger = log.Default()
	}
	l := &WSLink{
		conn:   conn,
		logger: logger,
		in:     make(chan gesture.Message, queueSize),
		out:    make(chan []byte, queueSize),
		done:   make(chan struct{}),
	}
	go l.writeLoop()
	go l.readLoop()
	return l
}

// Dial connects to a runner listening at url (ws://host:port/path).
func Dial(ctx context.Context, url string, logger *log.Logger) (*WSLink, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("transport: cannot dial %s: %w", url, err)
	}
	return newWSLink(conn, logger, defaultQueueSize), nil
}

// Send encodes msg and queues it for the writer. Returns false if the
// link is closed, the message is malformed or the queue is full.
func (l *WSLink) Send(msg gesture.Message) bool {
	if !l.Reachable() {
		return false
	}
	b, err := gesture.Encode(msg)
	if err != nil {
		l.logger.Debug("dropping malformed message", "err", err)
		return false
	}
	select {
	case l.out <- b:
		return true
	default:
		l.logger.Debug("send queue full, dropping", "message", msg.String())
		return false
	}
}

// Incoming returns decoded messages from the peer.
func (l *WSLink) Incoming() <-chan gesture.Message {
	return l.in
}

// Reachable reports whether the connection is still open.
func (l *WSLink) Reachable() bool {
	select {
	case <-l.done:
		return false
	default:
		return true
	}
}

// Done closes when the connection is gone.
func (l *WSLink) Done() <-chan struct{} {
	return l.done
}

// Close sends a close frame and tears the connection down.
func (l *WSLink) Close() error {
	var err error
	l.closeOnce.Do(func() {
		close(l.done)
		_ = l.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		err = l.conn.Close()
	})
	return err
}

func (l *WSLink) writeLoop() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case b := <-l.out:
			_ = l.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := l.conn.WriteMessage(websocket.TextMessage, b); err != nil {
				l.logger.Debug("write failed", "err", err)
				_ = l.Close()
				return
			}
		case <-ticker.C:
			_ = l.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := l.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = l.Close()
				return
			}
		}
	}
}

func (l *WSLink) readLoop() {
	defer l.Close()

	_ = l.conn.SetReadDeadline(time.Now().Add(pongWait))
	l.conn.SetPongHandler(func(string) error {
		return l.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := l.conn.ReadMessage()
		if err != nil {
			if !errors.Is(err, websocket.ErrCloseSent) &&
				!websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				l.logger.Debug("read failed", "err", err)
			}
			return
		}
		_ = l.conn.SetReadDeadline(time.Now().Add(pongWait))

		msg, err := gesture.Decode(data)
		if err != nil {
			// Malformed input is ignored, not fatal.
			l.logger.Debug("ignoring message", "err", err)
			continue
		}

		select {
		case l.in <- msg:
		case <-l.done:
			return
		default:
			l.logger.Debug("receive queue full, dropping", "message", msg.String())
		}
	}
}

var _ Transport = (*WSLink)(nil)

// Server accepts controller connections over websocket and hands each one
// to the registered callback.
type Server struct {
	logger   *log.Logger
	upgrader websocket.Upgrader
	onLink   func(*WSLink)
}

// NewServer creates a websocket server. onLink is called for each accepted
// connection; the handler returns once that link is closed.
func NewServer(logger *log.Logger, onLink func(*WSLink)) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 4 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		onLink: onLink,
	}
}

// Handler returns the HTTP handler that upgrades requests.
func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
			return
		}

		link := newWSLink(conn, s.logger, defaultQueueSize)
		s.logger.Info("controller connected", "remote", r.RemoteAddr)
		if s.onLink != nil {
			s.onLink(link)
		}

		<-link.Done()
		s.logger.Info("controller disconnected", "remote", r.RemoteAddr)
	}
}

// ListenAndServe serves the websocket endpoint at path on addr until ctx
// is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr, path string) error {
	mux := http.NewServeMux()
	mux.Handle(path, s.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening for controller", "addr", addr, "path", path)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err, ok := <-errCh:
		if ok && err != nil {
			return fmt.Errorf("transport: cannot serve on %s: %w", addr, err)
		}
		return nil
	}
}
