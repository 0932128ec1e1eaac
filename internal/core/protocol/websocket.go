package protocol

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// wsPath is the endpoint the runtime serves snapshots on.
const wsPath = "/v1/stream"

// WebSocketTransport carries envelopes over WebSocket text frames.
// It is the default same-device IPC transport.
type WebSocketTransport struct {
	upgrader websocket.Upgrader
	dialer   *websocket.Dialer
}

// NewWebSocketTransport creates a WebSocket transport with sane
// buffer sizes for snapshot-sized messages.
func NewWebSocketTransport() *WebSocketTransport {
	return &WebSocketTransport{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Loopback IPC; origin checks do not apply.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		dialer: &websocket.Dialer{
			HandshakeTimeout: 5 * time.Second,
			ReadBufferSize:   4096,
			WriteBufferSize:  4096,
		},
	}
}

func (t *WebSocketTransport) Name() string { return "websocket" }

// Dial connects to the runtime's stream endpoint at host:port.
func (t *WebSocketTransport) Dial(ctx context.Context, addr string) (Conn, error) {
	if addr == "" {
		return nil, ErrInvalidAddress
	}
	url := "ws://" + addr + wsPath
	c, resp, err := t.dialer.DialContext(ctx, url, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s: %w (http %d)", url, err, resp.StatusCode)
		}
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return newWSConn(c), nil
}

// Listen serves the stream endpoint on addr and hands accepted
// connections to Accept.
func (t *WebSocketTransport) Listen(ctx context.Context, addr string) (Listener, error) {
	if addr == "" {
		return nil, ErrInvalidAddress
	}
	nl, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}

	l := &wsListener{
		addr:   nl.Addr().String(),
		accept: make(chan Conn, 16),
		done:   make(chan struct{}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(wsPath, func(w http.ResponseWriter, r *http.Request) {
		c, err := t.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		select {
		case l.accept <- newWSConn(c):
		case <-l.done:
			_ = c.Close()
		}
	})

	l.server = &http.Server{Handler: mux}
	go func() {
		_ = l.server.Serve(nl)
	}()
	return l, nil
}

type wsListener struct {
	server    *http.Server
	addr      string
	accept    chan Conn
	done      chan struct{}
	closeOnce sync.Once
}

func (l *wsListener) Accept(ctx context.Context) (Conn, error) {
	select {
	case c := <-l.accept:
		return c, nil
	case <-l.done:
		return nil, ErrListenerClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *wsListener) Close() error {
	var err error
	l.closeOnce.Do(func() {
		close(l.done)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		err = l.server.Shutdown(ctx)
	})
	return err
}

func (l *wsListener) Addr() string { return l.addr }

// wsConn wraps a gorilla connection. Gorilla allows only one
// concurrent writer, hence the write mutex.
type wsConn struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	closed  atomic.Bool
}

func newWSConn(c *websocket.Conn) *wsConn {
	return &wsConn{conn: c}
}

func (c *wsConn) ReadMessage() ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrConnectionClosed
	}
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		if c.closed.Load() || websocket.IsCloseError(err,
			websocket.CloseNormalClosure, websocket.CloseGoingAway) ||
			errors.Is(err, net.ErrClosed) {
			return nil, ErrConnectionClosed
		}
		return nil, err
	}
	return data, nil
}

func (c *wsConn) WriteMessage(data []byte) error {
	if c.closed.Load() {
		return ErrConnectionClosed
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *wsConn) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	c.writeMu.Lock()
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	c.writeMu.Unlock()
	return c.conn.Close()
}

func (c *wsConn) RemoteAddr() string { return c.conn.RemoteAddr().String() }
