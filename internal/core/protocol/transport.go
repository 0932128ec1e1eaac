package protocol

import "context"

// Conn is one message-framed connection to a peer. Implementations
// preserve message boundaries; a ReadMessage returns exactly one
// envelope's bytes.
type Conn interface {
	// ReadMessage blocks until the next message or an error. It
	// returns ErrConnectionClosed after Close.
	ReadMessage() ([]byte, error)
	// WriteMessage sends one message.
	WriteMessage(data []byte) error
	Close() error
	RemoteAddr() string
}

// Listener accepts inbound connections.
type Listener interface {
	// Accept blocks for the next connection. It returns
	// ErrListenerClosed after Close, or ctx.Err.
	Accept(ctx context.Context) (Conn, error)
	Close() error
	Addr() string
}

// Transport is an abstract message transport. Two implementations
// exist: WebSocket (default same-device IPC) and QUIC.
type Transport interface {
	Name() string
	Listen(ctx context.Context, addr string) (Listener, error)
	Dial(ctx context.Context, addr string) (Conn, error)
}
