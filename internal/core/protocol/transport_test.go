package protocol

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTransportEcho(t *testing.T, transport Transport) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	l, err := transport.Listen(ctx, "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = l.Close() }()

	serverDone := make(chan error, 1)
	go func() {
		conn, err := l.Accept(ctx)
		if err != nil {
			serverDone <- err
			return
		}
		defer func() { _ = conn.Close() }()
		data, err := conn.ReadMessage()
		if err != nil {
			serverDone <- err
			return
		}
		serverDone <- conn.WriteMessage(data)
		// Hold the connection open until the client hangs up so the
		// echo is not lost in an abrupt close.
		_, _ = conn.ReadMessage()
	}()

	conn, err := transport.Dial(ctx, l.Addr())
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	codec := JSONCodec{}
	sent, err := codec.Encode(TypeHello, 1, Hello{ClientName: "test", LayoutVersion: LayoutVersion})
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(sent))

	got, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, sent, got)

	env, err := codec.Decode(got)
	require.NoError(t, err)
	assert.Equal(t, TypeHello, env.Type)

	require.NoError(t, <-serverDone)
}

func TestWebSocketTransportEcho(t *testing.T) {
	testTransportEcho(t, NewWebSocketTransport())
}

func TestQUICTransportEcho(t *testing.T) {
	testTransportEcho(t, NewQUICTransport())
}

func TestDialInvalidAddress(t *testing.T) {
	ctx := context.Background()
	_, err := NewWebSocketTransport().Dial(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidAddress)
	_, err = NewQUICTransport().Dial(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestWebSocketConnClosed(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	transport := NewWebSocketTransport()
	l, err := transport.Listen(ctx, "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = l.Close() }()

	go func() {
		conn, err := l.Accept(ctx)
		if err == nil {
			defer func() { _ = conn.Close() }()
			_, _ = conn.ReadMessage()
		}
	}()

	conn, err := transport.Dial(ctx, l.Addr())
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	assert.ErrorIs(t, conn.WriteMessage([]byte("x")), ErrConnectionClosed)
	_, err = conn.ReadMessage()
	assert.ErrorIs(t, err, ErrConnectionClosed)
}
