package protocol

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/binary"
	"encoding/pem"
	"fmt"
	"io"
	"math/big"
	"sync/atomic"
	"time"

	"github.com/quic-go/quic-go"
)

const quicALPN = "vrtrack-quic"

// QUICTransport carries envelopes over a single bidirectional QUIC
// stream per connection, with 4-byte big-endian length framing.
type QUICTransport struct {
	tlsConfig  *tls.Config
	quicConfig *quic.Config
}

// NewQUICTransport creates a QUIC transport with a self-signed server
// certificate. The boundary is same-device IPC, so the certificate
// only exists to satisfy QUIC's mandatory TLS.
func NewQUICTransport() *QUICTransport {
	return &QUICTransport{
		tlsConfig: generateTLSConfig(),
		quicConfig: &quic.Config{
			MaxIdleTimeout:     30 * time.Second,
			MaxIncomingStreams: 16,
			KeepAlivePeriod:    15 * time.Second,
		},
	}
}

func (t *QUICTransport) Name() string { return "quic" }

func (t *QUICTransport) Listen(ctx context.Context, addr string) (Listener, error) {
	if addr == "" {
		return nil, ErrInvalidAddress
	}
	listener, err := quic.ListenAddr(addr, t.tlsConfig, t.quicConfig)
	if err != nil {
		return nil, fmt.Errorf("quic listen %s: %w", addr, err)
	}
	return &quicListener{listener: listener}, nil
}

func (t *QUICTransport) Dial(ctx context.Context, addr string) (Conn, error) {
	if addr == "" {
		return nil, ErrInvalidAddress
	}
	clientTLS := &tls.Config{
		InsecureSkipVerify: true, // self-signed loopback peer
		NextProtos:         []string{quicALPN},
	}
	conn, err := quic.DialAddr(ctx, addr, clientTLS, t.quicConfig)
	if err != nil {
		return nil, fmt.Errorf("quic dial %s: %w", addr, err)
	}
	stream, err := conn.OpenStreamSync(ctx)
	if err != nil {
		_ = conn.CloseWithError(0, "open stream failed")
		return nil, fmt.Errorf("quic open stream: %w", err)
	}
	return &quicConn{conn: conn, stream: stream}, nil
}

type quicListener struct {
	listener *quic.Listener
	closed   atomic.Bool
}

func (l *quicListener) Accept(ctx context.Context) (Conn, error) {
	if l.closed.Load() {
		return nil, ErrListenerClosed
	}
	conn, err := l.listener.Accept(ctx)
	if err != nil {
		if l.closed.Load() {
			return nil, ErrListenerClosed
		}
		return nil, fmt.Errorf("quic accept: %w", err)
	}
	stream, err := conn.AcceptStream(ctx)
	if err != nil {
		_ = conn.CloseWithError(0, "accept stream failed")
		return nil, fmt.Errorf("quic accept stream: %w", err)
	}
	return &quicConn{conn: conn, stream: stream}, nil
}

func (l *quicListener) Close() error {
	if l.closed.Swap(true) {
		return nil
	}
	return l.listener.Close()
}

func (l *quicListener) Addr() string { return l.listener.Addr().String() }

type quicConn struct {
	conn   *quic.Conn
	stream *quic.Stream
	closed atomic.Bool
}

func (c *quicConn) ReadMessage() ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrConnectionClosed
	}
	var header [4]byte
	if _, err := io.ReadFull(c.stream, header[:]); err != nil {
		if c.closed.Load() {
			return nil, ErrConnectionClosed
		}
		return nil, err
	}
	size := binary.BigEndian.Uint32(header[:])
	if size > MaxMessageSize {
		return nil, ErrMessageTooLarge
	}
	data := make([]byte, size)
	if _, err := io.ReadFull(c.stream, data); err != nil {
		return nil, err
	}
	return data, nil
}

func (c *quicConn) WriteMessage(data []byte) error {
	if c.closed.Load() {
		return ErrConnectionClosed
	}
	if len(data) > MaxMessageSize {
		return ErrMessageTooLarge
	}
	buf := make([]byte, 4+len(data))
	binary.BigEndian.PutUint32(buf[:4], uint32(len(data)))
	copy(buf[4:], data)
	_, err := c.stream.Write(buf)
	return err
}

func (c *quicConn) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	_ = c.stream.Close()
	return c.conn.CloseWithError(0, "closed")
}

func (c *quicConn) RemoteAddr() string { return c.conn.RemoteAddr().String() }

// generateTLSConfig builds an in-memory self-signed certificate for
// the QUIC listener.
func generateTLSConfig() *tls.Config {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		panic(err)
	}
	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{Organization: []string{"vrtrack"}},
		NotBefore:    time.Now(),
		NotAfter:     time.Now().Add(365 * 24 * time.Hour),
	}
	certDER, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		panic(err)
	}
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certDER})

	tlsCert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		panic(err)
	}
	return &tls.Config{
		Certificates: []tls.Certificate{tlsCert},
		NextProtos:   []string{quicALPN},
	}
}
