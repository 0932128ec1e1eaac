package sim

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vrtrack/vrtrack/internal/core/geometry"
	"github.com/vrtrack/vrtrack/internal/core/observability/log"
	"github.com/vrtrack/vrtrack/internal/core/protocol"
	"github.com/vrtrack/vrtrack/internal/core/tracking"
)

// Server owns the runtime side of the boundary: it accepts client
// connections, performs the hello exchange that issues a session
// handle, and streams one snapshot set per frame tick.
type Server struct {
	transport protocol.Transport
	codec     protocol.Codec
	logger    log.Log
	frameRate int
	opts      tracking.Options

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	conn     protocol.Conn
	token    string
	producer *Producer
	pose     PoseProducer
	seq      uint64

	// Set by the request reader, consumed by the frame loop, so the
	// producer is only ever touched from one goroutine.
	recenterRequested atomic.Bool
}

// NewServer creates a simulated runtime served over the given
// transport.
func NewServer(transport protocol.Transport, logger log.Log, frameRate int, opts tracking.Options) *Server {
	if logger == nil {
		logger = log.Nop()
	}
	return &Server{
		transport: transport,
		codec:     protocol.JSONCodec{},
		logger:    logger,
		frameRate: frameRate,
		opts:      opts,
		sessions:  make(map[string]*session),
	}
}

// Run listens on addr and serves clients until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	l, err := s.transport.Listen(ctx, addr)
	if err != nil {
		return fmt.Errorf("sim server: %w", err)
	}
	return s.Serve(ctx, l)
}

// Serve accepts clients on an existing listener until ctx is
// cancelled or the listener closes.
func (s *Server) Serve(ctx context.Context, l protocol.Listener) error {
	defer func() { _ = l.Close() }()

	s.logger.Info("simulated runtime listening",
		log.String("addr", l.Addr()),
		log.String("transport", s.transport.Name()),
		log.Int("frame_rate", s.frameRate),
	)

	var g errgroup.Group
	for {
		conn, err := l.Accept(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, protocol.ErrListenerClosed) {
				break
			}
			s.logger.Warn("accept failed", log.Error(err))
			continue
		}
		g.Go(func() error {
			s.serve(ctx, conn)
			return nil
		})
	}
	return g.Wait()
}

func (s *Server) serve(ctx context.Context, conn protocol.Conn) {
	defer func() { _ = conn.Close() }()

	sess, err := s.handshake(conn)
	if err != nil {
		s.logger.Warn("handshake failed",
			log.String("remote", conn.RemoteAddr()),
			log.Error(err),
		)
		return
	}
	s.logger.Info("client session opened",
		log.String("remote", conn.RemoteAddr()),
		log.String("session", sess.token),
	)

	s.mu.Lock()
	s.sessions[sess.token] = sess
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.sessions, sess.token)
		s.mu.Unlock()
		s.logger.Info("client session closed", log.String("session", sess.token))
	}()

	// Requests (recenter) arrive on a separate goroutine; the frame
	// loop below is the only writer of snapshots.
	go s.readRequests(sess)

	interval := time.Second / time.Duration(s.frameRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.streamFrame(sess, interval); err != nil {
				if !errors.Is(err, protocol.ErrConnectionClosed) {
					s.logger.Warn("stream failed", log.Error(err))
				}
				return
			}
		}
	}
}

func (s *Server) handshake(conn protocol.Conn) (*session, error) {
	data, err := conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	env, err := s.codec.Decode(data)
	if err != nil {
		return nil, err
	}
	if env.Type != protocol.TypeHello {
		return nil, protocol.ErrUnknownMessage
	}
	var hello protocol.Hello
	if err := env.Unmarshal(&hello); err != nil {
		return nil, err
	}

	if hello.LayoutVersion != protocol.LayoutVersion {
		ack, err := s.codec.Encode(protocol.TypeHelloAck, 0, protocol.HelloAck{
			Accepted: false,
			Reason:   "layout version mismatch",
		})
		if err == nil {
			_ = conn.WriteMessage(ack)
		}
		return nil, protocol.ErrLayoutVersion
	}

	token := uuid.NewString()
	ack, err := s.codec.Encode(protocol.TypeHelloAck, 0, protocol.HelloAck{
		SessionToken: token,
		Accepted:     true,
	})
	if err != nil {
		return nil, err
	}
	if err := conn.WriteMessage(ack); err != nil {
		return nil, err
	}

	return &session{
		conn:     conn,
		token:    token,
		producer: NewProducer(s.opts, time.Now().UnixNano()),
	}, nil
}

func (s *Server) readRequests(sess *session) {
	for {
		data, err := sess.conn.ReadMessage()
		if err != nil {
			return
		}
		env, err := s.codec.Decode(data)
		if err != nil {
			s.logger.Warn("bad request frame", log.Error(err))
			continue
		}
		switch env.Type {
		case protocol.TypeRecenterRequest:
			sess.recenterRequested.Store(true)
			s.logger.Debug("recenter requested", log.String("session", sess.token))
		default:
			s.logger.Warn("unexpected message type", log.String("type", env.Type))
		}
	}
}

func (s *Server) streamFrame(sess *session, dt time.Duration) error {
	now := geometry.Now()

	if sess.recenterRequested.CompareAndSwap(true, false) {
		sess.producer.Recenter()
	}
	state := sess.producer.Next(now, dt)
	pose := sess.pose.Next(now, dt)

	frames := []struct {
		typ  string
		body any
	}{
		{protocol.TypeControllerState, state},
		{protocol.TypeHeadPose, pose},
	}
	if sess.seq == 0 {
		frames = append(frames, struct {
			typ  string
			body any
		}{protocol.TypeRenderParams, RecommendedRenderParams()})
	}

	for _, f := range frames {
		sess.seq++
		data, err := s.codec.Encode(f.typ, sess.seq, f.body)
		if err != nil {
			return err
		}
		if err := sess.conn.WriteMessage(data); err != nil {
			return err
		}
	}
	return nil
}

// SessionCount reports the number of open client sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
