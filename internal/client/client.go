// Package client implements the consumer side of the tracking
// boundary: it connects to the runtime, keeps the latest snapshots in
// atomic cells, and exposes the non-blocking per-frame read API.
//
// Polling never blocks and never fails on degraded hardware; the
// APIStatus and ConnectionState fields of the snapshot carry those
// conditions instead.
package client

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/vrtrack/vrtrack/internal/config"
	"github.com/vrtrack/vrtrack/internal/core/events/bus"
	"github.com/vrtrack/vrtrack/internal/core/geometry"
	"github.com/vrtrack/vrtrack/internal/core/observability/log"
	"github.com/vrtrack/vrtrack/internal/core/protocol"
	"github.com/vrtrack/vrtrack/internal/core/tracking"
	"github.com/vrtrack/vrtrack/pkg/latest"
)

// Stats counts what the reader loop has seen.
type Stats struct {
	FramesReceived     uint64
	DecodeErrors       uint64
	InvalidTransitions uint64
}

// Client is a tracking runtime client. Create it with New, open the
// stream with Connect, then read snapshots with Poll/HeadPose from the
// frame loop. Poll-side methods are safe to call from one consumer
// goroutine while the internal reader runs.
type Client struct {
	cfg       config.Client
	transport protocol.Transport
	codec     protocol.Codec
	logger    log.Log
	bus       bus.EventBus

	conn   protocol.Conn
	handle Handle

	controller   *latest.Cell[tracking.ControllerState]
	headPose     *latest.Cell[tracking.HeadPose]
	renderParams *latest.Cell[[]tracking.RenderParams]
	monitor      *tracking.Monitor

	framesReceived atomic.Uint64
	decodeErrors   atomic.Uint64
	writeSeq       atomic.Uint64

	group  *errgroup.Group
	cancel context.CancelFunc
}

// New creates a client from config. The bus may be nil to skip edge
// event publishing.
func New(cfg config.Client, logger log.Log, b bus.EventBus) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Nop()
	}
	transport, err := newTransport(cfg.Transport)
	if err != nil {
		return nil, err
	}
	return &Client{
		cfg:          cfg,
		transport:    transport,
		codec:        protocol.JSONCodec{},
		logger:       logger.With(log.String("component", "tracking_client")),
		bus:          b,
		controller:   &latest.Cell[tracking.ControllerState]{},
		headPose:     latest.New(tracking.IdentityPose()),
		renderParams: &latest.Cell[[]tracking.RenderParams]{},
		monitor:      tracking.NewMonitor(logger, b),
	}, nil
}

func newTransport(name string) (protocol.Transport, error) {
	switch name {
	case config.TransportWebSocket:
		return protocol.NewWebSocketTransport(), nil
	case config.TransportQUIC:
		return protocol.NewQUICTransport(), nil
	default:
		return nil, fmt.Errorf("unknown transport %q", name)
	}
}

// Connect dials the runtime, performs the hello exchange and starts
// the reader. ctx bounds the handshake and, once connected, the
// lifetime of the stream.
func (c *Client) Connect(ctx context.Context) error {
	conn, err := c.transport.Dial(ctx, c.cfg.Address)
	if err != nil {
		return fmt.Errorf("connect runtime: %w", err)
	}

	handle, err := c.hello(conn)
	if err != nil {
		_ = conn.Close()
		return err
	}
	c.conn = conn
	c.handle = handle
	c.logger.Info("session established",
		log.String("session", handle.Token()),
		log.String("transport", c.transport.Name()),
	)

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	g, runCtx := errgroup.WithContext(runCtx)
	c.group = g
	g.Go(func() error { return c.readLoop(runCtx) })
	return nil
}

func (c *Client) hello(conn protocol.Conn) (Handle, error) {
	data, err := c.codec.Encode(protocol.TypeHello, c.writeSeq.Add(1), protocol.Hello{
		ClientName:    c.cfg.ClientName,
		LayoutVersion: protocol.LayoutVersion,
	})
	if err != nil {
		return Handle{}, err
	}
	if err := conn.WriteMessage(data); err != nil {
		return Handle{}, fmt.Errorf("send hello: %w", err)
	}

	reply, err := conn.ReadMessage()
	if err != nil {
		return Handle{}, fmt.Errorf("await hello ack: %w", err)
	}
	env, err := c.codec.Decode(reply)
	if err != nil {
		return Handle{}, err
	}
	if env.Type != protocol.TypeHelloAck {
		return Handle{}, protocol.ErrUnknownMessage
	}
	var ack protocol.HelloAck
	if err := env.Unmarshal(&ack); err != nil {
		return Handle{}, err
	}
	if !ack.Accepted {
		return Handle{}, fmt.Errorf("%w: %s", protocol.ErrHandshakeRejected, ack.Reason)
	}
	return Handle{token: ack.SessionToken}, nil
}

func (c *Client) readLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		data, err := c.conn.ReadMessage()
		if err != nil {
			if errors.Is(err, protocol.ErrConnectionClosed) || ctx.Err() != nil {
				return nil
			}
			return err
		}

		env, err := c.codec.Decode(data)
		if err != nil {
			c.decodeErrors.Add(1)
			c.logger.Warn("dropping bad frame", log.Error(err))
			continue
		}
		c.dispatch(env)
	}
}

func (c *Client) dispatch(env protocol.Envelope) {
	switch env.Type {
	case protocol.TypeControllerState:
		var state tracking.ControllerState
		if err := env.Unmarshal(&state); err != nil {
			c.decodeErrors.Add(1)
			return
		}
		c.framesReceived.Add(1)
		c.monitor.Observe(state.ConnectionState)
		c.controller.Store(state)
		c.publishEdges(state)

	case protocol.TypeHeadPose:
		var pose tracking.HeadPose
		if err := env.Unmarshal(&pose); err != nil {
			c.decodeErrors.Add(1)
			return
		}
		if err := pose.Validate(); err != nil {
			c.logger.Warn("suspect head pose", log.Error(err))
		}
		c.headPose.Store(pose)

	case protocol.TypeRenderParams:
		var params []tracking.RenderParams
		if err := env.Unmarshal(&params); err != nil {
			c.decodeErrors.Add(1)
			return
		}
		c.renderParams.Store(params)

	default:
		c.logger.Debug("ignoring message", log.String("type", env.Type))
	}
}

// publishEdges turns the snapshot's transient fields into bus events.
// The snapshot itself stays the source of truth; events are a
// convenience for listeners outside the frame loop.
func (c *Client) publishEdges(state tracking.ControllerState) {
	if c.bus == nil {
		return
	}
	sum := tracking.EdgeEvents(state)
	if !sum.Any() {
		return
	}
	src := "tracking_client"
	if sum.TouchStarted {
		_ = c.bus.Publish(bus.NewEvent(bus.EventTouchDown, src, state.TouchPos))
	}
	if sum.TouchEnded {
		_ = c.bus.Publish(bus.NewEvent(bus.EventTouchUp, src, state.TouchPos))
	}
	if sum.RecenterCompleted {
		_ = c.bus.Publish(bus.NewEvent(bus.EventRecentered, src, nil))
	}
	for _, b := range sum.ButtonsPressed {
		_ = c.bus.Publish(bus.NewEvent(bus.EventButtonDown, src, b))
	}
	for _, b := range sum.ButtonsReleased {
		_ = c.bus.Publish(bus.NewEvent(bus.EventButtonUp, src, b))
	}
}

// Poll returns the latest controller snapshot without blocking. Before
// the first frame arrives it returns the zero snapshot, whose
// ConnectionState is Disconnected.
func (c *Client) Poll() tracking.ControllerState {
	state, _ := c.controller.Load()
	c.controller.MarkClean()
	return state
}

// HasFreshFrame reports whether a snapshot arrived since the last
// Poll.
func (c *Client) HasFreshFrame() bool { return c.controller.IsDirty() }

// HeadPose returns the latest head pose.
func (c *Client) HeadPose() tracking.HeadPose {
	pose, _ := c.headPose.Load()
	return pose
}

// RenderParams returns the runtime's recommended per-eye render
// parameters, or nil if none were received yet.
func (c *Client) RenderParams() []tracking.RenderParams {
	params, _ := c.renderParams.Load()
	return params
}

// Healthy reports whether the latest snapshot came from a healthy
// service.
func (c *Client) Healthy() bool {
	state, _ := c.controller.Load()
	return tracking.IsHealthy(state)
}

// Stale reports whether any enabled signal of the latest snapshot is
// older than the configured staleness threshold.
func (c *Client) Stale() bool {
	state, _ := c.controller.Load()
	return tracking.Stale(state, c.cfg.Controller, c.cfg.StalenessThreshold.Std(), geometry.Now())
}

// Handle returns the borrowed session handle.
func (c *Client) Handle() Handle { return c.handle }

// Stats returns reader-side counters.
func (c *Client) Stats() Stats {
	return Stats{
		FramesReceived:     c.framesReceived.Load(),
		DecodeErrors:       c.decodeErrors.Load(),
		InvalidTransitions: uint64(c.monitor.InvalidCount()),
	}
}

// RequestRecenter asks the runtime to run its recenter flow. The
// result shows up later as a Recentered transient in a snapshot.
func (c *Client) RequestRecenter() error {
	if c.conn == nil {
		return protocol.ErrConnectionClosed
	}
	data, err := c.codec.Encode(protocol.TypeRecenterRequest, c.writeSeq.Add(1), struct{}{})
	if err != nil {
		return err
	}
	return c.conn.WriteMessage(data)
}

// Close releases the session handle and stops the reader. The client
// must not be reused afterwards.
func (c *Client) Close() error {
	if c.cancel != nil {
		c.cancel()
	}
	var err error
	if c.conn != nil {
		err = c.conn.Close()
	}
	if c.group != nil {
		if werr := c.group.Wait(); werr != nil && !errors.Is(werr, context.Canceled) && err == nil {
			err = werr
		}
	}
	c.handle = Handle{}
	return err
}
