package tracking

import (
	"fmt"
	"sync/atomic"

	"github.com/vrtrack/vrtrack/internal/core/events/bus"
	"github.com/vrtrack/vrtrack/internal/core/observability/log"
)

// Transition records one observed connection-state change.
type Transition struct {
	From  ConnectionState
	To    ConnectionState
	Valid bool
}

// Err returns ErrInvalidTransition (wrapped with the endpoints) for an
// illegal transition, nil otherwise.
func (t Transition) Err() error {
	if t.Valid {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.From, t.To)
}

// Monitor watches the connection-state sequence across snapshots and
// flags illegal transitions. It is purely observational: the runtime
// drives the machine and the consumer keeps working either way.
//
// Observe must be called from a single goroutine (the loop that
// receives snapshots); InvalidCount may be read from anywhere.
type Monitor struct {
	logger log.Log
	bus    bus.EventBus

	last    ConnectionState
	primed  bool
	invalid atomic.Int64
}

// NewMonitor creates a Monitor. The bus may be nil, in which case
// anomalies are only logged.
func NewMonitor(logger log.Log, b bus.EventBus) *Monitor {
	if logger == nil {
		logger = log.Nop()
	}
	return &Monitor{logger: logger, bus: b}
}

// Observe feeds the monitor the connection state of the latest
// snapshot. It returns the transition it recorded, if the state
// changed since the previous call.
func (m *Monitor) Observe(state ConnectionState) (Transition, bool) {
	if !m.primed {
		m.primed = true
		m.last = state
		return Transition{}, false
	}
	if state == m.last {
		return Transition{}, false
	}

	tr := Transition{From: m.last, To: state, Valid: ValidTransition(m.last, state)}
	m.last = state

	if !tr.Valid {
		m.invalid.Add(1)
		m.logger.Warn("invalid connection state transition",
			log.String("from", tr.From.String()),
			log.String("to", tr.To.String()),
		)
		if m.bus != nil {
			_ = m.bus.Publish(bus.NewEvent(bus.EventInvalidTransition, "tracking.monitor", tr))
		}
	}
	return tr, true
}

// InvalidCount returns how many illegal transitions were observed.
func (m *Monitor) InvalidCount() int { return int(m.invalid.Load()) }

// Last returns the most recently observed state.
func (m *Monitor) Last() (ConnectionState, bool) { return m.last, m.primed }
