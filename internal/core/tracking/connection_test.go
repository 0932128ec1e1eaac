package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrtrack/vrtrack/internal/core/events/bus"
	"github.com/vrtrack/vrtrack/internal/core/observability/log"
)

func TestValidTransition(t *testing.T) {
	valid := []struct{ from, to ConnectionState }{
		{Disconnected, Scanning},
		{Scanning, Connecting},
		{Connecting, Connected},
		{Connected, Disconnected},
	}
	for _, tr := range valid {
		assert.True(t, ValidTransition(tr.from, tr.to), "%s -> %s", tr.from, tr.to)
	}

	invalid := []struct{ from, to ConnectionState }{
		{Connected, Scanning}, // skipping Disconnected
		{Connected, Connecting},
		{Scanning, Connected},
		{Scanning, Disconnected},
		{Connecting, Disconnected},
		{Disconnected, Connected},
		{ConnectionState(99), Scanning},
	}
	for _, tr := range invalid {
		assert.False(t, ValidTransition(tr.from, tr.to), "%s -> %s", tr.from, tr.to)
	}
}

func TestMonitorAcceptsPairingSequence(t *testing.T) {
	m := NewMonitor(log.Nop(), nil)

	seq := []ConnectionState{Disconnected, Scanning, Connecting, Connected, Disconnected}
	for _, s := range seq {
		// Repeated observations of the same state are not transitions.
		m.Observe(s)
		_, changed := m.Observe(s)
		assert.False(t, changed)
	}
	assert.Equal(t, 0, m.InvalidCount())

	last, ok := m.Last()
	require.True(t, ok)
	assert.Equal(t, Disconnected, last)
}

func TestMonitorFlagsInvalidTransition(t *testing.T) {
	b := bus.New()
	var flagged []Transition
	_, err := b.Subscribe(bus.EventInvalidTransition, func(e bus.Event) error {
		flagged = append(flagged, e.Data().(Transition))
		return nil
	})
	require.NoError(t, err)

	m := NewMonitor(log.Nop(), b)
	m.Observe(Connected)

	// Connected -> Scanning skips Disconnected and must be flagged,
	// but observation keeps working.
	tr, changed := m.Observe(Scanning)
	assert.True(t, changed)
	assert.False(t, tr.Valid)
	assert.ErrorIs(t, tr.Err(), ErrInvalidTransition)
	assert.Equal(t, 1, m.InvalidCount())

	require.Len(t, flagged, 1)
	assert.Equal(t, Connected, flagged[0].From)
	assert.Equal(t, Scanning, flagged[0].To)

	// The monitor resynchronizes on the observed state.
	tr, changed = m.Observe(Connecting)
	assert.True(t, changed)
	assert.True(t, tr.Valid)
	assert.Equal(t, 1, m.InvalidCount())
}
