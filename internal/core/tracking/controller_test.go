package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrtrack/vrtrack/internal/core/geometry"
)

func TestButtonPressed(t *testing.T) {
	var state ControllerState
	for b := ButtonClick; b < ButtonCount; b++ {
		state.ButtonState[b] = true
		state.ButtonDown[b] = true
	}

	for b := ButtonClick; b < ButtonCount; b++ {
		pressed, err := ButtonPressed(state, b)
		require.NoError(t, err)
		assert.True(t, pressed, "button %s", b)

		down, err := JustPressed(state, b)
		require.NoError(t, err)
		assert.True(t, down, "button %s", b)
	}

	// The dummy none slot never reports a press here.
	pressed, err := ButtonPressed(state, ButtonNone)
	require.NoError(t, err)
	assert.False(t, pressed)
}

func TestButtonPressedOutOfRange(t *testing.T) {
	var state ControllerState

	// One past the last valid index must fail loudly, not clamp.
	_, err := ButtonPressed(state, ButtonCount)
	assert.ErrorIs(t, err, ErrButtonOutOfRange)

	_, err = ButtonPressed(state, Button(-1))
	assert.ErrorIs(t, err, ErrButtonOutOfRange)

	_, err = JustPressed(state, ButtonCount)
	assert.ErrorIs(t, err, ErrButtonOutOfRange)

	_, err = JustReleased(state, Button(99))
	assert.ErrorIs(t, err, ErrButtonOutOfRange)
}

func TestEdgeEventsIdempotent(t *testing.T) {
	state := ControllerState{
		TouchDown:  true,
		Recentered: true,
	}
	state.ButtonDown[ButtonApp] = true
	state.ButtonUp[ButtonHome] = true

	first := EdgeEvents(state)
	second := EdgeEvents(state)
	assert.Equal(t, first, second, "same snapshot must yield identical summaries")

	assert.True(t, first.TouchStarted)
	assert.False(t, first.TouchEnded)
	assert.True(t, first.RecenterCompleted)
	assert.Equal(t, []Button{ButtonApp}, first.ButtonsPressed)
	assert.Equal(t, []Button{ButtonHome}, first.ButtonsReleased)
	assert.True(t, first.Any())
}

func TestEdgeEventsEmpty(t *testing.T) {
	sum := EdgeEvents(ControllerState{})
	assert.False(t, sum.Any())
	assert.Empty(t, sum.ButtonsPressed)
	assert.Empty(t, sum.ButtonsReleased)
}

func TestEdgeEventsToleratesAnyCombination(t *testing.T) {
	// The producer should never emit touch down and recentered (or
	// even touch down and touch up) together, but the consumer must
	// survive any combination.
	state := ControllerState{
		TouchDown:  true,
		TouchUp:    true,
		Recentered: true,
	}
	sum := EdgeEvents(state)
	assert.True(t, sum.TouchStarted)
	assert.True(t, sum.TouchEnded)
	assert.True(t, sum.RecenterCompleted)

	errs := Validate(state)
	assert.Contains(t, errs, ErrConflictingTouch)
}

func TestIsHealthy(t *testing.T) {
	statuses := []APIStatus{
		StatusOK,
		StatusUnsupported,
		StatusNotAuthorized,
		StatusUnavailable,
		StatusServiceObsolete,
		StatusClientObsolete,
		StatusMalfunction,
	}
	for _, s := range statuses {
		state := ControllerState{APIStatus: s}
		if s == StatusOK {
			assert.True(t, IsHealthy(state))
			assert.Empty(t, s.Remediation())
		} else {
			assert.False(t, IsHealthy(state), "status %s", s)
			assert.NotEmpty(t, s.Remediation(), "status %s", s)
		}
		assert.True(t, s.Known())
	}
	assert.False(t, APIStatus(42).Known())
}

func TestValidateUnknownEnums(t *testing.T) {
	state := ControllerState{
		APIStatus:       APIStatus(99),
		ConnectionState: ConnectionState(99),
	}
	errs := Validate(state)
	assert.Contains(t, errs, ErrUnknownStatus)
	assert.Contains(t, errs, ErrUnknownConnection)

	assert.Empty(t, Validate(ControllerState{}))
}

func TestSignalAgeAndStale(t *testing.T) {
	now := geometry.Now()
	state := ControllerState{
		OrientationTimestamp: now,
		GyroTimestamp:        now,
		AccelTimestamp:       now,
		TouchTimestamp:       now,
		ButtonTimestamp:      now,
	}
	opts := DefaultOptions()

	assert.False(t, Stale(state, opts, 50*time.Millisecond, now))

	// Age one category beyond the threshold.
	state.GyroTimestamp = now - geometry.TimePoint(time.Second)
	assert.True(t, Stale(state, opts, 50*time.Millisecond, now))
	assert.Equal(t, time.Second, SignalAge(state, SignalGyro, now))

	// Disabled categories are not consulted.
	opts.EnableGyro = false
	assert.False(t, Stale(state, opts, 50*time.Millisecond, now))
}
