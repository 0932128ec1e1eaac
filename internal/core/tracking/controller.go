// Package tracking defines the immutable per-frame snapshots exchanged
// between an external tracking runtime (the producer) and a rendering
// or input client (the consumer), together with the consumer-side
// operations for interpreting them.
//
// Snapshots are plain values. The runtime produces a fresh one every
// polling cycle, the consumer takes a read-only copy, and nothing is
// mutated or freed afterwards. There is no ownership transfer.
//
// Orientation and position are expressed in Start Space: +X right,
// +Y up, +Z forward, with "right" and "forward" fixed when tracking
// initializes and redefined by a recentering operation.
package tracking

import (
	"time"

	"github.com/vrtrack/vrtrack/internal/core/geometry"
)

// Signal names one of the independent sensor categories carried by a
// snapshot. Each category has its own timestamp; a stalled producer is
// detected by timestamp age, never by a blocking read.
type Signal int

const (
	SignalOrientation Signal = iota
	SignalGyro
	SignalAccel
	SignalTouch
	SignalButton

	numSignals
)

func (s Signal) String() string {
	switch s {
	case SignalOrientation:
		return "orientation"
	case SignalGyro:
		return "gyro"
	case SignalAccel:
		return "accel"
	case SignalTouch:
		return "touch"
	case SignalButton:
		return "button"
	default:
		return "unknown"
	}
}

// ControllerState is a point-in-time snapshot of one controller.
//
// Level fields (Touching, TouchPos, ButtonState, Recentering) describe
// the current state and persist across frames until it changes.
// Transient fields (TouchDown, TouchUp, Recentered, ButtonDown,
// ButtonUp) are true in exactly the one snapshot produced for the
// frame in which the edge occurred, then reset. Consumers must not
// assume a transient flag persists.
type ControllerState struct {
	APIStatus       APIStatus       `json:"api_status"`
	ConnectionState ConnectionState `json:"connection_state"`

	// Orientation of the controller in Start Space. After a recenter
	// (Recentered true) it is already relative to the new center.
	Orientation geometry.Quat `json:"orientation"`
	// Gyro is the latest angular velocity reading, rad/s, Start Space.
	Gyro geometry.Vec3 `json:"gyro"`
	// Accel is the latest accelerometer reading, m/s², Start Space.
	Accel geometry.Vec3 `json:"accel"`

	// Touching reports whether a finger is on the touchpad. TouchPos
	// is the touch position in normalized coordinates, (0,0) top-left
	// to (1,1) bottom-right; when not touching it holds the last
	// position.
	Touching  bool          `json:"touching"`
	TouchPos  geometry.Vec2 `json:"touch_pos"`
	TouchDown bool          `json:"touch_down"` // transient
	TouchUp   bool          `json:"touch_up"`   // transient

	// Recentered is transient: true for the single frame after a
	// recenter operation completed. Recentering is a level field, true
	// on every frame while the recenter flow is in progress.
	Recentered  bool `json:"recentered"`
	Recentering bool `json:"recentering"`

	// Per-button arrays, indexed by Button ordinal. Valid indices are
	// [0, ButtonCount). ButtonState is level; ButtonDown and ButtonUp
	// are transient.
	ButtonState [ButtonCount]bool `json:"button_state"`
	ButtonDown  [ButtonCount]bool `json:"button_down"`
	ButtonUp    [ButtonCount]bool `json:"button_up"`

	// One monotonic timestamp per signal category, set to the arrival
	// time of the most recent event in that category.
	OrientationTimestamp geometry.TimePoint `json:"orientation_timestamp"`
	GyroTimestamp        geometry.TimePoint `json:"gyro_timestamp"`
	AccelTimestamp       geometry.TimePoint `json:"accel_timestamp"`
	TouchTimestamp       geometry.TimePoint `json:"touch_timestamp"`
	ButtonTimestamp      geometry.TimePoint `json:"button_timestamp"`
}

// ButtonPressed reports whether the given button is held down in this
// snapshot. Indices outside [0, ButtonCount) are a programmer error
// and fail with ErrButtonOutOfRange rather than clamping silently.
func ButtonPressed(state ControllerState, button Button) (bool, error) {
	if !button.Valid() {
		return false, ErrButtonOutOfRange
	}
	return state.ButtonState[button], nil
}

// JustPressed reports whether the button's transient down flag is set.
func JustPressed(state ControllerState, button Button) (bool, error) {
	if !button.Valid() {
		return false, ErrButtonOutOfRange
	}
	return state.ButtonDown[button], nil
}

// JustReleased reports whether the button's transient up flag is set.
func JustReleased(state ControllerState, button Button) (bool, error) {
	if !button.Valid() {
		return false, ErrButtonOutOfRange
	}
	return state.ButtonUp[button], nil
}

// EdgeSummary is the one-shot edge-event view of a snapshot.
type EdgeSummary struct {
	TouchStarted      bool
	TouchEnded        bool
	RecenterCompleted bool
	ButtonsPressed    []Button
	ButtonsReleased   []Button
}

// EdgeEvents derives the edge summary purely from the snapshot's
// transient fields. The transients are read-only facts about this
// snapshot, not a queue: calling EdgeEvents twice on the same value
// yields identical results. Any combination of simultaneous transients
// is tolerated.
func EdgeEvents(state ControllerState) EdgeSummary {
	sum := EdgeSummary{
		TouchStarted:      state.TouchDown,
		TouchEnded:        state.TouchUp,
		RecenterCompleted: state.Recentered,
	}
	for b := ButtonNone; b < ButtonCount; b++ {
		if state.ButtonDown[b] {
			sum.ButtonsPressed = append(sum.ButtonsPressed, b)
		}
		if state.ButtonUp[b] {
			sum.ButtonsReleased = append(sum.ButtonsReleased, b)
		}
	}
	return sum
}

// Any reports whether the summary carries at least one event.
func (s EdgeSummary) Any() bool {
	return s.TouchStarted || s.TouchEnded || s.RecenterCompleted ||
		len(s.ButtonsPressed) > 0 || len(s.ButtonsReleased) > 0
}

// SignalAge returns how far behind now the given signal category is.
// A category whose timestamp was never set reports the full distance
// from the epoch, which any sane staleness threshold treats as stale.
func SignalAge(state ControllerState, signal Signal, now geometry.TimePoint) time.Duration {
	return signalTimestamp(state, signal).Age(now)
}

// Stale reports whether any enabled signal category lags now by more
// than threshold.
func Stale(state ControllerState, opts Options, threshold time.Duration, now geometry.TimePoint) bool {
	for sig := SignalOrientation; sig < numSignals; sig++ {
		if !opts.enabled(sig) {
			continue
		}
		if SignalAge(state, sig, now) > threshold {
			return true
		}
	}
	return false
}

func signalTimestamp(state ControllerState, signal Signal) geometry.TimePoint {
	switch signal {
	case SignalOrientation:
		return state.OrientationTimestamp
	case SignalGyro:
		return state.GyroTimestamp
	case SignalAccel:
		return state.AccelTimestamp
	case SignalTouch:
		return state.TouchTimestamp
	case SignalButton:
		return state.ButtonTimestamp
	default:
		return 0
	}
}

// Validate performs advisory consistency checks on a snapshot and
// returns every violation found. A snapshot that fails validation is
// still usable; violations indicate a misbehaving producer, not a
// condition the consumer may crash on.
func Validate(state ControllerState) []error {
	var errs []error
	if !state.APIStatus.Known() {
		errs = append(errs, ErrUnknownStatus)
	}
	if !state.ConnectionState.Known() {
		errs = append(errs, ErrUnknownConnection)
	}
	if state.TouchDown && state.TouchUp {
		errs = append(errs, ErrConflictingTouch)
	}
	return errs
}
