// Package sim is a stand-in tracking runtime for development and
// tests. It produces plausible controller and head-pose snapshots with
// the exact transient semantics of the real producer: an edge flag is
// true in the one snapshot for the frame the edge occurred in, and in
// no other.
//
// It simulates, it does not track: no sensor fusion, no distortion
// correction, no audio rendering.
package sim

import (
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vrtrack/vrtrack/internal/core/geometry"
	"github.com/vrtrack/vrtrack/internal/core/tracking"
)

// recenterFrames is how long the simulated recenter gesture holds.
const recenterFrames = 30

// Producer generates one snapshot per Next call. It is not safe for
// concurrent use; drive it from a single frame loop.
type Producer struct {
	opts tracking.Options
	rng  *rand.Rand

	connection  tracking.ConnectionState
	orientation geometry.Quat
	gyro        geometry.Vec3
	touching    bool
	touchPos    geometry.Vec2
	buttons     [tracking.ButtonCount]bool

	recenterLeft int
	frame        uint64
}

// NewProducer creates a producer seeded for reproducible sequences.
func NewProducer(opts tracking.Options, seed int64) *Producer {
	return &Producer{
		opts:        opts,
		rng:         rand.New(rand.NewSource(seed)),
		connection:  tracking.Disconnected,
		orientation: geometry.QuatIdent(),
		touchPos:    geometry.Vec2{0.5, 0.5},
	}
}

// Next advances the simulation by dt and returns the snapshot for this
// frame. Transient fields are freshly derived each call and never
// carry over.
func (p *Producer) Next(now geometry.TimePoint, dt time.Duration) tracking.ControllerState {
	p.frame++
	p.stepConnection()

	state := tracking.ControllerState{
		APIStatus:       tracking.StatusOK,
		ConnectionState: p.connection,
	}
	if p.connection != tracking.Connected {
		// A controller that is not connected reports nothing else.
		return state
	}

	if p.opts.EnableGyro {
		p.stepGyro()
		state.Gyro = p.gyro
		state.GyroTimestamp = now
	}
	if p.opts.EnableOrientation {
		p.integrateOrientation(dt)
		state.Orientation = p.orientation
		state.OrientationTimestamp = now
	}
	if p.opts.EnableAccel {
		state.Accel = geometry.Vec3{
			p.noise(0.3),
			9.81 + p.noise(0.3),
			p.noise(0.3),
		}
		state.AccelTimestamp = now
	}
	if p.opts.EnableTouch {
		p.stepTouch(&state)
		state.TouchTimestamp = now
	}
	p.stepButtons(&state)
	state.ButtonTimestamp = now
	p.stepRecenter(&state)

	return state
}

// Recenter starts the recenter flow if one is not already running.
func (p *Producer) Recenter() {
	if p.recenterLeft == 0 {
		p.recenterLeft = recenterFrames
	}
}

// Frame returns the number of snapshots produced so far.
func (p *Producer) Frame() uint64 { return p.frame }

// stepConnection walks the pairing machine forward. Once connected it
// stays connected; the occasional signal loss is rare enough to keep
// sequences stable in tests.
func (p *Producer) stepConnection() {
	switch p.connection {
	case tracking.Disconnected:
		p.connection = tracking.Scanning
	case tracking.Scanning:
		p.connection = tracking.Connecting
	case tracking.Connecting:
		p.connection = tracking.Connected
	case tracking.Connected:
		if p.rng.Float64() < 0.0005 {
			p.connection = tracking.Disconnected
		}
	}
}

func (p *Producer) stepGyro() {
	// Random walk with decay keeps angular velocity bounded.
	p.gyro = geometry.Vec3{
		p.gyro.X()*0.95 + p.noise(0.1),
		p.gyro.Y()*0.95 + p.noise(0.1),
		p.gyro.Z()*0.95 + p.noise(0.1),
	}
}

func (p *Producer) integrateOrientation(dt time.Duration) {
	speed := p.gyro.Len()
	if speed < 1e-6 {
		return
	}
	angle := speed * float32(dt.Seconds())
	axis := p.gyro.Mul(1 / speed)
	step := mgl32.QuatRotate(angle, axis)
	p.orientation = step.Mul(p.orientation).Normalize()
}

func (p *Producer) stepTouch(state *tracking.ControllerState) {
	wasTouching := p.touching
	switch {
	case !p.touching && p.rng.Float64() < 0.05:
		p.touching = true
		p.touchPos = geometry.Vec2{p.rng.Float32(), p.rng.Float32()}
	case p.touching && p.rng.Float64() < 0.03:
		p.touching = false
	case p.touching:
		// Drift within the pad, clamped to normalized coordinates.
		p.touchPos = geometry.Vec2{
			clamp01(p.touchPos.X() + p.noise(0.02)),
			clamp01(p.touchPos.Y() + p.noise(0.02)),
		}
	}

	state.Touching = p.touching
	state.TouchPos = p.touchPos
	state.TouchDown = !wasTouching && p.touching
	state.TouchUp = wasTouching && !p.touching
}

func (p *Producer) stepButtons(state *tracking.ControllerState) {
	for b := tracking.ButtonClick; b < tracking.ButtonCount; b++ {
		was := p.buttons[b]
		switch {
		case !was && p.rng.Float64() < 0.02:
			p.buttons[b] = true
		case was && p.rng.Float64() < 0.10:
			p.buttons[b] = false
		}
		state.ButtonState[b] = p.buttons[b]
		state.ButtonDown[b] = !was && p.buttons[b]
		state.ButtonUp[b] = was && !p.buttons[b]
	}
}

func (p *Producer) stepRecenter(state *tracking.ControllerState) {
	if p.recenterLeft == 0 {
		return
	}
	p.recenterLeft--
	if p.recenterLeft > 0 {
		state.Recentering = true
		return
	}
	// Recenter completed this frame: the new center is the current
	// heading, so the reported orientation snaps to identity.
	p.orientation = geometry.QuatIdent()
	state.Orientation = p.orientation
	state.Recentered = true
}

func (p *Producer) noise(scale float32) float32 {
	return float32(p.rng.NormFloat64()) * scale
}

func clamp01(v float32) float32 {
	return float32(math.Min(1, math.Max(0, float64(v))))
}
