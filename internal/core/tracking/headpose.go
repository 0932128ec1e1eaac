package tracking

import "github.com/vrtrack/vrtrack/internal/core/geometry"

// HeadPose is the headset's pose for one frame, expressed against the
// reference space (Start Space). Consumers must not assume a
// handedness beyond the documented +X right / +Y up / +Z forward
// convention.
type HeadPose struct {
	// Rotation is the head's rotation. It must remain orthonormal
	// under normal operation.
	Rotation geometry.Mat3 `json:"rotation"`
	// Position is the head's position.
	Position geometry.Vec3 `json:"position"`
	// ObjectFromReference transforms from the reference space the pose
	// is expressed in to object space.
	ObjectFromReference geometry.Mat4 `json:"object_from_reference"`

	// Timestamp is the monotonic time the pose was computed for.
	Timestamp geometry.TimePoint `json:"timestamp"`
}

// IdentityPose returns a pose at the reference-space origin.
func IdentityPose() HeadPose {
	return HeadPose{
		Rotation:            geometry.Ident3(),
		ObjectFromReference: geometry.Ident4(),
	}
}

// Validate reports ErrNotOrthonormal if the rotation has drifted off
// the rotation group.
func (p HeadPose) Validate() error {
	if !geometry.Orthonormal(p.Rotation, geometry.OrthonormalEpsilon) {
		return ErrNotOrthonormal
	}
	return nil
}

// Eye tags which eye a set of render parameters belongs to.
type Eye int32

const (
	LeftEye Eye = iota
	RightEye

	NumEyes
)

// Valid reports whether e is a concrete eye tag.
func (e Eye) Valid() bool { return e == LeftEye || e == RightEye }

func (e Eye) String() string {
	switch e {
	case LeftEye:
		return "left"
	case RightEye:
		return "right"
	default:
		return "unknown"
	}
}

// RenderParams locates one eye's region in the client's render target:
// the viewport bounds in target texture coordinates, the field of view
// in degrees, and the eye tag the distortion pass keys off.
type RenderParams struct {
	EyeViewport geometry.Rectf `json:"eye_viewport"`
	FOV         geometry.Rectf `json:"fov"`
	Eye         Eye            `json:"eye"`
}

// Validate enforces the rectangle invariants (left < right,
// bottom < top, for both viewport and FOV) and a known eye tag.
func (p RenderParams) Validate() error {
	if !p.EyeViewport.Valid() {
		return ErrInvalidViewport
	}
	if !p.FOV.Valid() {
		return ErrInvalidFOV
	}
	if !p.Eye.Valid() {
		return ErrUnknownEye
	}
	return nil
}

// RenderOption is a boolean rendering parameter of the runtime.
type RenderOption int32

const (
	// ChromaticAberrationCorrection selects a separate distortion
	// function per color channel. Disabled by default.
	ChromaticAberrationCorrection RenderOption = iota
	// ScanlineRacing re-projects frames in sync with display scanout.
	// Not available on every platform. Disabled by default.
	ScanlineRacing

	NumRenderOptions
)

// RenderOptions is the fixed-size option flag set, indexed by
// RenderOption ordinal.
type RenderOptions [NumRenderOptions]bool

// Enabled reports whether opt is set, or ErrUnknownRenderOption for an
// index outside the defined options.
func (r RenderOptions) Enabled(opt RenderOption) (bool, error) {
	if opt < 0 || opt >= NumRenderOptions {
		return false, ErrUnknownRenderOption
	}
	return r[opt], nil
}
