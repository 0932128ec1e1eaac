package tracking

import "errors"

// Consumer-side errors
var (
	ErrButtonOutOfRange    = errors.New("button index out of range")
	ErrNotOrthonormal      = errors.New("head pose rotation is not orthonormal")
	ErrInvalidViewport     = errors.New("viewport bounds are degenerate")
	ErrInvalidFOV          = errors.New("field of view bounds are degenerate")
	ErrUnknownEye          = errors.New("unknown eye tag")
	ErrConflictingTouch    = errors.New("touch down and touch up set in the same snapshot")
	ErrUnknownStatus       = errors.New("unknown api status value")
	ErrUnknownConnection   = errors.New("unknown connection state value")
	ErrInvalidTransition   = errors.New("invalid connection state transition")
	ErrUnknownRenderOption = errors.New("unknown render option")
)
