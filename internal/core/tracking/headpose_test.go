package tracking

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/vrtrack/vrtrack/internal/core/geometry"
)

func TestHeadPoseValidate(t *testing.T) {
	pose := IdentityPose()
	assert.NoError(t, pose.Validate())

	pose.Rotation = mgl32.Rotate3DY(float32(math.Pi / 4))
	assert.NoError(t, pose.Validate())

	// A sheared matrix is no longer a rotation.
	pose.Rotation[1] = 0.5
	assert.ErrorIs(t, pose.Validate(), ErrNotOrthonormal)
}

func TestRenderParamsValidate(t *testing.T) {
	params := RenderParams{
		EyeViewport: geometry.Rectf{Left: 0, Right: 0.5, Bottom: 0, Top: 1},
		FOV:         geometry.Rectf{Left: -45, Right: 45, Bottom: -45, Top: 45},
		Eye:         LeftEye,
	}
	assert.NoError(t, params.Validate())

	bad := params
	bad.EyeViewport.Right = bad.EyeViewport.Left
	assert.ErrorIs(t, bad.Validate(), ErrInvalidViewport)

	bad = params
	bad.FOV.Top = -90
	assert.ErrorIs(t, bad.Validate(), ErrInvalidFOV)

	bad = params
	bad.Eye = NumEyes
	assert.ErrorIs(t, bad.Validate(), ErrUnknownEye)
}

func TestRenderOptions(t *testing.T) {
	var opts RenderOptions
	opts[ScanlineRacing] = true

	on, err := opts.Enabled(ScanlineRacing)
	assert.NoError(t, err)
	assert.True(t, on)

	on, err = opts.Enabled(ChromaticAberrationCorrection)
	assert.NoError(t, err)
	assert.False(t, on)

	_, err = opts.Enabled(NumRenderOptions)
	assert.ErrorIs(t, err, ErrUnknownRenderOption)
}

func TestEyeString(t *testing.T) {
	assert.Equal(t, "left", LeftEye.String())
	assert.Equal(t, "right", RightEye.String())
	assert.Equal(t, "unknown", NumEyes.String())
}
