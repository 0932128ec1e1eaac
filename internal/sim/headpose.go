package sim

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vrtrack/vrtrack/internal/core/geometry"
	"github.com/vrtrack/vrtrack/internal/core/tracking"
)

// PoseProducer generates head poses: a slow sinusoidal sway that stays
// orthonormal by construction.
type PoseProducer struct {
	elapsed time.Duration
}

// Next advances the head simulation by dt and returns the pose.
func (p *PoseProducer) Next(now geometry.TimePoint, dt time.Duration) tracking.HeadPose {
	p.elapsed += dt
	t := p.elapsed.Seconds()

	yaw := float32(0.4 * math.Sin(t*0.5))
	pitch := float32(0.15 * math.Sin(t*0.9))
	rotation := mgl32.Rotate3DY(yaw).Mul3(mgl32.Rotate3DX(pitch))
	position := geometry.Vec3{
		float32(0.02 * math.Sin(t*1.3)),
		1.7 + float32(0.01*math.Sin(t*2.1)),
		float32(0.02 * math.Cos(t*1.3)),
	}

	objectFromReference := rotation.Mat4().Transpose()
	objectFromReference.SetCol(3, mgl32.Vec4{-position.X(), -position.Y(), -position.Z(), 1})

	return tracking.HeadPose{
		Rotation:            rotation,
		Position:            position,
		ObjectFromReference: objectFromReference,
		Timestamp:           now,
	}
}

// RecommendedRenderParams returns the per-eye viewport and FOV the
// simulated display asks clients to render with: side-by-side halves
// of the target with a symmetric 90 degree field of view.
func RecommendedRenderParams() []tracking.RenderParams {
	return []tracking.RenderParams{
		{
			EyeViewport: geometry.Rectf{Left: 0, Right: 0.5, Bottom: 0, Top: 1},
			FOV:         geometry.Rectf{Left: -45, Right: 45, Bottom: -45, Top: 45},
			Eye:         tracking.LeftEye,
		},
		{
			EyeViewport: geometry.Rectf{Left: 0.5, Right: 1, Bottom: 0, Top: 1},
			FOV:         geometry.Rectf{Left: -45, Right: 45, Bottom: -45, Top: 45},
			Eye:         tracking.RightEye,
		},
	}
}
