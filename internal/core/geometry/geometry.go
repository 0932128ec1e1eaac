// Package geometry defines the value types that cross the
// client/runtime boundary: vectors, quaternions, matrices, rectangles
// and monotonic time points. All floating point types are float32 to
// match the runtime's wire layout.
package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Aliases over mgl32 so callers get the full math API (Mul, Normalize,
// Rotate, ...) without an adapter layer.
type (
	Vec2 = mgl32.Vec2
	Vec3 = mgl32.Vec3
	Quat = mgl32.Quat
	Mat3 = mgl32.Mat3
	Mat4 = mgl32.Mat4
)

// OrthonormalEpsilon is the default tolerance for Orthonormal.
const OrthonormalEpsilon = 1e-4

// Orthonormal reports whether m is orthonormal within eps: its
// determinant is ~1 and its transpose is ~its inverse. Rotation
// matrices produced by a healthy tracker satisfy this; a matrix that
// does not indicates drift or corruption upstream.
func Orthonormal(m Mat3, eps float32) bool {
	if float32(math.Abs(float64(m.Det()-1))) > eps {
		return false
	}
	// m * mᵀ must be identity.
	p := m.Mul3(m.Transpose())
	id := mgl32.Ident3()
	for i := 0; i < 9; i++ {
		if float32(math.Abs(float64(p[i]-id[i]))) > eps {
			return false
		}
	}
	return true
}

// QuatIdent returns the identity orientation.
func QuatIdent() Quat { return mgl32.QuatIdent() }

// Ident3 returns the 3x3 identity matrix.
func Ident3() Mat3 { return mgl32.Ident3() }

// Ident4 returns the 4x4 identity matrix.
func Ident4() Mat4 { return mgl32.Ident4() }
