package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the squared length under which a direction counts as zero.
const Epsilon = 1e-6

// WorldUp is the +Y axis.
var WorldUp = mgl64.Vec3{0, 1, 0}

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp01(t float64) float64 {
	return mgl64.Clamp(t, 0, 1)
}

// Flatten zeroes the vertical component of v.
func Flatten(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}

// NormalizeOrZero returns the unit vector along v, or the zero vector when v
// is negligible.
func NormalizeOrZero(v mgl64.Vec3) mgl64.Vec3 {
	if v.LenSqr() < Epsilon {
		return mgl64.Vec3{}
	}
	return v.Normalize()
}

// IsZero reports whether v is negligible.
func IsZero(v mgl64.Vec3) bool {
	return v.LenSqr() < Epsilon
}

// LookRotation builds the rotation whose -Z axis points along forward, using
// up as the reference. Returns ok=false when forward is negligible or
// parallel to up.
func LookRotation(forward, up mgl64.Vec3) (mgl64.Quat, bool) {
	if IsZero(forward) || IsZero(up) {
		return mgl64.QuatIdent(), false
	}
	back := forward.Normalize().Mul(-1)
	right := up.Cross(back)
	if right.LenSqr() < Epsilon {
		return mgl64.QuatIdent(), false
	}
	right = right.Normalize()
	realUp := back.Cross(right)

	m := mgl64.Mat4{
		right.X(), right.Y(), right.Z(), 0,
		realUp.X(), realUp.Y(), realUp.Z(), 0,
		back.X(), back.Y(), back.Z(), 0,
		0, 0, 0, 1,
	}
	return mgl64.Mat4ToQuat(m).Normalize(), true
}

// SlerpDirection rotates unit vector from toward unit vector to by fraction t
// along the great circle.
func SlerpDirection(from, to mgl64.Vec3, t float64) mgl64.Vec3 {
	t = Clamp01(t)
	dot := mgl64.Clamp(from.Dot(to), -1, 1)
	theta := math.Acos(dot) * t
	if math.Abs(theta) < 1e-9 {
		return from
	}
	// orthonormal component of to relative to from
	rel := to.Sub(from.Mul(dot))
	if rel.LenSqr() < 1e-12 {
		// opposite vectors: turn about world up
		rel = WorldUp.Cross(from)
		if rel.LenSqr() < 1e-12 {
			return to
		}
	}
	rel = rel.Normalize()
	return from.Mul(math.Cos(theta)).Add(rel.Mul(math.Sin(theta)))
}
