package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var worldUp = mgl64.Vec3{0, 1, 0}

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Yaw returns the heading of q around +Y, measured from +Z towards +X.
func Yaw(q mgl64.Quat) float64 {
	fwd := q.Rotate(mgl64.Vec3{0, 0, 1})
	if math.Hypot(fwd.X(), fwd.Z()) > 1e-6 {
		return math.Atan2(fwd.X(), fwd.Z())
	}
	// Looking straight up or down: the rotated up vector still carries the
	// heading, flipped when pitched down.
	up := q.Rotate(worldUp)
	sign := 1.0
	if fwd.Y() > 0 {
		sign = -1
	}
	return math.Atan2(sign*up.X(), sign*up.Z())
}

// YawOnly keeps q's heading and discards pitch and roll.
func YawOnly(q mgl64.Quat) mgl64.Quat {
	return mgl64.QuatRotate(Yaw(q), worldUp)
}

// MoveTowards steps from current toward target by at most maxDelta.
func MoveTowards(current, target mgl64.Vec3, maxDelta float64) mgl64.Vec3 {
	diff := target.Sub(current)
	dist := diff.Len()
	if dist <= maxDelta || dist == 0 {
		return target
	}
	return current.Add(diff.Mul(maxDelta / dist))
}
