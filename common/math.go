package common

import "math"

// Vec3 is a point or direction in world space. Y is up; the arena floor is
// the XZ plane.
type Vec3 struct {
	X, Y, Z float64
}

var (
	Up      = Vec3{Y: 1}
	Forward = Vec3{Z: 1}
)

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) SqrMagnitude() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vec3) Magnitude() float64 {
	return math.Sqrt(v.SqrMagnitude())
}

// SqrDistance is the squared distance between a and b.
func SqrDistance(a, b Vec3) float64 {
	return a.Sub(b).SqrMagnitude()
}

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Yaw returns the heading, in radians, that looks along dir on the ground
// plane. Yaw 0 faces +Z and positive yaw turns toward +X.
func Yaw(dir Vec3) float64 {
	if dir.X == 0 && dir.Z == 0 {
		return 0
	}
	return math.Atan2(dir.X, dir.Z)
}

// HeadingVector is the unit ground-plane direction for yaw.
func HeadingVector(yaw float64) Vec3 {
	return Vec3{X: math.Sin(yaw), Z: math.Cos(yaw)}
}

// WrapAngle maps a to (-pi, pi].
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// SlerpAngle blends from toward to along the shorter arc. t is clamped to
// [0, 1].
func SlerpAngle(from, to, t float64) float64 {
	t = math.Max(0, math.Min(1, t))
	return WrapAngle(from + WrapAngle(to-from)*t)
}
