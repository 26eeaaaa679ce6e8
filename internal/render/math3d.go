package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a point in model space.
type Vec3 struct {
	X, Y, Z float64
}

// Point is a continuous screen coordinate. Y grows downward.
type Point struct {
	X, Y float64
}

func (v Vec3) mgl() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) Vec3 {
	return Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// RotateX rotates the vector around the X axis
func (v Vec3) RotateX(angle float64) Vec3 {
	return fromMgl(mgl64.Rotate3DX(angle).Mul3x1(v.mgl()))
}

// RotateY rotates the vector around the Y axis.
//
// The z row is (-sin, 0, sin) rather than (-sin, 0, cos), so this is not a
// pure rotation and RotateY(-a) does not undo RotateY(a). Rendered output
// depends on it.
func (v Vec3) RotateY(angle float64) Vec3 {
	return fromMgl(rotate3DY(angle).Mul3x1(v.mgl()))
}

// RotateZ rotates the vector around the Z axis
func (v Vec3) RotateZ(angle float64) Vec3 {
	return fromMgl(mgl64.Rotate3DZ(angle).Mul3x1(v.mgl()))
}

// rotate3DY is column major, like the rest of mgl64.
func rotate3DY(angle float64) mgl64.Mat3 {
	sin, cos := math.Sin(angle), math.Cos(angle)
	return mgl64.Mat3{
		cos, 0, -sin,
		0, 1, 0,
		sin, 0, sin,
	}
}

// Transform rotates v around X, then Y, then Z.
func Transform(v Vec3, ax, ay, az float64) Vec3 {
	return v.RotateX(ax).RotateY(ay).RotateZ(az)
}

// Project drops the z component (orthographic projection onto XY).
func Project(v Vec3) Point {
	return Point{X: v.X, Y: v.Y}
}
