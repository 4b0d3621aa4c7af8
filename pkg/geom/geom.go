// Package geom holds the small amount of 3D math shared by the layout,
// kernel and scene packages. Vectors and matrices are mathgl's float64
// types; this package adds the Part transform model on top of them.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a 3D vector in meters unless stated otherwise.
type Vec3 = mgl64.Vec3

// Euler is an XYZ Euler rotation in radians, applied X first, then Y,
// then Z.
type Euler struct {
	X, Y, Z float64
}

// IsZero reports whether the rotation is the identity.
func (e Euler) IsZero() bool {
	return e.X == 0 && e.Y == 0 && e.Z == 0
}

// Matrix returns Rz * Ry * Rx.
func (e Euler) Matrix() mgl64.Mat3 {
	return mgl64.Rotate3DZ(e.Z).Mul3(mgl64.Rotate3DY(e.Y)).Mul3(mgl64.Rotate3DX(e.X))
}

// Degrees builds an Euler rotation from angles in degrees.
func Degrees(x, y, z float64) Euler {
	return Euler{X: mgl64.DegToRad(x), Y: mgl64.DegToRad(y), Z: mgl64.DegToRad(z)}
}

// One is the unit scale.
var One = Vec3{1, 1, 1}

// Transform is a Part's local transform.
type Transform struct {
	Position Vec3
	Rotation Euler
	Scale    Vec3
}

// Identity returns a transform with unit scale at the origin.
func Identity() Transform {
	return Transform{Scale: One}
}

// At returns an identity transform translated to p.
func At(p Vec3) Transform {
	return Transform{Position: p, Scale: One}
}

// Basis returns the linear part R * diag(Scale).
func (t Transform) Basis() mgl64.Mat3 {
	return t.Rotation.Matrix().Mul3(mgl64.Diag3(t.Scale))
}

// HasLinear reports whether rotation or scale differ from identity.
func (t Transform) HasLinear() bool {
	return !t.Rotation.IsZero() || t.Scale != One
}

// NormalMatrix returns the inverse transpose of m, used to carry normals
// through a non-uniform basis. The second return is false when m is
// singular.
func NormalMatrix(m mgl64.Mat3) (mgl64.Mat3, bool) {
	if math.Abs(m.Det()) < 1e-300 {
		return mgl64.Mat3{}, false
	}
	return m.Inv().Transpose(), true
}

// ApproxEqual compares two vectors component-wise within eps.
func ApproxEqual(a, b Vec3, eps float64) bool {
	return math.Abs(a[0]-b[0]) <= eps && math.Abs(a[1]-b[1]) <= eps && math.Abs(a[2]-b[2]) <= eps
}
