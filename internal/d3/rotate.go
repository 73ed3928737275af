package d3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const alignEpsilon = 1e-12

// RotateAlign returns the rotation matrix that takes direction a onto
// direction b. Near-parallel and near-antiparallel inputs short-circuit
// to the identity and a 180 degree flip so the general formula never
// divides by zero.
func RotateAlign(a, b r3.Vec) *r3.Mat {
	if EqualWithin(a, r3.Vec{}, alignEpsilon) || EqualWithin(b, r3.Vec{}, alignEpsilon) {
		return r3.Eye()
	}
	a = r3.Unit(a)
	b = r3.Unit(b)
	if EqualWithin(a, b, alignEpsilon) {
		return r3.Eye()
	}
	if EqualWithin(r3.Scale(-1, a), b, alignEpsilon) {
		// 180 degrees about any axis perpendicular to a. A plain negation
		// would be an inversion and flip triangle windings.
		u := r3.Cross(a, r3.Vec{X: 1})
		if r3.Norm2(u) < alignEpsilon {
			u = r3.Cross(a, r3.Vec{Y: 1})
		}
		u = r3.Unit(u)
		return r3.NewMat([]float64{
			2*u.X*u.X - 1, 2 * u.X * u.Y, 2 * u.X * u.Z,
			2 * u.X * u.Y, 2*u.Y*u.Y - 1, 2 * u.Y * u.Z,
			2 * u.X * u.Z, 2 * u.Y * u.Z, 2*u.Z*u.Z - 1,
		})
	}
	// Rodrigues' formula in matrix form:
	// R = I + [v]x + [v]x^2 / (1 + cos)
	v := r3.Cross(a, b)
	vx := r3.Skew(v)

	k := 1 / (1 + r3.Dot(a, b))
	vx2 := r3.NewMat(nil)
	vx2.Mul(vx, vx)
	vx2.Scale(k, vx2)

	vx.Add(vx, r3.Eye())
	vx.Add(vx, vx2)
	return vx
}

// RotateZ returns the rotation matrix about +Z by theta radians.
func RotateZ(theta float64) *r3.Mat {
	s, c := math.Sincos(theta)
	return r3.NewMat([]float64{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	})
}
