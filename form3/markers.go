package form3

import (
	"github.com/forma-cad/gemset/internal/d3"
	"github.com/forma-cad/gemset/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// AxisMarkers returns three thin cylinders along +X, +Y and +Z, each of
// the given length, for orienting a scene in a viewer.
func AxisMarkers(length float64) mesh.Mesh {
	r := length / 60
	z := Cylinder(r, length, 12)
	x := z.Rotate(d3.RotateAlign(r3.Vec{Z: 1}, r3.Vec{X: 1}))
	y := z.Rotate(d3.RotateAlign(r3.Vec{Z: 1}, r3.Vec{Y: 1}))
	return mesh.Concat(x, y, z)
}

// MarkerSphere returns a small icosphere centered at c.
func MarkerSphere(c r3.Vec, radius float64) mesh.Mesh {
	s := Ellipsoid(2*radius, 2*radius, 2*radius, 2)
	return s.Translate(r3.Vec{X: c.X, Y: c.Y, Z: c.Z - radius})
}

// GroundPlane returns a thin square slab under the origin spanning
// ±halfExtent in XY with its top face at z=0.
func GroundPlane(halfExtent float64) mesh.Mesh {
	t := halfExtent / 100
	return Box(r3.Vec{X: 2 * halfExtent, Y: 2 * halfExtent, Z: t}).Translate(r3.Vec{Z: -t})
}
