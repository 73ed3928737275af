package mesh

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Translate returns a copy of the mesh moved by v.
func (m Mesh) Translate(v r3.Vec) Mesh {
	out := m.Clone()
	for i := range out.Vertices {
		out.Vertices[i] = r3.Add(out.Vertices[i], v)
	}
	return out
}

// Rotate returns a copy of the mesh with every vertex rotated about the
// origin by rot.
func (m Mesh) Rotate(rot *r3.Mat) Mesh {
	out := m.Clone()
	for i := range out.Vertices {
		out.Vertices[i] = rot.MulVec(out.Vertices[i])
	}
	return out
}

// RotateAbout rotates the mesh about a pivot point.
func (m Mesh) RotateAbout(rot *r3.Mat, pivot r3.Vec) Mesh {
	out := m.Clone()
	for i := range out.Vertices {
		out.Vertices[i] = r3.Add(rot.MulVec(r3.Sub(out.Vertices[i], pivot)), pivot)
	}
	return out
}

// Scale returns a copy of the mesh scaled per-axis about the origin.
func (m Mesh) Scale(s r3.Vec) Mesh {
	out := m.Clone()
	for i := range out.Vertices {
		v := out.Vertices[i]
		out.Vertices[i] = r3.Vec{X: v.X * s.X, Y: v.Y * s.Y, Z: v.Z * s.Z}
	}
	return out
}
