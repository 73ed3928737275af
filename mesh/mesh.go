// Package mesh implements an owned indexed triangle mesh and the
// repair passes used to make procedurally assembled geometry
// fit for export and manufacturing.
package mesh

import (
	"errors"
	"math"

	"github.com/forma-cad/gemset/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is an indexed triangle mesh. Triangles reference vertices by
// position in Vertices; a triangle owns no vertex data of its own.
// All operations on Mesh return new values and leave the receiver intact.
type Mesh struct {
	Vertices  []r3.Vec
	Triangles [][3]int
}

// New returns a mesh with the given vertices and triangle indices.
// It returns an error if any index is out of range.
func New(vertices []r3.Vec, triangles [][3]int) (Mesh, error) {
	for _, t := range triangles {
		for _, idx := range t {
			if idx < 0 || idx >= len(vertices) {
				return Mesh{}, errors.New("triangle index out of range")
			}
		}
	}
	return Mesh{Vertices: vertices, Triangles: triangles}, nil
}

// VertexCount returns the number of vertices in the mesh.
func (m Mesh) VertexCount() int { return len(m.Vertices) }

// TriangleCount returns the number of triangles in the mesh.
func (m Mesh) TriangleCount() int { return len(m.Triangles) }

// IsEmpty reports whether the mesh has no triangles.
func (m Mesh) IsEmpty() bool { return len(m.Triangles) == 0 }

// Triangle returns the ith triangle with resolved vertex positions.
func (m Mesh) Triangle(i int) r3.Triangle {
	t := m.Triangles[i]
	return r3.Triangle{m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]}
}

// Triangles3 resolves all triangles into a flat slice. The result shares
// no storage with the mesh.
func (m Mesh) Triangles3() []r3.Triangle {
	out := make([]r3.Triangle, len(m.Triangles))
	for i := range m.Triangles {
		out[i] = m.Triangle(i)
	}
	return out
}

// Bounds returns the axis aligned bounding box of the mesh vertices.
func (m Mesh) Bounds() d3.Box {
	if len(m.Vertices) == 0 {
		return d3.Box{}
	}
	bb := d3.Box{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		bb = bb.Include(v)
	}
	return bb
}

// Clone returns a deep copy of the mesh.
func (m Mesh) Clone() Mesh {
	c := Mesh{
		Vertices:  make([]r3.Vec, len(m.Vertices)),
		Triangles: make([][3]int, len(m.Triangles)),
	}
	copy(c.Vertices, m.Vertices)
	copy(c.Triangles, m.Triangles)
	return c
}

// Concat concatenates meshes into a single mesh, offsetting triangle
// indices. No vertex welding is performed; call MergeVertices afterwards
// if shared boundaries should be stitched.
func Concat(meshes ...Mesh) Mesh {
	var nv, nt int
	for _, m := range meshes {
		nv += len(m.Vertices)
		nt += len(m.Triangles)
	}
	out := Mesh{
		Vertices:  make([]r3.Vec, 0, nv),
		Triangles: make([][3]int, 0, nt),
	}
	for _, m := range meshes {
		base := len(out.Vertices)
		out.Vertices = append(out.Vertices, m.Vertices...)
		for _, t := range m.Triangles {
			out.Triangles = append(out.Triangles, [3]int{t[0] + base, t[1] + base, t[2] + base})
		}
	}
	return out
}

// FromTriangles builds an indexed mesh from a triangle soup, welding
// vertices closer than tol. A tol of zero picks a tolerance from the
// smallest triangle side.
func FromTriangles(triangles []r3.Triangle, tol float64) Mesh {
	if tol <= 0 {
		tol = suggestWeldTolerance(triangles)
	}
	ri := 1 / tol
	cache := make(map[[3]int64]int)
	var m Mesh
	for _, tri := range triangles {
		var idx [3]int
		for j, vert := range tri {
			v := r3.Scale(ri, vert)
			key := [3]int64{int64(v.X), int64(v.Y), int64(v.Z)}
			vi, ok := cache[key]
			if !ok {
				vi = len(m.Vertices)
				cache[key] = vi
				m.Vertices = append(m.Vertices, vert)
			}
			idx[j] = vi
		}
		if idx[0] == idx[1] || idx[1] == idx[2] || idx[2] == idx[0] {
			continue // collapsed by welding
		}
		m.Triangles = append(m.Triangles, idx)
	}
	return m
}

func suggestWeldTolerance(triangles []r3.Triangle) float64 {
	minSide2 := 1e300
	for _, tri := range triangles {
		for j := range tri {
			side2 := r3.Norm2(r3.Sub(tri[(j+1)%3], tri[j]))
			if side2 > 0 && side2 < minSide2 {
				minSide2 = side2
			}
		}
	}
	if minSide2 >= 1e300 {
		return 1e-8
	}
	// Same heuristic scale as octree vertex caching: a small fraction
	// of the shortest edge is safely below any feature size.
	return math.Sqrt(minSide2) / 256
}
