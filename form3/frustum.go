// Package form3 builds the parametric solids of a stone setting as
// indexed triangle meshes: frusta, faceted gemstone cuts, ring bands,
// prong bases and claw clusters. All builders are deterministic and
// place their result in a documented local frame with the axis along +Z.
package form3

import (
	"math"

	"github.com/forma-cad/gemset/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

const tau = 2 * math.Pi

// Frustum returns a conical frustum with its axis along +Z and the base
// circle centered on the origin at z=0. Equal radii produce a cylinder
// and a zero top radius produces a cone; both are valid. The mesh has
// 2*sections+2 vertices and 4*sections triangles.
func Frustum(radiusBottom, radiusTop, height float64, sections int) mesh.Mesh {
	if sections < 3 {
		sections = 3
	}
	var m mesh.Mesh
	for i := 0; i < sections; i++ {
		theta := float64(i) / float64(sections) * tau
		c, s := math.Cos(theta), math.Sin(theta)
		m.Vertices = append(m.Vertices, r3.Vec{X: radiusBottom * c, Y: radiusBottom * s})
	}
	for i := 0; i < sections; i++ {
		theta := float64(i) / float64(sections) * tau
		c, s := math.Cos(theta), math.Sin(theta)
		m.Vertices = append(m.Vertices, r3.Vec{X: radiusTop * c, Y: radiusTop * s, Z: height})
	}
	baseCenter := len(m.Vertices)
	topCenter := baseCenter + 1
	m.Vertices = append(m.Vertices, r3.Vec{}, r3.Vec{Z: height})

	n := sections
	for i := 0; i < n; i++ {
		i2 := (i + 1) % n
		a, b := i, i2
		c, d := n+i, n+i2
		m.Triangles = append(m.Triangles, [3]int{a, b, c}, [3]int{b, d, c})
	}
	for i := 0; i < n; i++ {
		i2 := (i + 1) % n
		m.Triangles = append(m.Triangles, [3]int{baseCenter, i2, i})
	}
	for i := 0; i < n; i++ {
		i2 := (i + 1) % n
		m.Triangles = append(m.Triangles, [3]int{topCenter, n + i, n + i2})
	}
	return m
}

// Cylinder returns a right cylinder, axis +Z, base at z=0.
func Cylinder(radius, height float64, sections int) mesh.Mesh {
	return Frustum(radius, radius, height, sections)
}

// Box returns an axis aligned box of the given extents with its bottom
// face at z=0 and centered on the origin in XY.
func Box(size r3.Vec) mesh.Mesh {
	hx, hy := size.X/2, size.Y/2
	verts := []r3.Vec{
		{X: -hx, Y: -hy, Z: 0},
		{X: hx, Y: -hy, Z: 0},
		{X: hx, Y: hy, Z: 0},
		{X: -hx, Y: hy, Z: 0},
		{X: -hx, Y: -hy, Z: size.Z},
		{X: hx, Y: -hy, Z: size.Z},
		{X: hx, Y: hy, Z: size.Z},
		{X: -hx, Y: hy, Z: size.Z},
	}
	tris := [][3]int{
		{0, 2, 1}, {0, 3, 2}, // bottom
		{4, 5, 6}, {4, 6, 7}, // top
		{0, 1, 5}, {0, 5, 4}, // front
		{1, 2, 6}, {1, 6, 5}, // right
		{2, 3, 7}, {2, 7, 6}, // back
		{3, 0, 4}, {3, 4, 7}, // left
	}
	return mesh.Mesh{Vertices: verts, Triangles: tris}
}

// Torus returns a torus with the given major (center-to-tube) and tube
// radii, lathed directly from angle samples so the result never depends
// on a boolean engine. sections samples the major circle, segments the
// tube circle.
func Torus(major, tube float64, sections, segments int) mesh.Mesh {
	if sections < 3 {
		sections = 3
	}
	if segments < 3 {
		segments = 3
	}
	var m mesh.Mesh
	for i := 0; i < sections; i++ {
		t := float64(i) / float64(sections) * tau
		ct, st := math.Cos(t), math.Sin(t)
		for j := 0; j < segments; j++ {
			p := float64(j) / float64(segments) * tau
			cp, sp := math.Cos(p), math.Sin(p)
			m.Vertices = append(m.Vertices, r3.Vec{
				X: (major + tube*cp) * ct,
				Y: (major + tube*cp) * st,
				Z: tube * sp,
			})
		}
	}
	for i := 0; i < sections; i++ {
		for j := 0; j < segments; j++ {
			a := i*segments + j
			b := ((i+1)%sections)*segments + j
			c := ((i+1)%sections)*segments + (j+1)%segments
			d := i*segments + (j+1)%segments
			m.Triangles = append(m.Triangles, [3]int{a, b, d}, [3]int{b, c, d})
		}
	}
	return m
}

// Ellipsoid returns an ellipsoid with diameters (dx, dy, dz) resting on
// z=0. It is a subdivided icosahedron scaled per axis, the simple stone
// approximation used when a faceted cut is not wanted.
func Ellipsoid(dx, dy, dz float64, subdivisions int) mesh.Mesh {
	m := icosphere(subdivisions)
	m = m.Scale(r3.Vec{X: dx / 2, Y: dy / 2, Z: dz / 2})
	// Icosphere vertices rarely land on the poles exactly; rest the
	// shape on its true lowest point.
	return m.Translate(r3.Vec{Z: -m.Bounds().Min.Z})
}

// icosphere returns a unit sphere built by subdividing an icosahedron.
func icosphere(subdivisions int) mesh.Mesh {
	t := (1 + math.Sqrt(5)) / 2
	verts := []r3.Vec{
		{X: -1, Y: t}, {X: 1, Y: t}, {X: -1, Y: -t}, {X: 1, Y: -t},
		{Y: -1, Z: t}, {Y: 1, Z: t}, {Y: -1, Z: -t}, {Y: 1, Z: -t},
		{X: t, Z: -1}, {X: t, Z: 1}, {X: -t, Z: -1}, {X: -t, Z: 1},
	}
	for i := range verts {
		verts[i] = r3.Unit(verts[i])
	}
	tris := [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
	for s := 0; s < subdivisions; s++ {
		midpoint := make(map[[2]int]int)
		mid := func(a, b int) int {
			key := [2]int{a, b}
			if a > b {
				key = [2]int{b, a}
			}
			if idx, ok := midpoint[key]; ok {
				return idx
			}
			v := r3.Unit(r3.Scale(0.5, r3.Add(verts[a], verts[b])))
			idx := len(verts)
			verts = append(verts, v)
			midpoint[key] = idx
			return idx
		}
		next := make([][3]int, 0, 4*len(tris))
		for _, tr := range tris {
			ab := mid(tr[0], tr[1])
			bc := mid(tr[1], tr[2])
			ca := mid(tr[2], tr[0])
			next = append(next,
				[3]int{tr[0], ab, ca},
				[3]int{tr[1], bc, ab},
				[3]int{tr[2], ca, bc},
				[3]int{ab, bc, ca},
			)
		}
		tris = next
	}
	return mesh.Mesh{Vertices: verts, Triangles: tris}
}
