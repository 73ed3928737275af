package csg

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/forma-cad/gemset/mesh"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

func fromSDFXTriangle(t *sdf.Triangle3) r3.Triangle {
	return r3.Triangle{
		{X: t[0].X, Y: t[0].Y, Z: t[0].Z},
		{X: t[1].X, Y: t[1].Y, Z: t[1].Z},
		{X: t[2].X, Y: t[2].Y, Z: t[2].Z},
	}
}

// meshSDF is a signed distance field backed by a closed triangle mesh.
// The sign of the distance at a query point is decided by the
// angle-weighted pseudo normal of the nearest surface feature, which is
// exact for closed meshes (Baerentzen & Aanaes).
type meshSDF struct {
	msh     mesh.Mesh
	faceN   []r3.Vec           // unit face normals
	vertexN []r3.Vec           // angle-weighted vertex pseudo normals
	edgeN   map[[2]int]r3.Vec  // pi-weighted edge pseudo normals
	tris    []sdfTriangle
	tree    *kdtree.Tree
}

var _ sdf.SDF3 = (*meshSDF)(nil)

// importSDF builds a meshSDF from a mesh. It fails on empty or open
// input since the pseudo normal sign test is only valid for closed
// surfaces; callers treat the failure as a cue to use fallback geometry.
func importSDF(m mesh.Mesh) (*meshSDF, error) {
	if m.IsEmpty() {
		return nil, ErrEmptyResult
	}
	if !m.IsWatertight() {
		return nil, ErrOpenMesh
	}
	s := &meshSDF{
		msh:     m,
		faceN:   make([]r3.Vec, m.TriangleCount()),
		vertexN: make([]r3.Vec, m.VertexCount()),
		edgeN:   make(map[[2]int]r3.Vec),
		tris:    make([]sdfTriangle, m.TriangleCount()),
	}
	for i, t := range m.Triangles {
		tri := m.Triangle(i)
		norm := r3.Unit(r3.Cross(r3.Sub(tri[1], tri[0]), r3.Sub(tri[2], tri[0])))
		if math.IsNaN(norm.X) {
			return nil, ErrOpenMesh // degenerate triangle
		}
		s.faceN[i] = norm
		for j, vi := range t {
			// Weight the vertex normal by the opening angle at the
			// vertex, the edge normal by pi per adjacent face.
			s1 := r3.Sub(m.Vertices[vi], tri[(j+1)%3])
			s2 := r3.Sub(m.Vertices[vi], tri[(j+2)%3])
			alpha := math.Acos(r3.Cos(s1, s2))
			s.vertexN[vi] = r3.Add(s.vertexN[vi], r3.Scale(alpha, norm))

			e := edgeKey(t[j], t[(j+1)%3])
			s.edgeN[e] = r3.Add(s.edgeN[e], r3.Scale(math.Pi, norm))
		}
		s.tris[i] = sdfTriangle{C: centroid(tri), idx: i, owner: s}
	}
	s.tree = kdtree.New(triSet(s.tris), true)
	return s, nil
}

func edgeKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

func centroid(t r3.Triangle) r3.Vec {
	return r3.Scale(1./3., r3.Add(r3.Add(t[0], t[1]), t[2]))
}

// Evaluate implements sdf.SDF3.
func (s *meshSDF) Evaluate(p v3.Vec) float64 {
	q := r3.Vec{X: p.X, Y: p.Y, Z: p.Z}
	got, dist2 := s.tree.Nearest(&sdfTriangle{C: q})
	near := got.(*sdfTriangle)
	tri := s.msh.Triangle(near.idx)
	closest, feat := closestOnTriangle(q, tri)
	var n r3.Vec
	switch {
	case feat <= featV2:
		n = s.vertexN[s.msh.Triangles[near.idx][feat]]
	case feat <= featE2:
		t := s.msh.Triangles[near.idx]
		j := int(feat - featE0)
		n = s.edgeN[edgeKey(t[j], t[(j+1)%3])]
	default:
		n = s.faceN[near.idx]
	}
	return math.Copysign(math.Sqrt(dist2), r3.Dot(n, r3.Sub(q, closest)))
}

// BoundingBox implements sdf.SDF3. The box is padded slightly so the
// marching cubes grid fully encloses the surface.
func (s *meshSDF) BoundingBox() sdf.Box3 {
	bb := s.msh.Bounds()
	size := bb.Size()
	pad := 0.01 * math.Max(size.X, math.Max(size.Y, size.Z))
	return sdf.Box3{
		Min: v3.Vec{X: bb.Min.X - pad, Y: bb.Min.Y - pad, Z: bb.Min.Z - pad},
		Max: v3.Vec{X: bb.Max.X + pad, Y: bb.Max.Y + pad, Z: bb.Max.Z + pad},
	}
}

// sdfTriangle is the kd-tree element: a triangle located by centroid,
// compared by exact point-to-triangle distance. A query point is an
// sdfTriangle with only C set.
type sdfTriangle struct {
	C     r3.Vec
	idx   int
	owner *meshSDF
}

func (t *sdfTriangle) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(*sdfTriangle)
	switch d {
	case 0:
		return t.C.X - q.C.X
	case 1:
		return t.C.Y - q.C.Y
	case 2:
		return t.C.Z - q.C.Z
	}
	panic("unreachable")
}

func (t *sdfTriangle) Dims() int { return 3 }

// Distance returns the squared distance between a query point and the
// closest point on the triangle, as the gonum kd-tree expects.
func (t *sdfTriangle) Distance(c kdtree.Comparable) float64 {
	q := c.(*sdfTriangle)
	point, tri := q, t
	if tri.owner == nil {
		point, tri = tri, point
	}
	if tri.owner == nil { // both are points
		return r3.Norm2(r3.Sub(t.C, q.C))
	}
	closest, _ := closestOnTriangle(point.C, tri.owner.msh.Triangle(tri.idx))
	return r3.Norm2(r3.Sub(point.C, closest))
}

type triSet []sdfTriangle

func (s triSet) Index(i int) kdtree.Comparable { return &s[i] }
func (s triSet) Len() int                      { return len(s) }
func (s triSet) Pivot(d kdtree.Dim) int {
	p := triPlane{dim: int(d), set: s}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}
func (s triSet) Slice(start, end int) kdtree.Interface { return s[start:end] }

type triPlane struct {
	dim int
	set triSet
}

func (p triPlane) Less(i, j int) bool {
	return p.set[i].Compare(&p.set[j], kdtree.Dim(p.dim)) < 0
}
func (p triPlane) Swap(i, j int) { p.set[i], p.set[j] = p.set[j], p.set[i] }
func (p triPlane) Len() int      { return len(p.set) }
func (p triPlane) Slice(start, end int) kdtree.SortSlicer {
	p.set = p.set[start:end]
	return p
}

// feature identifies which part of a triangle is closest to a query.
type feature int

const (
	featV0 feature = iota
	featV1
	featV2
	featE0 // edge v0-v1
	featE1 // edge v1-v2
	featE2 // edge v2-v0
	featFace
)

// closestOnTriangle returns the closest point to p on the triangle and
// the feature it lies on. Standard barycentric region walk.
func closestOnTriangle(p r3.Vec, t r3.Triangle) (r3.Vec, feature) {
	a, b, c := t[0], t[1], t[2]
	ab := r3.Sub(b, a)
	ac := r3.Sub(c, a)
	ap := r3.Sub(p, a)
	d1 := r3.Dot(ab, ap)
	d2 := r3.Dot(ac, ap)
	if d1 <= 0 && d2 <= 0 {
		return a, featV0
	}
	bp := r3.Sub(p, b)
	d3 := r3.Dot(ab, bp)
	d4 := r3.Dot(ac, bp)
	if d3 >= 0 && d4 <= d3 {
		return b, featV1
	}
	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return r3.Add(a, r3.Scale(v, ab)), featE0
	}
	cp := r3.Sub(p, c)
	d5 := r3.Dot(ab, cp)
	d6 := r3.Dot(ac, cp)
	if d6 >= 0 && d5 <= d6 {
		return c, featV2
	}
	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return r3.Add(a, r3.Scale(w, ac)), featE2
	}
	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return r3.Add(b, r3.Scale(w, r3.Sub(c, b))), featE1
	}
	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return r3.Add(a, r3.Add(r3.Scale(v, ab), r3.Scale(w, ac))), featFace
}
