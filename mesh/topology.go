package mesh

import (
	"gonum.org/v1/gonum/spatial/r3"
)

type edge [2]int

func undirected(a, b int) edge {
	if a > b {
		a, b = b, a
	}
	return edge{a, b}
}

// edgeUse counts how often each undirected edge is referenced and how the
// directions balance out. For a closed orientable surface every edge is
// used exactly twice, once in each direction.
type edgeUse struct {
	count   int
	forward int // times seen as (a,b) with a < b
}

func (m Mesh) edgeUses() map[edge]*edgeUse {
	uses := make(map[edge]*edgeUse, 3*len(m.Triangles)/2)
	for _, t := range m.Triangles {
		for j := 0; j < 3; j++ {
			a, b := t[j], t[(j+1)%3]
			e := undirected(a, b)
			u := uses[e]
			if u == nil {
				u = &edgeUse{}
				uses[e] = u
			}
			u.count++
			if a < b {
				u.forward++
			}
		}
	}
	return uses
}

// IsWatertight reports whether every edge of the mesh is shared by exactly
// two triangles with opposite winding.
func (m Mesh) IsWatertight() bool {
	if len(m.Triangles) == 0 {
		return false
	}
	for _, u := range m.edgeUses() {
		if u.count != 2 || u.forward != 1 {
			return false
		}
	}
	return true
}

// BoundaryEdges returns the directed edges that have no opposing twin.
// A watertight mesh returns an empty slice.
func (m Mesh) BoundaryEdges() [][2]int {
	directed := make(map[[2]int]int)
	for _, t := range m.Triangles {
		for j := 0; j < 3; j++ {
			directed[[2]int{t[j], t[(j+1)%3]}]++
		}
	}
	var boundary [][2]int
	for e, n := range directed {
		if n == 1 && directed[[2]int{e[1], e[0]}] == 0 {
			boundary = append(boundary, e)
		}
	}
	return boundary
}

// ConnectedComponents returns the number of edge-connected triangle groups.
func (m Mesh) ConnectedComponents() int {
	if len(m.Triangles) == 0 {
		return 0
	}
	parent := make([]int, len(m.Vertices))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}
	referenced := make([]bool, len(m.Vertices))
	for _, t := range m.Triangles {
		union(t[0], t[1])
		union(t[1], t[2])
		referenced[t[0]], referenced[t[1]], referenced[t[2]] = true, true, true
	}
	roots := make(map[int]struct{})
	for i, ok := range referenced {
		if ok {
			roots[find(i)] = struct{}{}
		}
	}
	return len(roots)
}

// Normal returns the unit normal of the ith triangle.
func (m Mesh) Normal(i int) r3.Vec {
	t := m.Triangle(i)
	return r3.Unit(r3.Cross(r3.Sub(t[1], t[0]), r3.Sub(t[2], t[0])))
}

// SignedVolume returns the signed volume enclosed by the mesh, positive
// when triangle windings face outward. Meaningful only for closed meshes.
func (m Mesh) SignedVolume() float64 {
	var vol float64
	for _, t := range m.Triangles {
		a, b, c := m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]
		vol += r3.Dot(a, r3.Cross(b, c)) / 6
	}
	return vol
}
