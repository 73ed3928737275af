package mesh

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// RemoveDuplicateFaces returns a copy of the mesh with repeated triangles
// removed. Two triangles are duplicates when they reference the same three
// vertices, regardless of starting corner or winding.
func (m Mesh) RemoveDuplicateFaces() Mesh {
	seen := make(map[[3]int]struct{}, len(m.Triangles))
	out := Mesh{Vertices: append([]r3.Vec(nil), m.Vertices...)}
	for _, t := range m.Triangles {
		key := sortedTri(t)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out.Triangles = append(out.Triangles, t)
	}
	return out
}

func sortedTri(t [3]int) [3]int {
	a, b, c := t[0], t[1], t[2]
	if a > b {
		a, b = b, a
	}
	if b > c {
		b, c = c, b
	}
	if a > b {
		a, b = b, a
	}
	return [3]int{a, b, c}
}

// RemoveUnreferencedVertices returns a copy of the mesh containing only
// vertices referenced by at least one triangle, with indices remapped.
func (m Mesh) RemoveUnreferencedVertices() Mesh {
	remap := make([]int, len(m.Vertices))
	for i := range remap {
		remap[i] = -1
	}
	var out Mesh
	for _, t := range m.Triangles {
		var nt [3]int
		for j, idx := range t {
			if remap[idx] < 0 {
				remap[idx] = len(out.Vertices)
				out.Vertices = append(out.Vertices, m.Vertices[idx])
			}
			nt[j] = remap[idx]
		}
		out.Triangles = append(out.Triangles, nt)
	}
	return out
}

// MergeVertices welds vertices closer than tol and drops triangles that
// collapse in the process.
func (m Mesh) MergeVertices(tol float64) Mesh {
	if tol <= 0 {
		tol = 1e-8
	}
	ri := 1 / tol
	cache := make(map[[3]int64]int)
	remap := make([]int, len(m.Vertices))
	var out Mesh
	for i, v := range m.Vertices {
		s := r3.Scale(ri, v)
		key := [3]int64{int64(s.X), int64(s.Y), int64(s.Z)}
		vi, ok := cache[key]
		if !ok {
			vi = len(out.Vertices)
			cache[key] = vi
			out.Vertices = append(out.Vertices, v)
		}
		remap[i] = vi
	}
	for _, t := range m.Triangles {
		nt := [3]int{remap[t[0]], remap[t[1]], remap[t[2]]}
		if nt[0] == nt[1] || nt[1] == nt[2] || nt[2] == nt[0] {
			continue
		}
		out.Triangles = append(out.Triangles, nt)
	}
	return out
}

// FillHoles closes boundary loops with triangle fans about each loop's
// centroid. It is best effort: loops that cannot be chained are left open.
func (m Mesh) FillHoles() Mesh {
	boundary := m.BoundaryEdges()
	if len(boundary) == 0 {
		return m.Clone()
	}
	// next vertex along the boundary, keyed by loop start vertex.
	next := make(map[int]int, len(boundary))
	for _, e := range boundary {
		next[e[0]] = e[1]
	}
	out := m.Clone()
	visited := make(map[int]bool, len(boundary))
	for _, e := range boundary {
		if visited[e[0]] {
			continue
		}
		loop := []int{e[0]}
		visited[e[0]] = true
		closed := false
		for v := next[e[0]]; ; {
			if v == e[0] {
				closed = true
				break
			}
			if visited[v] {
				break // tangled boundary, give up on this loop
			}
			visited[v] = true
			loop = append(loop, v)
			nv, ok := next[v]
			if !ok {
				break // open chain, cannot close
			}
			v = nv
		}
		if !closed || len(loop) < 3 {
			continue
		}
		centroid := r3.Vec{}
		for _, vi := range loop {
			centroid = r3.Add(centroid, out.Vertices[vi])
		}
		centroid = r3.Scale(1/float64(len(loop)), centroid)
		ci := len(out.Vertices)
		out.Vertices = append(out.Vertices, centroid)
		// Fan wound against the boundary direction so the new triangles
		// oppose the existing edges.
		for i, vi := range loop {
			vj := loop[(i+1)%len(loop)]
			out.Triangles = append(out.Triangles, [3]int{ci, vj, vi})
		}
	}
	return out
}

// FixNormals rewinds triangles so adjacent faces agree in orientation and
// the overall winding faces outward. Orientation is propagated per
// connected component; the outward check uses the signed volume.
func (m Mesh) FixNormals() Mesh {
	out := m.Clone()
	// triangles adjacent to each undirected edge.
	adj := make(map[edge][]int)
	for i, t := range out.Triangles {
		for j := 0; j < 3; j++ {
			e := undirected(t[j], t[(j+1)%3])
			adj[e] = append(adj[e], i)
		}
	}
	sameDirection := func(a, b [3]int, e edge) bool {
		dir := func(t [3]int) bool {
			for j := 0; j < 3; j++ {
				if t[j] == e[0] && t[(j+1)%3] == e[1] {
					return true
				}
			}
			return false
		}
		return dir(a) == dir(b)
	}
	oriented := make([]bool, len(out.Triangles))
	for seed := range out.Triangles {
		if oriented[seed] {
			continue
		}
		oriented[seed] = true
		queue := []int{seed}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			t := out.Triangles[cur]
			for j := 0; j < 3; j++ {
				e := undirected(t[j], t[(j+1)%3])
				for _, nb := range adj[e] {
					if nb == cur || oriented[nb] {
						continue
					}
					if sameDirection(t, out.Triangles[nb], e) {
						nt := out.Triangles[nb]
						nt[1], nt[2] = nt[2], nt[1]
						out.Triangles[nb] = nt
					}
					oriented[nb] = true
					queue = append(queue, nb)
				}
			}
		}
	}
	if out.SignedVolume() < 0 {
		for i, t := range out.Triangles {
			t[1], t[2] = t[2], t[1]
			out.Triangles[i] = t
		}
	}
	return out
}

// Repair runs the standard cleanup chain over a freshly concatenated mesh
// and reports whether the result came out watertight. The chain mirrors
// what a production export needs: weld, dedupe, prune, close holes, fix
// windings. A non-watertight result is usable, just not guaranteed
// manifold.
func (m Mesh) Repair(tol float64) (Mesh, bool) {
	out := m.MergeVertices(tol).
		RemoveDuplicateFaces().
		RemoveUnreferencedVertices().
		FillHoles().
		FixNormals()
	return out, out.IsWatertight()
}
