package mesh

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestRemoveDuplicateFaces(t *testing.T) {
	m := tetra()
	m.Triangles = append(m.Triangles, [3]int{2, 1, 0}) // same face, rotated winding
	m = m.RemoveDuplicateFaces()
	if got := m.TriangleCount(); got != 4 {
		t.Errorf("TriangleCount = %d, want 4", got)
	}
}

func TestRemoveUnreferencedVertices(t *testing.T) {
	m := tetra()
	m.Vertices = append(m.Vertices, r3.Vec{X: 9, Y: 9, Z: 9})
	m = m.RemoveUnreferencedVertices()
	if got := m.VertexCount(); got != 4 {
		t.Errorf("VertexCount = %d, want 4", got)
	}
	if !m.IsWatertight() {
		t.Error("reindexing broke the surface")
	}
}

func TestMergeVertices(t *testing.T) {
	m := tetra()
	// Split vertex 3 into a near-duplicate used by one face.
	m.Vertices = append(m.Vertices, r3.Vec{Z: 1 + 1e-8})
	m.Triangles[3] = [3]int{1, 2, 4}
	if m.IsWatertight() {
		t.Fatal("split mesh should be open")
	}
	m = m.MergeVertices(1e-6)
	if !m.IsWatertight() {
		t.Error("merge did not close the surface")
	}
}

func TestFillHolesClosesMissingFace(t *testing.T) {
	m := tetra()
	m.Triangles = m.Triangles[:3]
	m = m.FillHoles()
	if !m.IsWatertight() {
		t.Error("hole not filled")
	}
}

func TestFixNormalsRepairsFlippedFace(t *testing.T) {
	m := tetra()
	f := m.Triangles[3]
	m.Triangles[3] = [3]int{f[0], f[2], f[1]}
	if m.IsWatertight() {
		t.Fatal("flipped face should break edge orientation")
	}
	m = m.FixNormals()
	if !m.IsWatertight() {
		t.Error("orientation not repaired")
	}
	if m.SignedVolume() <= 0 {
		t.Error("repaired mesh is inside out")
	}
}

func TestRepairChain(t *testing.T) {
	m := tetra()
	m.Triangles = append(m.Triangles, m.Triangles[0])
	m.Vertices = append(m.Vertices, r3.Vec{X: 7})
	repaired, watertight := m.Repair(1e-6)
	if !watertight {
		t.Error("repair did not report watertight")
	}
	if repaired.TriangleCount() != 4 || repaired.VertexCount() != 4 {
		t.Errorf("got %d tris %d verts, want 4 and 4",
			repaired.TriangleCount(), repaired.VertexCount())
	}
}
