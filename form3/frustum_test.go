package form3

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestFrustumCounts(t *testing.T) {
	for _, sections := range []int{8, 16, 36, 48} {
		f := Frustum(2, 1, 5, sections)
		if got, want := f.VertexCount(), 2*sections+2; got != want {
			t.Errorf("sections=%d: VertexCount = %d, want %d", sections, got, want)
		}
		if got, want := f.TriangleCount(), 4*sections; got != want {
			t.Errorf("sections=%d: TriangleCount = %d, want %d", sections, got, want)
		}
		if f.ConnectedComponents() != 1 {
			t.Errorf("sections=%d: not a single component", sections)
		}
		if !f.IsWatertight() {
			t.Errorf("sections=%d: not watertight", sections)
		}
	}
}

func TestFrustumDegenerateRadii(t *testing.T) {
	cyl := Frustum(1, 1, 2, 16)
	if !cyl.IsWatertight() {
		t.Error("cylinder not watertight")
	}
	cone := Frustum(1, 0, 2, 16)
	if cone.IsEmpty() {
		t.Error("cone empty")
	}
}

func TestFrustumOrientation(t *testing.T) {
	f := Frustum(1, 1, 2, 32)
	if v := f.SignedVolume(); v <= 0 {
		t.Fatalf("SignedVolume = %g, want positive (outward normals)", v)
	}
	want := math.Pi * 2 // r²·h·π
	if v := f.SignedVolume(); math.Abs(v-want)/want > 0.05 {
		t.Errorf("volume = %g, want within 5%% of %g", v, want)
	}
}

func TestBoxWatertight(t *testing.T) {
	b := Box(r3.Vec{X: 2, Y: 3, Z: 4})
	if b.VertexCount() != 8 || b.TriangleCount() != 12 {
		t.Fatalf("got %d verts %d tris", b.VertexCount(), b.TriangleCount())
	}
	if !b.IsWatertight() {
		t.Error("box not watertight")
	}
	if v := b.SignedVolume(); math.Abs(v-24) > 1e-9 {
		t.Errorf("volume = %g, want 24", v)
	}
	if b.Bounds().Min.Z != 0 {
		t.Error("box bottom not at z=0")
	}
}

func TestTorusWatertight(t *testing.T) {
	tor := Torus(5, 1, 48, 24)
	if !tor.IsWatertight() {
		t.Error("torus not watertight")
	}
	if v := tor.SignedVolume(); v <= 0 {
		t.Errorf("SignedVolume = %g, want positive", v)
	}
}

func TestEllipsoidRestsOnPlane(t *testing.T) {
	e := Ellipsoid(4, 3, 2, 2)
	if !e.IsWatertight() {
		t.Error("ellipsoid not watertight")
	}
	b := e.Bounds()
	if math.Abs(b.Min.Z) > 1e-9 {
		t.Errorf("bottom at z=%g, want 0", b.Min.Z)
	}
	// Poles are approximated by facets, so the top can fall slightly
	// short of the full depth.
	if b.Max.Z > 2+1e-9 || b.Max.Z < 1.8 {
		t.Errorf("top at z=%g, want close to 2", b.Max.Z)
	}
}
