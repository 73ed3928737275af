package form3

import (
	"errors"
	"math"
	"testing"

	"github.com/forma-cad/gemset/csg"
	"github.com/forma-cad/gemset/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// rejectEngine fails every boolean operation.
type rejectEngine struct{}

func (rejectEngine) Union(parts ...mesh.Mesh) (mesh.Mesh, error) {
	return mesh.Mesh{}, errors.New("union rejected")
}

func (rejectEngine) Difference(a, b mesh.Mesh) (mesh.Mesh, error) {
	return mesh.Mesh{}, errors.New("difference rejected")
}

func TestManualAnnulusWatertight(t *testing.T) {
	m := manualAnnulus(5, 3, 2, 64)
	if !m.IsWatertight() {
		t.Fatal("annulus not watertight")
	}
	// Tessellated circles undershoot the true area slightly.
	want := math.Pi * (25 - 9) * 2
	if v := m.SignedVolume(); math.Abs(v-want)/want > 0.01 {
		t.Errorf("volume = %g, want within 1%% of %g", v, want)
	}
}

func TestFlatBandFallsBackWithoutEngine(t *testing.T) {
	m := RingBand(RingBandOpts{
		OuterRadius: 8.5,
		InnerRadius: 5,
		Height:      2,
		Penetration: 0.2,
		Profile:     BandFlat,
	})
	if !m.IsWatertight() {
		t.Fatal("fallback band not watertight")
	}
	b := m.Bounds()
	if math.Abs(b.Max.Z+0.2) > 1e-9 {
		t.Errorf("band top at z=%g, want -0.2", b.Max.Z)
	}
	if math.Abs(b.Min.Z+2.2) > 1e-9 {
		t.Errorf("band bottom at z=%g, want -2.2", b.Min.Z)
	}
}

func TestFlatBandDegenerateBore(t *testing.T) {
	// A zero inner radius means there is no bore to carve; the band
	// degenerates to a solid cylinder whether or not an engine is set.
	for name, engine := range map[string]csg.Engine{"nil": nil, "failing": rejectEngine{}} {
		t.Run(name, func(t *testing.T) {
			m := RingBand(RingBandOpts{
				OuterRadius: 5,
				InnerRadius: 0,
				Height:      2,
				Profile:     BandFlat,
				Engine:      engine,
			})
			if m.IsEmpty() {
				t.Fatal("degenerate-bore band is empty")
			}
			if !m.IsWatertight() {
				t.Fatal("degenerate-bore band not watertight")
			}
			if got, want := m.VertexCount(), 2*64+2; got != want {
				t.Errorf("VertexCount = %d, want solid cylinder's %d", got, want)
			}
			b := m.Bounds()
			if math.Abs(b.Max.Z) > 1e-9 || math.Abs(b.Min.Z+2) > 1e-9 {
				t.Errorf("band spans z [%g, %g], want [-2, 0]", b.Min.Z, b.Max.Z)
			}
		})
	}
}

func TestRoundedBandTubeWidening(t *testing.T) {
	m := RingBand(RingBandOpts{
		OuterRadius: 8.5,
		InnerRadius: 5,
		Height:      2,
		Penetration: 0.2,
		Profile:     BandRounded,
		TubeRadius:  0.1, // thinner than the radial gap; must be widened
	})
	if !m.IsWatertight() {
		t.Fatal("rounded band not watertight")
	}
	b := m.Bounds()
	// Tube is widened to the radial gap 1.75, so the band spans it.
	if b.Max.X < 8.5-1e-9 {
		t.Errorf("band outer extent %g, want %g", b.Max.X, 8.5)
	}
	if b.Max.Z > -0.2+1e-9 {
		t.Errorf("band top at z=%g, want at or below -0.2", b.Max.Z)
	}
}

func TestGalleryRailDegenerateBore(t *testing.T) {
	m := GalleryRail(GalleryRailOpts{Radius: 1, Thickness: 3, Height: 1, Sections: 32})
	if !m.IsWatertight() {
		t.Fatal("degenerate rail not watertight")
	}
	// Collapsed bore falls back to a solid disc.
	if got, want := m.VertexCount(), 2*32+2; got != want {
		t.Errorf("VertexCount = %d, want solid cylinder's %d", got, want)
	}
}

func TestGalleryRailFallbackWatertight(t *testing.T) {
	m := GalleryRail(GalleryRailOpts{Radius: 4, Thickness: 1, Height: 0.8, Sections: 64})
	if !m.IsWatertight() {
		t.Fatal("rail not watertight")
	}
	b := m.Bounds()
	if math.Abs(b.Max.X-4.5) > 1e-9 {
		t.Errorf("rail outer radius = %g, want 4.5", b.Max.X)
	}
	if math.Abs(b.Max.Z) > 1e-9 {
		t.Errorf("rail top at z=%g, want 0", b.Max.Z)
	}
}

func TestIndividualBases(t *testing.T) {
	anchors := []r3.Vec{{X: 3}, {Y: 3}, {X: -3}, {Y: -3}}
	m := IndividualBases(anchors, 0.5, 0.8, 16)
	if got := m.ConnectedComponents(); got != 4 {
		t.Errorf("ConnectedComponents = %d, want 4", got)
	}
	if math.Abs(m.Bounds().Max.Z) > 1e-9 {
		t.Error("pedestal tops not flush with z=0")
	}
}

func TestSharedBasesWrapAround(t *testing.T) {
	anchors := []r3.Vec{{X: 3}, {Y: 3}, {X: -3}, {Y: -3}}
	m := SharedBases(anchors, 1, 0.8)
	// One box per adjacent pair including last-to-first.
	if got, want := m.TriangleCount(), 4*12; got != want {
		t.Errorf("TriangleCount = %d, want %d", got, want)
	}
}
