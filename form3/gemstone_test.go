package form3

import (
	"math"
	"testing"
)

func TestBrilliantCutProportions(t *testing.T) {
	const radius, depth = 3.25, 4.0
	m := BrilliantCut(radius, depth, 8)
	if !m.IsWatertight() {
		t.Fatal("brilliant cut not watertight")
	}
	if m.ConnectedComponents() != 1 {
		t.Fatal("brilliant cut not a single component")
	}
	b := m.Bounds()
	if got := b.Max.Z; math.Abs(got-CrownRatio*depth) > 1e-9 {
		t.Errorf("crown top at z=%g, want %g", got, CrownRatio*depth)
	}
	if got := b.Min.Z; math.Abs(got+PavilionRatio*depth) > 1e-9 {
		t.Errorf("culet at z=%g, want %g", got, -PavilionRatio*depth)
	}
	if got := b.Max.X; math.Abs(got-radius) > 1e-9 {
		t.Errorf("girdle radius = %g, want %g", got, radius)
	}
}

func TestPrincessCut(t *testing.T) {
	m := PrincessCut(6, 4.2)
	if !m.IsWatertight() {
		t.Fatal("princess cut not watertight")
	}
	b := m.Bounds()
	if math.Abs(b.Max.X-3) > 1e-9 || math.Abs(b.Max.Y-3) > 1e-9 {
		t.Errorf("girdle half-extents = %g,%g, want 3,3", b.Max.X, b.Max.Y)
	}
}

func TestRadiantCut(t *testing.T) {
	m := RadiantCut(7, 5, 4)
	if !m.IsWatertight() {
		t.Fatal("radiant cut not watertight")
	}
	if m.ConnectedComponents() != 1 {
		t.Fatal("radiant cut not a single component")
	}
	b := m.Bounds()
	if b.Max.X > 3.5+1e-9 || b.Max.Y > 2.5+1e-9 {
		t.Errorf("girdle exceeds requested extents: %v", b.Max)
	}
}

func TestRoundStoneUnequalGirdle(t *testing.T) {
	// A round stone with unequal girdle extents is elliptical; the stone
	// must span both extents rather than being clipped to the smaller.
	m, ok := Gemstone(StoneRound, 8, 6, 4)
	if !ok {
		t.Fatal("unequal round stone rejected")
	}
	if !m.IsWatertight() {
		t.Fatal("unequal round stone not watertight")
	}
	b := m.Bounds()
	if math.Abs(b.Max.X-4) > 1e-9 || math.Abs(b.Max.Y-3) > 1e-9 {
		t.Errorf("girdle half-extents = %g,%g, want 4,3", b.Max.X, b.Max.Y)
	}
	if math.Abs(b.Min.Z+2) > 1e-9 {
		t.Errorf("pavilion bottom at z=%g, want -2", b.Min.Z)
	}
}

func TestGemstoneDispatch(t *testing.T) {
	for _, shape := range []StoneShape{StoneRound, StonePrincess, StoneRadiant, StoneOval} {
		m, ok := Gemstone(shape, 6, 6, 4)
		if !ok {
			t.Fatalf("shape %d rejected", shape)
		}
		if m.IsEmpty() {
			t.Fatalf("shape %d empty", shape)
		}
	}
	if _, ok := Gemstone(StoneShape(99), 6, 6, 4); ok {
		t.Error("unknown shape accepted")
	}
}

func TestGemstonesVolumePositive(t *testing.T) {
	stones := map[string]func() float64{
		"brilliant": func() float64 { return BrilliantCut(3, 4, 8).SignedVolume() },
		"princess":  func() float64 { return PrincessCut(6, 4).SignedVolume() },
		"radiant":   func() float64 { return RadiantCut(6, 5, 4).SignedVolume() },
	}
	for name, vol := range stones {
		if v := vol(); v <= 0 {
			t.Errorf("%s: SignedVolume = %g, want positive", name, v)
		}
	}
}
