package form3

import (
	"math"

	"github.com/forma-cad/gemset/csg"
	"github.com/forma-cad/gemset/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// BandProfile selects the cross-section of a ring band.
type BandProfile int

const (
	// BandFlat is an annular band with rectangular cross-section.
	BandFlat BandProfile = iota
	// BandRounded is a torus-like band.
	BandRounded
)

// RingBandOpts parametrizes RingBand.
type RingBandOpts struct {
	OuterRadius float64
	InnerRadius float64 // finger bore radius
	Height      float64
	// Penetration sinks the band top below z=0 so parts placed at z=0
	// overlap it instead of leaving a seam.
	Penetration float64
	Profile     BandProfile
	// TubeRadius overrides the derived tube radius of a rounded band.
	// It is still widened to span the radial gap.
	TubeRadius float64
	Sections   int
	Segments   int // tube tessellation of a rounded band
	// Engine carves the bore of a flat band. May be nil; carving then
	// always uses the manual annulus.
	Engine csg.Engine
}

func (o *RingBandOpts) defaults() {
	if o.Sections <= 0 {
		o.Sections = 64
	}
	if o.Segments <= 0 {
		o.Segments = 32
	}
}

// RingBand builds a ring band with an inner bore. The flat profile
// attempts a boolean carve and falls back to an equivalent manually
// tessellated annulus when the engine fails; both paths share the same
// z-penetration convention so the output composes identically.
func RingBand(o RingBandOpts) mesh.Mesh {
	o.defaults()
	if o.Profile == BandRounded {
		return roundedBand(o)
	}
	return flatBand(o)
}

func roundedBand(o RingBandOpts) mesh.Mesh {
	major := (o.OuterRadius + o.InnerRadius) / 2
	radialGap := (o.OuterRadius - o.InnerRadius) / 2
	// The tube must span the radial gap or the band shows gaps against
	// the bore wall at some angles.
	tube := math.Max(math.Max(o.TubeRadius, radialGap), math.Max(o.Height/2, 0.1))
	m := Torus(major, tube, o.Sections, o.Segments)
	return m.Translate(r3.Vec{Z: -(tube + o.Penetration)})
}

func flatBand(o RingBandOpts) mesh.Mesh {
	carved, err := carveAnnulus(o.Engine, o.OuterRadius, o.InnerRadius, o.Height, o.Sections)
	if err != nil {
		carved = manualAnnulus(o.OuterRadius, o.InnerRadius, o.Height, o.Sections)
	}
	return carved.Translate(r3.Vec{Z: -(o.Height + o.Penetration)})
}

// carveAnnulus subtracts an inner bore cylinder from an outer cylinder.
// The bore is made taller than the band so the subtraction cuts clean
// through both caps.
func carveAnnulus(engine csg.Engine, outer, inner, height float64, sections int) (mesh.Mesh, error) {
	if inner <= 0 {
		// Nothing to carve; the bore is degenerate.
		return Cylinder(outer, height, sections), nil
	}
	if engine == nil {
		return mesh.Mesh{}, csg.ErrEmptyResult
	}
	outerCyl := Cylinder(outer, height, sections)
	bore := Cylinder(inner, height*2, sections).Translate(r3.Vec{Z: -height / 2})
	carved, err := engine.Difference(outerCyl, bore)
	if err != nil {
		return mesh.Mesh{}, err
	}
	if carved.IsEmpty() {
		return mesh.Mesh{}, csg.ErrEmptyResult
	}
	return carved, nil
}

// manualAnnulus tessellates a watertight annular band directly from
// angle samples: outer wall, inner wall and two flat ring faces. It is
// the deterministic fallback when boolean carving fails and must stay
// geometrically equivalent to the carved result.
func manualAnnulus(outer, inner, height float64, sections int) mesh.Mesh {
	if sections < 3 {
		sections = 3
	}
	n := sections
	var m mesh.Mesh
	ring := func(r, z float64) int {
		start := len(m.Vertices)
		for i := 0; i < n; i++ {
			theta := float64(i) / float64(n) * tau
			m.Vertices = append(m.Vertices, r3.Vec{X: r * math.Cos(theta), Y: r * math.Sin(theta), Z: z})
		}
		return start
	}
	ob := ring(outer, 0)
	ot := ring(outer, height)
	ib := ring(inner, 0)
	it := ring(inner, height)

	for i := 0; i < n; i++ {
		i2 := (i + 1) % n
		// outer wall
		m.Triangles = append(m.Triangles,
			[3]int{ob + i, ob + i2, ot + i},
			[3]int{ob + i2, ot + i2, ot + i})
		// inner wall, wound toward the axis
		m.Triangles = append(m.Triangles,
			[3]int{ib + i, it + i, ib + i2},
			[3]int{ib + i2, it + i, it + i2})
		// top ring face
		m.Triangles = append(m.Triangles,
			[3]int{ot + i, ot + i2, it + i2},
			[3]int{ot + i, it + i2, it + i})
		// bottom ring face
		m.Triangles = append(m.Triangles,
			[3]int{ob + i, ib + i2, ob + i2},
			[3]int{ob + i, ib + i, ib + i2})
	}
	return m
}
