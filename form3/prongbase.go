package form3

import (
	"math"

	"github.com/forma-cad/gemset/csg"
	"github.com/forma-cad/gemset/internal/d3"
	"github.com/forma-cad/gemset/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// BaseStyle selects how prong bases are joined at the rim.
type BaseStyle int

const (
	// BasesIndividual gives every prong its own pedestal.
	BasesIndividual BaseStyle = iota
	// BasesShared bridges consecutive prongs with bars.
	BasesShared
	// BasesGallery runs a single rail under all prongs.
	BasesGallery
)

// ProngBase builds the base structure for a set of prong anchor points.
// The gallery rail radius is the mean anchor distance from the axis.
func ProngBase(style BaseStyle, anchors []r3.Vec, baseWidth, baseHeight float64, sections int, engine csg.Engine) mesh.Mesh {
	switch style {
	case BasesShared:
		return SharedBases(anchors, baseWidth, baseHeight)
	case BasesGallery:
		return GalleryRail(GalleryRailOpts{
			Radius:    meanRadius(anchors),
			Thickness: baseWidth,
			Height:    baseHeight,
			Sections:  sections,
			Engine:    engine,
		})
	default:
		return IndividualBases(anchors, baseWidth/2, baseHeight, sections)
	}
}

func meanRadius(anchors []r3.Vec) float64 {
	if len(anchors) == 0 {
		return 0
	}
	var sum float64
	for _, a := range anchors {
		sum += math.Hypot(a.X, a.Y)
	}
	return sum / float64(len(anchors))
}

// IndividualBases places one cylindrical pedestal under each anchor
// point. Pedestal tops sit flush with z=0 regardless of the anchor's
// own z so the prong root always meets its base.
func IndividualBases(anchors []r3.Vec, radius, height float64, sections int) mesh.Mesh {
	parts := make([]mesh.Mesh, 0, len(anchors))
	for _, a := range anchors {
		c := Cylinder(radius, height, sections)
		parts = append(parts, c.Translate(r3.Vec{X: a.X, Y: a.Y, Z: -height}))
	}
	return mesh.Concat(parts...)
}

// SharedBases connects consecutive anchors with rectangular bars,
// including the wrap-around pair, forming a closed base frame. Each
// bar is oversized along the chord by its own width so adjacent bars
// overlap at the anchors.
func SharedBases(anchors []r3.Vec, width, height float64) mesh.Mesh {
	if len(anchors) < 2 {
		return mesh.Mesh{}
	}
	parts := make([]mesh.Mesh, 0, len(anchors))
	for i := range anchors {
		a := anchors[i]
		b := anchors[(i+1)%len(anchors)]
		chord := math.Hypot(b.X-a.X, b.Y-a.Y)
		if chord == 0 {
			continue
		}
		bar := Box(r3.Vec{X: chord + width, Y: width, Z: height})
		// Box rests on z=0 with its center on the axis origin; shift
		// its top to z=0, spin it onto the chord bearing and park it
		// at the chord midpoint.
		bar = bar.Translate(r3.Vec{Z: -height})
		bar = bar.Rotate(d3.RotateZ(math.Atan2(b.Y-a.Y, b.X-a.X)))
		bar = bar.Translate(r3.Vec{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2})
		parts = append(parts, bar)
	}
	return mesh.Concat(parts...)
}

// GalleryRailOpts parametrizes GalleryRail.
type GalleryRailOpts struct {
	Radius    float64 // centerline radius of the rail
	Thickness float64 // radial thickness
	Height    float64
	Sections  int
	Engine    csg.Engine // may be nil
}

// GalleryRail builds a horizontal ring rail centered on the z axis with
// its top at z=0. A thickness that swallows the centerline collapses
// the bore, in which case the rail degenerates to a solid disc.
func GalleryRail(o GalleryRailOpts) mesh.Mesh {
	if o.Sections <= 0 {
		o.Sections = 64
	}
	outer := o.Radius + o.Thickness/2
	inner := o.Radius - o.Thickness/2
	if inner <= 0 {
		return Cylinder(outer, o.Height, o.Sections).Translate(r3.Vec{Z: -o.Height})
	}
	rail, err := carveAnnulus(o.Engine, outer, inner, o.Height, o.Sections)
	if err != nil {
		rail = manualAnnulus(outer, inner, o.Height, o.Sections)
	}
	return rail.Translate(r3.Vec{Z: -o.Height})
}
