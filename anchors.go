package gemset

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// rimEpsilon pulls prong roots just inside the band rim so they sit
	// flush instead of floating on the edge.
	rimEpsilon = 0.1
	// stoneClearance keeps prong tips off the stone surface.
	stoneClearance = 0.05
	// minSafeHeight is the margin kept between the pavilion tip and the
	// band when checking vertical clearance.
	minSafeHeight = 1.5
)

// ProngAnchor is the placement of one prong: root on the base
// structure, tip at the stone girdle, and the bearing angle both share.
type ProngAnchor struct {
	Start r3.Vec
	End   r3.Vec
	Angle float64
}

// Direction returns the unit vector from root to tip.
func (a ProngAnchor) Direction() r3.Vec { return r3.Unit(r3.Sub(a.End, a.Start)) }

// Length returns the root-to-tip distance.
func (a ProngAnchor) Length() float64 { return r3.Norm(r3.Sub(a.End, a.Start)) }

// ProngAnchors computes one anchor per prong at even bearings i·2π/n.
// Tips land on the stone girdle outline at z=SettingHeight; roots land
// on the band rim when a ring base is present, otherwise just outside
// the girdle at z=0. Square stones are rotated by π/n in the assembled
// scene so their corners face the prongs, and tip radii account for
// that rotation.
func ProngAnchors(p DesignParameters) []ProngAnchor {
	n := p.ProngCount
	anchors := make([]ProngAnchor, 0, n)
	for i := 0; i < n; i++ {
		theta := float64(i) * 2 * math.Pi / float64(n)
		sin, cos := math.Sincos(theta)

		tipR := p.girdleRadius(theta) + stoneClearance
		end := r3.Vec{X: tipR * cos, Y: tipR * sin, Z: p.SettingHeight}

		rootR := tipR
		if p.BaseType == BaseRing {
			rootR = p.RingOuterRadius - rimEpsilon
		}
		start := r3.Vec{X: rootR * cos, Y: rootR * sin}

		anchors = append(anchors, ProngAnchor{Start: start, End: end, Angle: theta})
	}
	return anchors
}

// girdleRadius returns the stone outline radius at bearing theta. Round
// and oval stones use the exact ellipse radius; square cuts clip the
// ray against the girdle rectangle, in the rotated frame the stone is
// placed in.
func (p DesignParameters) girdleRadius(theta float64) float64 {
	a := p.StoneLength / 2
	b := p.StoneWidth / 2
	if p.StoneShape.square() {
		phi := theta - p.stoneRotation()
		cos := math.Abs(math.Cos(phi))
		sin := math.Abs(math.Sin(phi))
		r := math.Inf(1)
		if cos > 1e-12 {
			r = a / cos
		}
		if sin > 1e-12 {
			r = math.Min(r, b/sin)
		}
		return r
	}
	sin, cos := math.Sincos(theta)
	return a * b / math.Sqrt((b*cos)*(b*cos)+(a*sin)*(a*sin))
}

// stoneRotation turns square stones so girdle corners meet the prongs.
func (p DesignParameters) stoneRotation() float64 {
	if !p.StoneShape.square() || p.ProngCount == 0 {
		return 0
	}
	return math.Pi / float64(p.ProngCount)
}

// ClearanceWarnings checks the parameter set for geometry that will
// likely pinch or float: a pavilion reaching too close to the band, or
// prongs crowding the stone. Warnings are advisory; generation still
// proceeds.
func ClearanceWarnings(p DesignParameters) []string {
	var warns []string

	pavilion := p.StoneDepth * 0.65
	vertical := pavilion - p.RingThickness + minSafeHeight
	if p.SettingHeight < vertical {
		warns = append(warns, fmt.Sprintf(
			"setting height %.2fmm leaves the pavilion %.2fmm short of safe clearance (need %.2fmm)",
			p.SettingHeight, vertical-p.SettingHeight, vertical))
	}

	if p.BaseType == BaseRing {
		girdle := math.Max(p.StoneLength, p.StoneWidth) / 2
		if p.StoneShape.square() {
			// Corners reach the girdle rectangle's half diagonal.
			girdle = math.Hypot(p.StoneLength/2, p.StoneWidth/2)
		}
		root := p.RingOuterRadius - rimEpsilon
		horizontal := girdle + p.ProngBaseDiameter/2 + 0.2
		if root < horizontal {
			warns = append(warns, fmt.Sprintf(
				"prong roots at %.2fmm sit inside the stone footprint, need %.2fmm",
				root, horizontal))
		}
	}
	return warns
}
