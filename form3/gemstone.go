package form3

import (
	"math"

	"github.com/forma-cad/gemset/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// Faceted gemstone proportions. Crown and pavilion split the stone depth
// at the girdle plane z=0; the table sits on top of the crown, the culet
// is the lowest point of the pavilion.
const (
	// CrownRatio is the crown height as a fraction of total stone depth.
	CrownRatio = 0.35
	// PavilionRatio is the pavilion depth as a fraction of total depth.
	PavilionRatio = 0.65
	// tableRatio is the table radius relative to the girdle radius of a
	// brilliant cut.
	tableRatio = 0.53
)

// StoneShape identifies a gemstone cut.
type StoneShape int

const (
	StoneRound StoneShape = iota
	StonePrincess
	StoneRadiant
	StoneOval
)

// Gemstone builds a stone of the given shape from its girdle extents.
// length and width are the full girdle dimensions; depth the total
// stone height. Shapes outside the known set return an empty mesh and
// false.
func Gemstone(shape StoneShape, length, width, depth float64) (mesh.Mesh, bool) {
	switch shape {
	case StoneRound:
		if length != width {
			// An unequal round stone has an elliptical girdle; the
			// faceted brilliant only covers the circular case.
			return ellipsoidStone(length, width, depth), true
		}
		return BrilliantCut(length/2, depth, 8), true
	case StonePrincess:
		return PrincessCut(math.Min(length, width), depth), true
	case StoneRadiant:
		return RadiantCut(length, width, depth), true
	case StoneOval:
		return ellipsoidStone(length, width, depth), true
	}
	return mesh.Mesh{}, false
}

// ellipsoidStone approximates a faceted cut with an ellipsoid, girdle
// plane at z=0.
func ellipsoidStone(length, width, depth float64) mesh.Mesh {
	e := Ellipsoid(length, width, depth, 3)
	return e.Translate(r3.Vec{Z: -depth / 2})
}

// BrilliantCut returns a faceted round brilliant with girdle radius
// radius and total depth depth. The girdle plane lies at z=0, the table
// above and the culet below. segments controls the number of facets per
// ring; 8 gives the classic large-facet look.
func BrilliantCut(radius, depth float64, segments int) mesh.Mesh {
	if segments < 3 {
		segments = 8
	}
	crownH := depth * CrownRatio
	pavilionD := depth * PavilionRatio
	tableR := radius * tableRatio

	var m mesh.Mesh
	ring := func(r, z float64) int {
		start := len(m.Vertices)
		for i := 0; i < segments; i++ {
			theta := float64(i) / float64(segments) * tau
			m.Vertices = append(m.Vertices, r3.Vec{X: r * math.Cos(theta), Y: r * math.Sin(theta), Z: z})
		}
		return start
	}

	m.Vertices = append(m.Vertices, r3.Vec{Z: crownH})
	tableCenter := 0
	table := ring(tableR, crownH)
	crown := ring(radius*0.85, crownH*0.5)
	girdle := ring(radius, 0)
	pavilion := ring(radius*0.5, -pavilionD*0.5)
	m.Vertices = append(m.Vertices, r3.Vec{Z: -pavilionD})
	culet := len(m.Vertices) - 1

	fanDown(&m, tableCenter, table, segments)
	strip(&m, table, crown, segments)
	strip(&m, crown, girdle, segments)
	strip(&m, girdle, pavilion, segments)
	fanUp(&m, culet, pavilion, segments)
	return m
}

// PrincessCut returns a square princess cut of side size and total depth
// depth, girdle plane at z=0.
func PrincessCut(size, depth float64) mesh.Mesh {
	crownH := depth * CrownRatio
	pavilionD := depth * PavilionRatio
	halfTable := size * 0.70 / 2
	halfGirdle := size / 2
	halfPavilion := size * 0.30

	var m mesh.Mesh
	square := func(half, z float64) int {
		start := len(m.Vertices)
		m.Vertices = append(m.Vertices,
			r3.Vec{X: half, Y: half, Z: z},
			r3.Vec{X: -half, Y: half, Z: z},
			r3.Vec{X: -half, Y: -half, Z: z},
			r3.Vec{X: half, Y: -half, Z: z},
		)
		return start
	}
	m.Vertices = append(m.Vertices, r3.Vec{Z: crownH})
	tableCenter := 0
	table := square(halfTable, crownH)
	girdle := square(halfGirdle, 0)
	pavilion := square(halfPavilion, -pavilionD*0.5)
	m.Vertices = append(m.Vertices, r3.Vec{Z: -pavilionD})
	culet := len(m.Vertices) - 1

	fanDown(&m, tableCenter, table, 4)
	strip(&m, table, girdle, 4)
	strip(&m, girdle, pavilion, 4)
	fanUp(&m, culet, pavilion, 4)
	return m
}

// RadiantCut returns a radiant cut: a rectangle of the given length and
// width with beveled corners forming an octagonal girdle, total depth
// depth, girdle plane at z=0.
func RadiantCut(length, width, depth float64) mesh.Mesh {
	crownH := depth * CrownRatio
	pavilionD := depth * PavilionRatio
	cornerCut := math.Min(length, width) * 0.15

	var m mesh.Mesh
	octagon := func(halfL, halfW, cut, z float64) int {
		start := len(m.Vertices)
		m.Vertices = append(m.Vertices,
			r3.Vec{X: halfL - cut, Y: halfW, Z: z},
			r3.Vec{X: -(halfL - cut), Y: halfW, Z: z},
			r3.Vec{X: -halfL, Y: halfW - cut, Z: z},
			r3.Vec{X: -halfL, Y: -(halfW - cut), Z: z},
			r3.Vec{X: -(halfL - cut), Y: -halfW, Z: z},
			r3.Vec{X: halfL - cut, Y: -halfW, Z: z},
			r3.Vec{X: halfL, Y: -(halfW - cut), Z: z},
			r3.Vec{X: halfL, Y: halfW - cut, Z: z},
		)
		return start
	}
	m.Vertices = append(m.Vertices, r3.Vec{Z: crownH})
	tableCenter := 0
	table := octagon(length*0.65/2, width*0.65/2, cornerCut*0.5, crownH)
	girdle := octagon(length/2, width/2, cornerCut, 0)
	m.Vertices = append(m.Vertices, r3.Vec{Z: -pavilionD})
	culet := len(m.Vertices) - 1

	fanDown(&m, tableCenter, table, 8)
	strip(&m, table, girdle, 8)
	fanUp(&m, culet, girdle, 8)
	return m
}

// fanDown fans from an apex above a ring, wound so normals face up/out.
func fanDown(m *mesh.Mesh, apex, ring, n int) {
	for i := 0; i < n; i++ {
		i2 := (i + 1) % n
		m.Triangles = append(m.Triangles, [3]int{apex, ring + i, ring + i2})
	}
}

// fanUp fans from an apex below a ring, wound so normals face down/out.
func fanUp(m *mesh.Mesh, apex, ring, n int) {
	for i := 0; i < n; i++ {
		i2 := (i + 1) % n
		m.Triangles = append(m.Triangles, [3]int{ring + i, apex, ring + i2})
	}
}

// strip connects an upper ring to a lower ring with two triangles per
// segment, wound outward. The rings must share vertex ordering.
func strip(m *mesh.Mesh, upper, lower, n int) {
	for i := 0; i < n; i++ {
		i2 := (i + 1) % n
		m.Triangles = append(m.Triangles,
			[3]int{upper + i, lower + i, upper + i2},
			[3]int{upper + i2, lower + i, lower + i2},
		)
	}
}
