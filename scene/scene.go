// Package scene groups named, tinted meshes for export. Parts carry a
// semantic tag and a flat vertex color; geometry processing never reads
// a Part, only mesh.Mesh values.
package scene

import (
	"image/color"

	"github.com/forma-cad/gemset/mesh"
)

// Tints applied to exported parts. The stone is translucent so prong
// seating remains visible in a viewer.
var (
	StoneTint = color.NRGBA{R: 100, G: 160, B: 255, A: 220}
	MetalTint = color.NRGBA{R: 200, G: 190, B: 170, A: 255}
	DebugTint = color.NRGBA{R: 255, G: 60, B: 60, A: 255}
)

// Part is a mesh with a semantic name and a flat vertex color.
type Part struct {
	Name  string
	Mesh  mesh.Mesh
	Color color.NRGBA
}

// Scene is an ordered collection of parts.
type Scene struct {
	Parts []Part
}

// Add appends a part, skipping empty meshes.
func (s *Scene) Add(name string, m mesh.Mesh, c color.NRGBA) {
	if m.IsEmpty() {
		return
	}
	s.Parts = append(s.Parts, Part{Name: name, Mesh: m, Color: c})
}

// Find returns the first part with the given name.
func (s *Scene) Find(name string) (Part, bool) {
	for _, p := range s.Parts {
		if p.Name == name {
			return p, true
		}
	}
	return Part{}, false
}

// IsEmpty reports whether the scene has no parts.
func (s *Scene) IsEmpty() bool { return len(s.Parts) == 0 }

// TriangleCount totals triangles over all parts.
func (s *Scene) TriangleCount() int {
	var n int
	for _, p := range s.Parts {
		n += p.Mesh.TriangleCount()
	}
	return n
}
