// Package csg provides the solid boolean capability used to carve ring
// bores and merge production parts. Boolean engines are best effort:
// callers must treat every returned error as a signal to fall back to
// deterministic manual geometry, never as a fatal condition.
package csg

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	"github.com/forma-cad/gemset/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// Engine performs boolean operations on closed triangle meshes.
//
// Implementations may fail on open, degenerate or otherwise hostile
// input. A nil Engine is valid wherever one is accepted and behaves as
// an engine whose every operation fails.
type Engine interface {
	// Union merges the parts into a single solid.
	Union(parts ...mesh.Mesh) (mesh.Mesh, error)
	// Difference removes b from a.
	Difference(a, b mesh.Mesh) (mesh.Mesh, error)
}

var (
	// ErrEmptyResult reports a boolean operation that produced no
	// triangles.
	ErrEmptyResult = errors.New("csg: boolean result is empty")
	// ErrOpenMesh reports input that is not a closed surface.
	ErrOpenMesh = errors.New("csg: input mesh is not closed")
)

// SDFEngine implements Engine by importing meshes as signed distance
// fields, combining the fields with sdfx boolean operators and
// re-polygonizing the result with marching cubes.
type SDFEngine struct {
	// Cells is the marching cubes resolution along the longest axis of
	// the result's bounding box.
	Cells int
}

// NewSDFEngine returns an engine with the given marching cubes
// resolution; cells <= 0 selects the default.
func NewSDFEngine(cells int) *SDFEngine {
	return &SDFEngine{Cells: cells}
}

func (e *SDFEngine) cells() int {
	if e.Cells <= 0 {
		return 160
	}
	return e.Cells
}

// Union merges the parts into a single solid.
func (e *SDFEngine) Union(parts ...mesh.Mesh) (mesh.Mesh, error) {
	if len(parts) == 0 {
		return mesh.Mesh{}, ErrEmptyResult
	}
	fields := make([]sdf.SDF3, len(parts))
	for i, p := range parts {
		f, err := importSDF(p)
		if err != nil {
			return mesh.Mesh{}, fmt.Errorf("union part %d: %w", i, err)
		}
		fields[i] = f
	}
	return e.polygonize(sdf.Union3D(fields...))
}

// Difference removes b from a.
func (e *SDFEngine) Difference(a, b mesh.Mesh) (mesh.Mesh, error) {
	fa, err := importSDF(a)
	if err != nil {
		return mesh.Mesh{}, fmt.Errorf("difference minuend: %w", err)
	}
	fb, err := importSDF(b)
	if err != nil {
		return mesh.Mesh{}, fmt.Errorf("difference subtrahend: %w", err)
	}
	return e.polygonize(sdf.Difference3D(fa, fb))
}

func (e *SDFEngine) polygonize(s sdf.SDF3) (out mesh.Mesh, err error) {
	defer func() {
		// sdfx renderers panic on degenerate bounding boxes.
		if r := recover(); r != nil {
			out = mesh.Mesh{}
			err = fmt.Errorf("csg: polygonize: %v", r)
		}
	}()
	triangles := render.ToTriangles(s, render.NewMarchingCubesUniform(e.cells()))
	if len(triangles) == 0 {
		return mesh.Mesh{}, ErrEmptyResult
	}
	soup := make([]r3.Triangle, 0, len(triangles))
	for _, t := range triangles {
		soup = append(soup, fromSDFXTriangle(t))
	}
	out = mesh.FromTriangles(soup, 0)
	if out.IsEmpty() {
		return mesh.Mesh{}, ErrEmptyResult
	}
	return out, nil
}
