package gemset

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forma-cad/gemset/glb"
	"github.com/forma-cad/gemset/mesh"
)

// failEngine simulates a boolean backend that cannot handle any input,
// forcing every fallback path.
type failEngine struct{}

func (failEngine) Union(parts ...mesh.Mesh) (mesh.Mesh, error) {
	return mesh.Mesh{}, errors.New("union rejected")
}

func (failEngine) Difference(a, b mesh.Mesh) (mesh.Mesh, error) {
	return mesh.Mesh{}, errors.New("difference rejected")
}

func testGenerator() *Generator {
	return New(failEngine{}, nil)
}

func TestGenerateSolitaire(t *testing.T) {
	p, err := Preset("solitaire")
	require.NoError(t, err)

	designer, production, err := testGenerator().Generate(p, DebugOptions{})
	require.NoError(t, err)

	var names []string
	for _, part := range designer.Parts {
		names = append(names, part.Name)
	}
	assert.Equal(t, []string{"Ring", "Gallery", "Prong_0", "Prong_1", "Prong_2", "Prong_3", "Stone"}, names)

	require.Len(t, production.Parts, 1)
	for _, part := range production.Parts {
		assert.NotEqual(t, "Stone", part.Name)
	}
}

func TestGenerateRejectsInvalidParameters(t *testing.T) {
	p, _ := Preset("solitaire")
	p.ProngCount = 1
	_, _, err := testGenerator().Generate(p, DebugOptions{})
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestGenerateIsDeterministic(t *testing.T) {
	p, _ := Preset("vintage")
	g := testGenerator()
	d1, p1, err := g.Generate(p, DebugOptions{})
	require.NoError(t, err)
	d2, p2, err := g.Generate(p, DebugOptions{})
	require.NoError(t, err)

	require.Len(t, d2.Parts, len(d1.Parts))
	for i := range d1.Parts {
		assert.Equal(t, d1.Parts[i].Mesh.Vertices, d2.Parts[i].Mesh.Vertices, d1.Parts[i].Name)
		assert.Equal(t, d1.Parts[i].Mesh.Triangles, d2.Parts[i].Mesh.Triangles, d1.Parts[i].Name)
	}
	require.Len(t, p2.Parts, len(p1.Parts))
	assert.Equal(t, p1.Parts[0].Mesh.Vertices, p2.Parts[0].Mesh.Vertices)
}

func TestGalleryRadiusIsMeanAnchorDistance(t *testing.T) {
	p, _ := Preset("solitaire")
	p.StoneShape = Princess
	p.ProngCount = 6
	p.ProngBaseStyle = BasesGallery
	p.GalleryRadius = 0

	var sum float64
	anchors := ProngAnchors(p)
	for _, a := range anchors {
		sum += math.Hypot(a.Start.X, a.Start.Y)
	}
	mean := sum / float64(len(anchors))

	designer, _, err := testGenerator().Generate(p, DebugOptions{})
	require.NoError(t, err)
	var rail mesh.Mesh
	for _, part := range designer.Parts {
		if part.Name == "Gallery" {
			rail = part.Mesh
		}
	}
	require.False(t, rail.IsEmpty())
	outer := rail.Bounds().Max.X
	assert.InEpsilon(t, mean+p.ProngBaseWidth/2, outer, 0.01)
}

func TestProductionSurvivesUnionFailure(t *testing.T) {
	dir := t.TempDir()
	designerPath := filepath.Join(dir, "designer.glb")
	productionPath := filepath.Join(dir, "production.glb")

	p, _ := Preset("solitaire")
	err := testGenerator().GenerateFiles(p, DebugOptions{}, designerPath, productionPath)
	require.NoError(t, err)

	version, generator, err := glb.ReadAsset(productionPath)
	require.NoError(t, err)
	assert.Equal(t, "2.0", version)
	assert.Equal(t, glb.Generator, generator)

	version, _, err = glb.ReadAsset(designerPath)
	require.NoError(t, err)
	assert.Equal(t, "2.0", version)
}

func TestGenerateFilesSkipsProduction(t *testing.T) {
	dir := t.TempDir()
	designerPath := filepath.Join(dir, "designer.glb")

	p, _ := Preset("halo")
	err := testGenerator().GenerateFiles(p, DebugOptions{}, designerPath, "")
	require.NoError(t, err)

	_, _, err = glb.ReadAsset(filepath.Join(dir, "production.glb"))
	assert.Error(t, err)
}

func TestDebugOptions(t *testing.T) {
	p, _ := Preset("solitaire")
	g := testGenerator()

	plain, plainProd, err := g.Generate(p, DebugOptions{})
	require.NoError(t, err)
	marked, _, err := g.Generate(p, DebugOptions{Markers: true})
	require.NoError(t, err)
	assert.Greater(t, len(marked.Parts), len(plain.Parts))

	single, singleProd, err := g.Generate(p, DebugOptions{SingleProng: true})
	require.NoError(t, err)
	var prongs int
	for _, part := range single.Parts {
		if len(part.Name) > 5 && part.Name[:5] == "Prong" {
			prongs++
		}
	}
	assert.Equal(t, 1, prongs)

	// Debug flags shape the designer scene only; the manufacturing solid
	// keeps every prong.
	require.Len(t, singleProd.Parts, len(plainProd.Parts))
	assert.Equal(t, plainProd.Parts[0].Mesh.Vertices, singleProd.Parts[0].Mesh.Vertices)
	assert.Equal(t, plainProd.Parts[0].Mesh.Triangles, singleProd.Parts[0].Mesh.Triangles)
}

func TestBasePartNameFollowsStyle(t *testing.T) {
	p, _ := Preset("halo")
	require.Equal(t, BasesIndividual, p.ProngBaseStyle)
	designer, _, err := testGenerator().Generate(p, DebugOptions{})
	require.NoError(t, err)

	_, ok := designer.Find("Bases")
	assert.True(t, ok)
	_, ok = designer.Find("Gallery")
	assert.False(t, ok)
}

func TestClawClustersInScene(t *testing.T) {
	p, _ := Preset("solitaire")
	p.Claws = &ClawParams{
		Count:        3,
		BaseAngle:    math.Pi / 2,
		SpreadDeg:    24,
		Length:       2,
		BaseDiameter: 0.8,
		TipDiameter:  0.4,
		TiltZFactor:  0.6,
	}
	designer, _, err := testGenerator().Generate(p, DebugOptions{})
	require.NoError(t, err)
	var found bool
	for _, part := range designer.Parts {
		if part.Name == "Claws" {
			found = true
			assert.Equal(t, 3, part.Mesh.ConnectedComponents())
		}
	}
	assert.True(t, found)
}

func TestStonePlacement(t *testing.T) {
	p, _ := Preset("solitaire")
	designer, _, err := testGenerator().Generate(p, DebugOptions{})
	require.NoError(t, err)
	part, ok := designer.Find("Stone")
	require.True(t, ok)
	require.False(t, part.Mesh.IsEmpty())
	b := part.Mesh.Bounds()
	// Girdle plane at SettingHeight, crown above, pavilion below.
	assert.InDelta(t, p.SettingHeight+0.35*p.StoneDepth, b.Max.Z, 1e-9)
	assert.InDelta(t, p.SettingHeight-0.65*p.StoneDepth, b.Min.Z, 1e-9)
}
