package glb

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/forma-cad/gemset/mesh"
	"github.com/forma-cad/gemset/scene"
)

func testScene() scene.Scene {
	m := mesh.Mesh{
		Vertices:  []r3.Vec{{}, {X: 1}, {Y: 1}, {Z: 1}},
		Triangles: [][3]int{{0, 2, 1}, {0, 1, 3}, {0, 3, 2}, {1, 2, 3}},
	}
	var s scene.Scene
	s.Add("Stone", m, scene.StoneTint)
	s.Add("Ring", m.Translate(r3.Vec{X: 3}), scene.MetalTint)
	return s
}

func TestWriteAndReadAsset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.glb")
	require.NoError(t, WriteFile(path, testScene()))

	version, generator, err := ReadAsset(path)
	require.NoError(t, err)
	assert.Equal(t, "2.0", version)
	assert.Equal(t, Generator, generator)
}

func TestContainerLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testScene()))
	raw := buf.Bytes()

	require.GreaterOrEqual(t, len(raw), headerSize)
	assert.EqualValues(t, glbMagic, binary.LittleEndian.Uint32(raw))
	assert.EqualValues(t, glbVersion, binary.LittleEndian.Uint32(raw[4:]))
	assert.EqualValues(t, len(raw), binary.LittleEndian.Uint32(raw[8:]))
	assert.Zero(t, len(raw)%4, "container not 4-byte aligned")

	js, bin, err := splitChunks(raw)
	require.NoError(t, err)
	assert.NotEmpty(t, bin)

	var doc document
	require.NoError(t, json.Unmarshal(js, &doc))
	require.Len(t, doc.Nodes, 2)
	assert.Equal(t, "Stone", doc.Nodes[0].Name)
	assert.Equal(t, "Ring", doc.Nodes[1].Name)
	require.Len(t, doc.Accessors, 6)
	assert.Equal(t, "VEC3", doc.Accessors[0].Type)
	assert.Len(t, doc.Accessors[0].Min, 3)
	require.Len(t, doc.Buffers, 1)
	assert.Equal(t, len(bin), doc.Buffers[0].ByteLength)

	// The translucent stone needs alpha blending; opaque metal does not.
	require.Len(t, doc.Materials, 2)
	assert.Equal(t, "BLEND", doc.Materials[0].AlphaMode)
	assert.Empty(t, doc.Materials[1].AlphaMode)
}

func TestForceAssetMetaOverwritesVersion(t *testing.T) {
	doc := map[string]any{
		"asset":  map[string]any{"version": "1.0", "generator": "other-tool"},
		"scenes": []any{},
	}
	js, err := json.Marshal(doc)
	require.NoError(t, err)
	raw, err := joinChunks(js, nil)
	require.NoError(t, err)

	fixed, err := ForceAssetMeta(raw)
	require.NoError(t, err)
	js2, _, err := splitChunks(fixed)
	require.NoError(t, err)

	var out struct {
		Asset asset `json:"asset"`
	}
	require.NoError(t, json.Unmarshal(js2, &out))
	assert.Equal(t, "2.0", out.Asset.Version)
	assert.Equal(t, Generator, out.Asset.Generator)
}

func TestForceAssetMetaRejectsGarbage(t *testing.T) {
	_, err := ForceAssetMeta([]byte("not a glb"))
	assert.Error(t, err)
}

func TestWriteRejectsEmptyScene(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, scene.Scene{})
	assert.Error(t, err)
}

func TestWriteRejectsNonFiniteVertices(t *testing.T) {
	m := mesh.Mesh{
		Vertices:  []r3.Vec{{}, {X: 1}, {Y: math.NaN()}},
		Triangles: [][3]int{{0, 1, 2}},
	}
	var s scene.Scene
	s.Add("Bad", m, scene.MetalTint)
	var buf bytes.Buffer
	err := Write(&buf, s)
	assert.Error(t, err)
}
