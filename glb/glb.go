// Package glb writes scenes as binary glTF 2.0 containers. The writer
// emits a single buffer holding interleaved-per-part position, color
// and index data, one named node per part, and flat PBR materials
// derived from the part tints. Written bytes always pass through a
// metadata post-pass that pins the asset version and generator fields.
package glb

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/chewxy/math32"
	"github.com/forma-cad/gemset/scene"
)

// Generator is the tool name stamped into every exported asset.
const Generator = "gemset"

const (
	glbMagic     = 0x46546C67 // "glTF"
	glbVersion   = 2
	chunkJSON    = 0x4E4F534A // "JSON"
	chunkBIN     = 0x004E4942 // "BIN\0"
	headerSize   = 12
	chunkHdrSize = 8
)

const (
	compFloat = 5126
	compUint  = 5125

	targetArray        = 34962
	targetElementArray = 34963
)

type document struct {
	Asset       asset        `json:"asset"`
	Scene       int          `json:"scene"`
	Scenes      []sceneDef   `json:"scenes"`
	Nodes       []node       `json:"nodes"`
	Meshes      []meshDef    `json:"meshes"`
	Materials   []material   `json:"materials,omitempty"`
	Accessors   []accessor   `json:"accessors"`
	BufferViews []bufferView `json:"bufferViews"`
	Buffers     []buffer     `json:"buffers"`
}

type asset struct {
	Version   string `json:"version"`
	Generator string `json:"generator,omitempty"`
}

type sceneDef struct {
	Nodes []int `json:"nodes"`
}

type node struct {
	Name string `json:"name,omitempty"`
	Mesh int    `json:"mesh"`
}

type meshDef struct {
	Name       string      `json:"name,omitempty"`
	Primitives []primitive `json:"primitives"`
}

type primitive struct {
	Attributes map[string]int `json:"attributes"`
	Indices    int            `json:"indices"`
	Material   *int           `json:"material,omitempty"`
}

type material struct {
	Name        string `json:"name,omitempty"`
	PBR         pbr    `json:"pbrMetallicRoughness"`
	AlphaMode   string `json:"alphaMode,omitempty"`
	DoubleSided bool   `json:"doubleSided,omitempty"`
}

type pbr struct {
	BaseColorFactor [4]float64 `json:"baseColorFactor"`
	MetallicFactor  float64    `json:"metallicFactor"`
	RoughnessFactor float64    `json:"roughnessFactor"`
}

type accessor struct {
	BufferView    int       `json:"bufferView"`
	ComponentType int       `json:"componentType"`
	Count         int       `json:"count"`
	Type          string    `json:"type"`
	Min           []float32 `json:"min,omitempty"`
	Max           []float32 `json:"max,omitempty"`
}

type bufferView struct {
	Buffer     int `json:"buffer"`
	ByteOffset int `json:"byteOffset"`
	ByteLength int `json:"byteLength"`
	Target     int `json:"target,omitempty"`
}

type buffer struct {
	ByteLength int `json:"byteLength"`
}

// Write serializes the scene as a GLB container to w.
func Write(w io.Writer, s scene.Scene) error {
	raw, err := encode(s)
	if err != nil {
		return err
	}
	_, err = w.Write(raw)
	return err
}

// WriteFile writes the scene to path, creating or truncating the file.
func WriteFile(path string, s scene.Scene) error {
	raw, err := encode(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0666)
}

func encode(s scene.Scene) ([]byte, error) {
	if s.IsEmpty() {
		return nil, fmt.Errorf("glb: empty scene")
	}
	doc := document{
		Asset:   asset{Version: "2.0", Generator: Generator},
		Buffers: []buffer{{}},
	}
	var bin bytes.Buffer

	for _, part := range s.Parts {
		if err := appendPart(&doc, &bin, part); err != nil {
			return nil, fmt.Errorf("glb: part %q: %w", part.Name, err)
		}
	}
	rootNodes := make([]int, len(doc.Nodes))
	for i := range rootNodes {
		rootNodes[i] = i
	}
	doc.Scenes = []sceneDef{{Nodes: rootNodes}}
	doc.Buffers[0].ByteLength = bin.Len()

	raw, err := assemble(doc, bin.Bytes())
	if err != nil {
		return nil, err
	}
	// Exported bytes are only valid with correct asset metadata; pin it
	// even when the encoder above changes.
	if fixed, err := ForceAssetMeta(raw); err == nil {
		raw = fixed
	}
	return raw, nil
}

// appendPart writes one part's vertex data into bin and registers the
// matching accessors, mesh, material and node.
func appendPart(doc *document, bin *bytes.Buffer, part scene.Part) error {
	m := part.Mesh
	if m.TriangleCount() == 0 {
		return fmt.Errorf("no triangles")
	}

	posView, bounds, err := writePositions(doc, bin, part)
	if err != nil {
		return err
	}
	colView := writeColors(doc, bin, part)
	idxView := writeIndices(doc, bin, part)

	posAcc := len(doc.Accessors)
	doc.Accessors = append(doc.Accessors, accessor{
		BufferView:    posView,
		ComponentType: compFloat,
		Count:         m.VertexCount(),
		Type:          "VEC3",
		Min:           bounds[0][:],
		Max:           bounds[1][:],
	})
	colAcc := len(doc.Accessors)
	doc.Accessors = append(doc.Accessors, accessor{
		BufferView:    colView,
		ComponentType: compFloat,
		Count:         m.VertexCount(),
		Type:          "VEC4",
	})
	idxAcc := len(doc.Accessors)
	doc.Accessors = append(doc.Accessors, accessor{
		BufferView:    idxView,
		ComponentType: compUint,
		Count:         3 * m.TriangleCount(),
		Type:          "SCALAR",
	})

	matIdx := len(doc.Materials)
	doc.Materials = append(doc.Materials, partMaterial(part))

	meshIdx := len(doc.Meshes)
	doc.Meshes = append(doc.Meshes, meshDef{
		Name: part.Name,
		Primitives: []primitive{{
			Attributes: map[string]int{"POSITION": posAcc, "COLOR_0": colAcc},
			Indices:    idxAcc,
			Material:   &matIdx,
		}},
	})
	doc.Nodes = append(doc.Nodes, node{Name: part.Name, Mesh: meshIdx})
	return nil
}

func writePositions(doc *document, bin *bytes.Buffer, part scene.Part) (view int, bounds [2][3]float32, err error) {
	start := bin.Len()
	lo := [3]float32{math32.Inf(1), math32.Inf(1), math32.Inf(1)}
	hi := [3]float32{math32.Inf(-1), math32.Inf(-1), math32.Inf(-1)}
	var buf [12]byte
	for _, v := range part.Mesh.Vertices {
		p := [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
		for i, c := range p {
			if math32.IsNaN(c) || math32.IsInf(c, 0) {
				return 0, bounds, fmt.Errorf("non-finite vertex coordinate")
			}
			lo[i] = math32.Min(lo[i], c)
			hi[i] = math32.Max(hi[i], c)
			binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(c))
		}
		bin.Write(buf[:])
	}
	view = addView(doc, start, bin.Len()-start, targetArray)
	return view, [2][3]float32{lo, hi}, nil
}

func writeColors(doc *document, bin *bytes.Buffer, part scene.Part) int {
	start := bin.Len()
	c := [4]float32{
		float32(part.Color.R) / 255,
		float32(part.Color.G) / 255,
		float32(part.Color.B) / 255,
		float32(part.Color.A) / 255,
	}
	var buf [16]byte
	for i, f := range c {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(f))
	}
	for range part.Mesh.Vertices {
		bin.Write(buf[:])
	}
	return addView(doc, start, bin.Len()-start, targetArray)
}

func writeIndices(doc *document, bin *bytes.Buffer, part scene.Part) int {
	start := bin.Len()
	var buf [4]byte
	for _, t := range part.Mesh.Triangles {
		for _, idx := range t {
			binary.LittleEndian.PutUint32(buf[:], uint32(idx))
			bin.Write(buf[:])
		}
	}
	return addView(doc, start, bin.Len()-start, targetElementArray)
}

func addView(doc *document, offset, length, target int) int {
	doc.BufferViews = append(doc.BufferViews, bufferView{
		ByteOffset: offset,
		ByteLength: length,
		Target:     target,
	})
	return len(doc.BufferViews) - 1
}

func partMaterial(part scene.Part) material {
	m := material{
		Name: part.Name,
		PBR: pbr{
			BaseColorFactor: [4]float64{1, 1, 1, float64(part.Color.A) / 255},
			MetallicFactor:  0.6,
			RoughnessFactor: 0.4,
		},
	}
	if part.Color.A < 255 {
		m.AlphaMode = "BLEND"
		m.DoubleSided = true
	}
	return m
}

// assemble marshals the document and lays out the container with the
// 4-byte chunk alignment the format requires.
func assemble(doc document, bin []byte) ([]byte, error) {
	js, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("glb: marshal document: %w", err)
	}
	return joinChunks(js, bin)
}

func pad4(n int) int { return (4 - n%4) % 4 }
