package glb

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
)

// ForceAssetMeta re-reads a GLB container and rewrites its JSON chunk
// so asset.version is "2.0" and asset.generator names this tool.
// Downstream viewers reject assets without a version field, so every
// exported file goes through this pass. The input bytes are not
// modified.
func ForceAssetMeta(raw []byte) ([]byte, error) {
	js, bin, err := splitChunks(raw)
	if err != nil {
		return nil, err
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(js, &doc); err != nil {
		return nil, fmt.Errorf("glb: decode document: %w", err)
	}

	var a asset
	if rawAsset, ok := doc["asset"]; ok {
		// A malformed asset block is replaced wholesale.
		_ = json.Unmarshal(rawAsset, &a)
	}
	a.Version = "2.0"
	a.Generator = Generator
	fixedAsset, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	doc["asset"] = fixedAsset

	fixedJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return joinChunks(fixedJSON, bin)
}

// ReadAsset opens a GLB file and returns its declared asset version and
// generator strings.
func ReadAsset(path string) (version, generator string, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	js, _, err := splitChunks(raw)
	if err != nil {
		return "", "", err
	}
	var doc struct {
		Asset asset `json:"asset"`
	}
	if err := json.Unmarshal(js, &doc); err != nil {
		return "", "", fmt.Errorf("glb: decode document: %w", err)
	}
	return doc.Asset.Version, doc.Asset.Generator, nil
}

// splitChunks validates the container header and returns the JSON and
// BIN chunk payloads. The BIN chunk may be nil.
func splitChunks(raw []byte) (js, bin []byte, err error) {
	if len(raw) < headerSize {
		return nil, nil, fmt.Errorf("glb: truncated header")
	}
	if binary.LittleEndian.Uint32(raw) != glbMagic {
		return nil, nil, fmt.Errorf("glb: bad magic")
	}
	if v := binary.LittleEndian.Uint32(raw[4:]); v != glbVersion {
		return nil, nil, fmt.Errorf("glb: unsupported container version %d", v)
	}
	total := binary.LittleEndian.Uint32(raw[8:])
	if int(total) > len(raw) {
		return nil, nil, fmt.Errorf("glb: truncated container")
	}

	off := headerSize
	for off+chunkHdrSize <= int(total) {
		length := int(binary.LittleEndian.Uint32(raw[off:]))
		kind := binary.LittleEndian.Uint32(raw[off+4:])
		off += chunkHdrSize
		if off+length > int(total) {
			return nil, nil, fmt.Errorf("glb: truncated chunk")
		}
		payload := raw[off : off+length]
		switch kind {
		case chunkJSON:
			js = bytes.TrimRight(payload, " ")
		case chunkBIN:
			bin = payload
		}
		off += length
	}
	if js == nil {
		return nil, nil, fmt.Errorf("glb: missing JSON chunk")
	}
	return js, bin, nil
}

// joinChunks reassembles a container from chunk payloads.
func joinChunks(js, bin []byte) ([]byte, error) {
	jsPad := pad4(len(js))
	binPad := pad4(len(bin))
	total := headerSize + chunkHdrSize + len(js) + jsPad
	if len(bin) > 0 {
		total += chunkHdrSize + len(bin) + binPad
	}

	var out bytes.Buffer
	out.Grow(total)
	writeU32 := func(v uint32) {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v)
		out.Write(b[:])
	}
	writeU32(glbMagic)
	writeU32(glbVersion)
	writeU32(uint32(total))

	writeU32(uint32(len(js) + jsPad))
	writeU32(chunkJSON)
	out.Write(js)
	for i := 0; i < jsPad; i++ {
		out.WriteByte(' ')
	}
	if len(bin) > 0 {
		writeU32(uint32(len(bin) + binPad))
		writeU32(chunkBIN)
		out.Write(bin)
		for i := 0; i < binPad; i++ {
			out.WriteByte(0)
		}
	}
	return out.Bytes(), nil
}
