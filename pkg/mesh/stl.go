package mesh

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hschendel/stl"

	"github.com/Faultbox/dentaview/pkg/math"
)

const (
	stlHeaderSize = 80
	stlFacetSize  = 50
)

// ParseSTL decodes an ASCII or binary STL stream.
// Binary files are recognised by their exact size first, since many binary
// exporters also start the 80-byte header with "solid".
func ParseSTL(r io.Reader) (*Mesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading STL: %w", err)
	}

	name := ""
	if isBinarySTL(data) {
		header := data[:stlHeaderSize]
		name = string(bytes.TrimSpace(bytes.TrimRight(header, "\x00")))
		if bytes.HasPrefix(header, []byte("solid")) {
			// Blank the keyword so the decoder does not take it for ASCII.
			data = bytes.Clone(data)
			copy(data, "     ")
		}
	}

	solid, err := stl.ReadAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding STL: %w", err)
	}
	if solid.IsAscii {
		name = solid.Name
	}
	return fromSolid(name, solid), nil
}

func isBinarySTL(data []byte) bool {
	if len(data) < stlHeaderSize+4 {
		return false
	}
	n := binary.LittleEndian.Uint32(data[stlHeaderSize:])
	return uint64(len(data)) == uint64(stlHeaderSize+4)+uint64(n)*stlFacetSize
}

func fromSolid(name string, s *stl.Solid) *Mesh {
	m := NewMesh(name)
	m.Triangles = make([]Triangle, 0, len(s.Triangles))
	for _, t := range s.Triangles {
		m.AddTriangle(Triangle{
			Normal: vec3(t.Normal),
			V1:     vec3(t.Vertices[0]),
			V2:     vec3(t.Vertices[1]),
			V3:     vec3(t.Vertices[2]),
		})
	}
	return m
}

func vec3(v stl.Vec3) math.Vec3 {
	return math.V3(v[0], v[1], v[2])
}
