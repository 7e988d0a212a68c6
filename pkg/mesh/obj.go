package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Faultbox/dentaview/pkg/math"
)

// ParseOBJ decodes a Wavefront OBJ stream. Polygons are fan-triangulated;
// texture coordinates are ignored since the viewer only needs geometry and
// material assignment.
func ParseOBJ(r io.Reader) (*Mesh, error) {
	m := NewMesh("")
	// OBJ indices are 1-based; slot 0 is never referenced.
	vs := []math.Vec3{{}}
	vns := []math.Vec3{{}}

	seenMtl := make(map[string]bool)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0

	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || text[0] == '#' {
			continue
		}
		fields := strings.Fields(text)

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", line)
			}
			v, err := parseVec3(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", line, err)
			}
			vs = append(vs, v)
		case "vn":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: normal needs 3 coordinates", line)
			}
			v, err := parseVec3(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", line, err)
			}
			vns = append(vns, v)
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", line)
			}
			if err := addFace(m, fields[1:], vs, vns); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		case "o", "g":
			if len(fields) > 1 {
				name := strings.Join(fields[1:], " ")
				m.Objects = append(m.Objects, name)
				if m.Name == "" {
					m.Name = name
				}
			}
		case "usemtl":
			if len(fields) > 1 && !seenMtl[fields[1]] {
				seenMtl[fields[1]] = true
				m.MaterialRefs = append(m.MaterialRefs, fields[1])
			}
		case "mtllib":
			m.MaterialLibs = append(m.MaterialLibs, fields[1:]...)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}
	return m, nil
}

func addFace(m *Mesh, refs []string, vs, vns []math.Vec3) error {
	pos := make([]math.Vec3, len(refs))
	nrm := make([]math.Vec3, len(refs))
	hasNormals := true

	for i, ref := range refs {
		parts := strings.Split(ref, "/")
		vi, err := resolveIndex(parts[0], len(vs))
		if err != nil {
			return fmt.Errorf("face vertex %q: %w", ref, err)
		}
		pos[i] = vs[vi]

		if len(parts) == 3 && parts[2] != "" {
			ni, err := resolveIndex(parts[2], len(vns))
			if err != nil {
				return fmt.Errorf("face normal %q: %w", ref, err)
			}
			nrm[i] = vns[ni]
		} else {
			hasNormals = false
		}
	}

	for i := 1; i < len(pos)-1; i++ {
		t := Triangle{V1: pos[0], V2: pos[i], V3: pos[i+1]}
		if hasNormals {
			t.Normal = nrm[0].Add(nrm[i]).Add(nrm[i+1]).Normalize()
		} else {
			t.Normal = faceNormal(t.V1, t.V2, t.V3)
		}
		m.AddTriangle(t)
	}
	return nil
}

// resolveIndex converts a 1-based or negative (relative) OBJ index into a
// slice index. n includes the unused slot 0.
func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		i = n + i
	}
	if i <= 0 || i >= n {
		return 0, fmt.Errorf("index %s out of range", s)
	}
	return i, nil
}

func parseVec3(fields []string) (math.Vec3, error) {
	var out [3]float32
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return math.Vec3{}, err
		}
		out[i] = float32(f)
	}
	return math.Vec3{X: out[0], Y: out[1], Z: out[2]}, nil
}
