package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Material is the subset of an MTL material the viewer forwards to the renderer.
type Material struct {
	Name       string     `yaml:"name"`
	Diffuse    [3]float32 `yaml:"diffuse"`
	Opacity    float32    `yaml:"opacity"`
	DiffuseMap string     `yaml:"diffuse_map,omitempty"`
}

// MaterialLib maps material names to definitions.
type MaterialLib map[string]Material

// ParseMTL decodes a Wavefront MTL stream.
func ParseMTL(r io.Reader) (MaterialLib, error) {
	lib := make(MaterialLib)
	var cur *Material
	flush := func() {
		if cur != nil {
			lib[cur.Name] = *cur
		}
	}

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || text[0] == '#' {
			continue
		}
		fields := strings.Fields(text)

		if fields[0] == "newmtl" {
			flush()
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: newmtl without a name", line)
			}
			cur = &Material{Name: fields[1], Diffuse: [3]float32{1, 1, 1}, Opacity: 1}
			continue
		}
		if cur == nil {
			continue
		}

		switch fields[0] {
		case "Kd":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: Kd needs 3 components", line)
			}
			v, err := parseVec3(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("line %d: Kd: %w", line, err)
			}
			cur.Diffuse = [3]float32{v.X, v.Y, v.Z}
		case "d", "Tr":
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: %s needs a value", line, fields[0])
			}
			f, err := strconv.ParseFloat(fields[1], 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", line, fields[0], err)
			}
			if fields[0] == "Tr" {
				f = 1 - f
			}
			cur.Opacity = float32(f)
		case "map_Kd":
			if len(fields) > 1 {
				cur.DiffuseMap = fields[len(fields)-1]
			}
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading MTL: %w", err)
	}
	return lib, nil
}
