// Package mesh decodes the mesh formats accepted by the viewer upload:
// STL (single-mesh) and OBJ with an optional MTL sidecar (grouped-mesh).
package mesh

import (
	"github.com/Faultbox/dentaview/pkg/math"
)

// Triangle is one face of a mesh.
type Triangle struct {
	Normal     math.Vec3
	V1, V2, V3 math.Vec3
}

// Mesh is a decoded triangle soup plus the grouping metadata OBJ carries.
type Mesh struct {
	Name      string
	Triangles []Triangle

	// OBJ only.
	Objects      []string // o/g names in file order
	MaterialRefs []string // distinct usemtl names in file order
	MaterialLibs []string // mtllib references
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:      name,
		Triangles: make([]Triangle, 0),
	}
}

// AddTriangle appends a face.
func (m *Mesh) AddTriangle(t Triangle) {
	m.Triangles = append(m.Triangles, t)
}

// TriangleCount returns the number of faces.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// Bounds returns the axis-aligned bounding box of every vertex.
func (m *Mesh) Bounds() math.Box {
	b := math.EmptyBox()
	for _, t := range m.Triangles {
		b = b.Extend(t.V1).Extend(t.V2).Extend(t.V3)
	}
	return b
}

// faceNormal computes the geometric normal for faces that omit one.
func faceNormal(a, b, c math.Vec3) math.Vec3 {
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}
