// Package debug renders schematic snapshots of composed scene frames.
package debug

import "github.com/Faultbox/dentaview/pkg/math"

// Edge is one box edge in world space.
type Edge [2]math.Vec3

// BoxEdges returns the 12 edges of b: bottom face, top face, then verticals.
func BoxEdges(b math.Box) []Edge {
	lo, hi := b.Min, b.Max
	c := func(x, y, z bool) math.Vec3 {
		v := lo
		if x {
			v.X = hi.X
		}
		if y {
			v.Y = hi.Y
		}
		if z {
			v.Z = hi.Z
		}
		return v
	}
	return []Edge{
		// Bottom face
		{c(false, false, false), c(true, false, false)},
		{c(true, false, false), c(true, false, true)},
		{c(true, false, true), c(false, false, true)},
		{c(false, false, true), c(false, false, false)},
		// Top face
		{c(false, true, false), c(true, true, false)},
		{c(true, true, false), c(true, true, true)},
		{c(true, true, true), c(false, true, true)},
		{c(false, true, true), c(false, true, false)},
		// Verticals
		{c(false, false, false), c(false, true, false)},
		{c(true, false, false), c(true, true, false)},
		{c(true, false, true), c(true, true, true)},
		{c(false, false, true), c(false, true, true)},
	}
}
