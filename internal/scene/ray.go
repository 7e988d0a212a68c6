package scene

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/dentaview/internal/viewer"
	"github.com/Faultbox/dentaview/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// RayFromCamera returns the ray through pixel (px, py) of a width x height viewport.
func RayFromCamera(cam *viewer.OrbitCamera, px, py float32, width, height int) (Ray, error) {
	origin, dir, err := cam.Ray(px, py, width, height)
	if err != nil {
		return Ray{}, err
	}
	return Ray{Origin: origin, Direction: dir}, nil
}

// IntersectBox tests ray intersection with an axis-aligned box using the slab
// method. Returns the distance to intersection and whether it occurred. If the
// ray starts inside the box, returns the exit distance.
func (r Ray) IntersectBox(box math.Box) (t float32, hit bool) {
	if box.IsEmpty() {
		return 0, false
	}
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	for i := 0; i < 3; i++ {
		o, d := r.Origin.Idx(i), r.Direction.Idx(i)
		lo, hi := box.Min.Idx(i), box.Max.Idx(i)
		if d == 0 {
			// Parallel to this slab
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}
