package scene

// Pick returns the index of the nearest segment the ray hits.
func Pick(f Frame, r Ray) (index int, ok bool) {
	best := float32(0)
	for _, s := range f.Segments {
		t, hit := r.IntersectBox(s.Box())
		if !hit {
			continue
		}
		if !ok || t < best {
			best, index, ok = t, s.Index, true
		}
	}
	return index, ok
}

// Selector receives segment clicks.
type Selector interface {
	SelectTooth(i int)
}

// Click routes a hit on a segment to sel. Clicking the selected segment
// deselects it. It reports whether a segment was hit.
func Click(sel Selector, f Frame, r Ray) bool {
	i, ok := Pick(f, r)
	if ok {
		sel.SelectTooth(i)
	}
	return ok
}
