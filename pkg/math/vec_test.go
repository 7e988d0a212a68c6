package math

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Length(t *testing.T) {
	v := Vec3{3, 4, 0}
	if got := v.Length(); got != 5 {
		t.Errorf("Vec3.Length() = %v, want 5", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{0, 3, 4}.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Errorf("zero vector normalized to %v", z)
	}
}

func TestVec3MglRoundTrip(t *testing.T) {
	v := V3(1, -2, 3.5)
	if got := FromMgl(v.Mgl()); got != v {
		t.Errorf("FromMgl(Mgl()) = %v, want %v", got, v)
	}
	if v.Mgl() != (mgl32.Vec3{1, -2, 3.5}) {
		t.Errorf("Mgl() = %v", v.Mgl())
	}
}

func TestBoxExtend(t *testing.T) {
	b := EmptyBox()
	if !b.IsEmpty() {
		t.Fatal("EmptyBox should be empty")
	}
	b = b.Extend(V3(-1, 2, 0)).Extend(V3(3, -2, 4))

	if b.Min != V3(-1, -2, 0) {
		t.Errorf("Min = %v", b.Min)
	}
	if b.Max != V3(3, 2, 4) {
		t.Errorf("Max = %v", b.Max)
	}
	if c := b.Center(); c != V3(1, 0, 2) {
		t.Errorf("Center = %v, want (1,0,2)", c)
	}
	if s := b.Size(); s != V3(4, 4, 4) {
		t.Errorf("Size = %v, want (4,4,4)", s)
	}
}

func TestBoxEmptyCenter(t *testing.T) {
	b := EmptyBox()
	if c := b.Center(); c != (Vec3{}) {
		t.Errorf("empty Center = %v, want origin", c)
	}
	if u := b.Union(BoxAround(V3(1, 1, 1), V3(2, 2, 2))); u.Min != V3(0, 0, 0) {
		t.Errorf("Union with empty = %v", u)
	}
}
