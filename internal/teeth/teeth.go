// Package teeth holds the fixed anatomical tooth catalog the viewer anchors
// labels, segment volumes and axis arrows to.
package teeth

import (
	"fmt"

	"github.com/Faultbox/dentaview/pkg/math"
)

// Jaw is the dental arch a tooth or model belongs to.
type Jaw int

const (
	Lower Jaw = iota
	Upper
)

// String returns the jaw name.
func (j Jaw) String() string {
	if j == Upper {
		return "upper"
	}
	return "lower"
}

// MarshalYAML encodes the jaw by name.
func (j Jaw) MarshalYAML() (interface{}, error) {
	return j.String(), nil
}

// ParseJaw parses "upper" or "lower".
func ParseJaw(s string) (Jaw, error) {
	switch s {
	case "upper":
		return Upper, nil
	case "lower":
		return Lower, nil
	}
	return Lower, fmt.Errorf("unknown jaw %q", s)
}

// Tooth is one catalog record.
type Tooth struct {
	Label  string    `yaml:"label"`
	Anchor math.Vec3 `yaml:"anchor"`
	Jaw    Jaw       `yaml:"jaw"`
}

// catalog is in reveal order: lower left, lower right, upper left, upper right.
var catalog = []Tooth{
	{"31", math.V3(2.0, 2, 25), Lower},
	{"32", math.V3(8, 2.5, 24), Lower},
	{"33", math.V3(14.8, 2.5, 21.5), Lower},
	{"34", math.V3(19, 2.5, 15.5), Lower},
	{"35", math.V3(22.8, 3, 7.2), Lower},
	{"36", math.V3(24.8, 3.5, 0), Lower},
	{"37", math.V3(28, 5.5, -10.2), Lower},
	{"41", math.V3(-2.9, 2, 25), Lower},
	{"42", math.V3(-9.2, 2, 23.5), Lower},
	{"43", math.V3(-15, 2, 21.2), Lower},
	{"44", math.V3(-20, 2, 13.5), Lower},
	{"45", math.V3(-23, 2.2, 6), Lower},
	{"46", math.V3(-26, 3.2, 0), Lower},
	{"47", math.V3(-30, 6.2, -12), Lower},
	{"21", math.V3(5.0, 8.6, 25.5), Upper},
	{"22", math.V3(12.5, 8.6, 23.2), Upper},
	{"23", math.V3(19.5, 8.6, 17.5), Upper},
	{"24", math.V3(25, 8.6, 10.5), Upper},
	{"25", math.V3(28, 8.6, 2.5), Upper},
	{"26", math.V3(30, 8.6, -3), Upper},
	{"11", math.V3(-3.0, 8.6, 26), Upper},
	{"12", math.V3(-12.0, 8.6, 22), Upper},
	{"13", math.V3(-17.8, 8.6, 18), Upper},
	{"14", math.V3(-23.0, 9.6, 10.5), Upper},
	{"15", math.V3(-27.0, 8.6, 2.5), Upper},
	{"16", math.V3(-28.5, 9, -3.5), Upper},
	{"17", math.V3(-32, 11, -14.5), Upper},
}

var byLabel = func() map[string]int {
	m := make(map[string]int, len(catalog))
	for i, t := range catalog {
		if _, dup := m[t.Label]; dup {
			panic("teeth: duplicate label " + t.Label)
		}
		m[t.Label] = i
	}
	return m
}()

// Count returns the number of catalog records.
func Count() int {
	return len(catalog)
}

// All returns a copy of the catalog in reveal order.
func All() []Tooth {
	out := make([]Tooth, len(catalog))
	copy(out, catalog)
	return out
}

// At returns record i. It panics on an out-of-range index like a slice would.
func At(i int) Tooth {
	return catalog[i]
}

// Lookup returns the catalog index for a label.
func Lookup(label string) (int, bool) {
	i, ok := byLabel[label]
	return i, ok
}
