package locale

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Lang
		ok   bool
	}{
		{"vi", Vietnamese, true},
		{" EN ", English, true},
		{"fr", Default, false},
		{"", Default, false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Parse(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCatalogsComplete(t *testing.T) {
	for key := range catalogs[English] {
		if _, ok := catalogs[Vietnamese][key]; !ok {
			t.Errorf("Vietnamese catalog missing %q", key)
		}
	}
	for key := range catalogs[Vietnamese] {
		if _, ok := catalogs[English][key]; !ok {
			t.Errorf("English catalog missing %q", key)
		}
	}
}

func TestT(t *testing.T) {
	if got := T(Vietnamese, JawUpper); got != "Hàm Trên" {
		t.Errorf("T(vi, JawUpper) = %q", got)
	}
	if got := T(Lang("de"), JawLower); got != "Lower Jaw" {
		t.Errorf("unknown language should fall back to English, got %q", got)
	}
	if got := T(English, Key("no.such.key")); got != "no.such.key" {
		t.Errorf("missing key should return itself, got %q", got)
	}
}

func TestTf(t *testing.T) {
	if got := Tf(Vietnamese, ToothCaption, "21"); got != "Răng 21" {
		t.Errorf("Tf(vi, ToothCaption) = %q", got)
	}
	if got := Tf(English, AxisButton, "X"); got != "X Axis" {
		t.Errorf("Tf(en, AxisButton) = %q", got)
	}
}
