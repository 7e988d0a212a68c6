package scene

import (
	gomath "math"
	"reflect"
	"testing"

	"github.com/Faultbox/dentaview/internal/loader"
	"github.com/Faultbox/dentaview/internal/locale"
	"github.com/Faultbox/dentaview/internal/resource"
	"github.com/Faultbox/dentaview/internal/teeth"
	"github.com/Faultbox/dentaview/internal/viewer"
	"github.com/Faultbox/dentaview/pkg/math"
)

func model(kind loader.Kind, jaw teeth.Jaw, key string) loader.Model {
	return loader.Model{
		Kind:    kind,
		Jaw:     jaw,
		Key:     key,
		Primary: resource.Handle{URL: resource.URLScheme + key, Name: key},
		Bounds:  math.Box{Min: math.V3(0, 0, 0), Max: math.V3(10, 20, 4)},
	}
}

func loadedState(models ...loader.Model) viewer.State {
	return viewer.State{
		Models:                 models,
		SelectedTooth:          viewer.NoTooth,
		LightingIntensity:      1,
		UpperJawRestPosition:   12.5,
		SingleMeshRestPosition: 10,
		CrossSection:           viewer.CrossSection{Axis: viewer.AxisY},
	}
}

func TestComposeLoading(t *testing.T) {
	st := loadedState(model(loader.SingleMesh, teeth.Lower, "a.stl"))
	st.LabelsVisible = true

	st.ModelsLoading = true
	if f := Compose(st, DefaultOptions()); !reflect.DeepEqual(f, Frame{Loading: true}) {
		t.Errorf("loading frame = %+v, want indicator only", f)
	}

	st.ModelsLoading = false
	st.AxesTransitionBusy = true
	if f := Compose(st, DefaultOptions()); !f.Loading || len(f.Meshes) != 0 {
		t.Error("axes transition should show the loading indicator only")
	}
}

func TestComposeEmpty(t *testing.T) {
	st := loadedState()
	st.LabelsVisible = true
	st.LightingIntensity = 2

	f := Compose(st, DefaultOptions())
	if f.Loading {
		t.Fatal("empty scene is not loading")
	}
	if len(f.Lights) != 6 {
		t.Fatalf("got %d lights, want 6", len(f.Lights))
	}
	if f.Lights[0].Kind != LightAmbient || f.Lights[0].Intensity != 0.8 {
		t.Errorf("ambient = %+v, want intensity 0.8", f.Lights[0])
	}
	if len(f.Meshes)+len(f.Helpers)+len(f.Labels) != 0 {
		t.Error("nothing but lights should render without models")
	}
}

func TestJawOffsetOnlyMovesUpper(t *testing.T) {
	upper := model(loader.SingleMesh, teeth.Upper, "patient_upper_jaw.stl")
	lower := model(loader.SingleMesh, teeth.Lower, "patient_lower_jaw.stl")

	st := loadedState(upper, lower)
	before := Compose(st, DefaultOptions())
	st.UpperJawOffset = 15
	after := Compose(st, DefaultOptions())

	if before.Meshes[1].Translation != after.Meshes[1].Translation {
		t.Errorf("lower jaw moved: %+v -> %+v", before.Meshes[1].Translation, after.Meshes[1].Translation)
	}
	dy := after.Meshes[0].Translation.Y - before.Meshes[0].Translation.Y
	if dy != 15 {
		t.Errorf("upper jaw moved by %v, want 15", dy)
	}
}

func TestMeshTransform(t *testing.T) {
	st := loadedState(
		model(loader.GroupedMesh, teeth.Upper, "upper_jaw.obj"),
		model(loader.SingleMesh, teeth.Upper, "upper_jaw.stl"),
		model(loader.SingleMesh, teeth.Lower, "lower_jaw.stl"),
	)
	st.UpperJawRestPosition = 12
	st.UpperJawOffset = 2
	f := Compose(st, DefaultOptions())

	// Bounds center is (5,10,2)
	want := []math.Vec3{
		math.V3(-5, -10+12+2, -2),
		math.V3(-5, -10+10+2, -2),
		math.V3(-5, -10, -2),
	}
	for i, w := range want {
		if got := f.Meshes[i].Translation; got != w {
			t.Errorf("mesh %d translation = %+v, want %+v", i, got, w)
		}
	}
	if c := f.Meshes[2].Bounds.Center(); c != (math.Vec3{}) {
		t.Errorf("lower jaw world bounds center = %+v, want origin", c)
	}
	if f.Meshes[0].URL != resource.URLScheme+"upper_jaw.obj" {
		t.Errorf("URL = %q", f.Meshes[0].URL)
	}
}

func TestMaterialOverridesSingleMeshOnly(t *testing.T) {
	st := loadedState(
		model(loader.GroupedMesh, teeth.Lower, "lower.obj"),
		model(loader.SingleMesh, teeth.Lower, "lower.stl"),
	)

	f := Compose(st, DefaultOptions())
	if f.Meshes[0].Material != nil {
		t.Error("grouped mesh should carry no material override")
	}
	mat := f.Meshes[1].Material
	if mat == nil || mat.Color != ColorTooth || mat.Opacity != 1 || mat.Transparent || mat.Wireframe {
		t.Errorf("default material = %+v", mat)
	}

	st.WireframeEnabled = true
	st.XrayEnabled = true
	f = Compose(st, DefaultOptions())
	if f.Meshes[0].Material != nil {
		t.Error("grouped mesh should ignore visual modes")
	}
	mat = f.Meshes[1].Material
	if !mat.Wireframe || !mat.Transparent || mat.Opacity != 0.3 || mat.Color != ColorXray {
		t.Errorf("x-ray wireframe material = %+v", mat)
	}
}

func TestHelpers(t *testing.T) {
	f := Compose(loadedState(model(loader.SingleMesh, teeth.Lower, "a.stl")), DefaultOptions())
	want := []Helper{
		{Kind: HelperAxes, Size: 100},
		{Kind: HelperGrid, Size: 200, Divisions: 20},
	}
	if !reflect.DeepEqual(f.Helpers, want) {
		t.Errorf("Helpers = %+v, want %+v", f.Helpers, want)
	}
}

func TestLabels(t *testing.T) {
	st := loadedState(model(loader.SingleMesh, teeth.Lower, "a.stl"))
	if f := Compose(st, DefaultOptions()); len(f.Labels) != 0 {
		t.Error("labels hidden by default")
	}

	st.LabelsVisible = true
	st.UpperJawOffset = 4
	f := Compose(st, DefaultOptions())
	if len(f.Labels) != teeth.Count() {
		t.Fatalf("got %d labels, want %d", len(f.Labels), teeth.Count())
	}
	for i, l := range f.Labels {
		tooth := teeth.At(i)
		want := tooth.Anchor
		if tooth.Jaw == teeth.Upper {
			want.Y += 4
		}
		if l.Text != tooth.Label || l.Position != want {
			t.Errorf("label %d = %q at %+v, want %q at %+v", i, l.Text, l.Position, tooth.Label, want)
		}
	}
}

func TestSegments(t *testing.T) {
	st := loadedState(model(loader.SingleMesh, teeth.Lower, "a.stl"))
	st.SegmentsVisible = true
	st.SegmentRevealCount = 6
	st.SelectedTooth = 2

	opts := DefaultOptions()
	opts.Lang = locale.Vietnamese
	f := Compose(st, opts)

	if len(f.Segments) != 6 {
		t.Fatalf("got %d segments, want 6", len(f.Segments))
	}
	for i, s := range f.Segments {
		if s.Index != i || s.Size != SegmentSize || s.Opacity != 0.8 {
			t.Errorf("segment %d = %+v", i, s)
		}
		if i != 2 && s.Color != SegmentColor(i) {
			t.Errorf("segment %d color = %+v, want %+v", i, s.Color, SegmentColor(i))
		}
	}

	sel := f.Segments[2]
	if !sel.Selected || sel.Color != ColorSelection || sel.Caption == nil {
		t.Fatalf("selected segment = %+v", sel)
	}
	tooth := teeth.At(2)
	if sel.Caption.Title != "Răng "+tooth.Label || sel.Caption.Subtitle != "Hàm Dưới" {
		t.Errorf("caption = %+v", sel.Caption)
	}
	wantCenter := tooth.Anchor.Add(math.V3(0, -2, -1.5))
	if sel.Center != wantCenter {
		t.Errorf("center = %+v, want %+v", sel.Center, wantCenter)
	}

	// Count beyond the catalog is clamped
	st.SegmentRevealCount = 100
	if f := Compose(st, opts); len(f.Segments) != teeth.Count() {
		t.Errorf("got %d segments, want %d", len(f.Segments), teeth.Count())
	}
}

func TestArrows(t *testing.T) {
	st := loadedState(model(loader.SingleMesh, teeth.Lower, "a.stl"))
	st.AxesVisible = true
	f := Compose(st, DefaultOptions())

	if len(f.Arrows) != 3*teeth.Count() {
		t.Fatalf("got %d arrows, want %d", len(f.Arrows), 3*teeth.Count())
	}
	x, y, z := f.Arrows[0], f.Arrows[1], f.Arrows[2]
	if x.Color != ColorRed || y.Color != ColorGreen || z.Color != ColorBlue {
		t.Error("arrow colors should be red, green, blue")
	}
	if x.Length != 4 || x.HeadLength != 1 || x.HeadWidth != 0.8 {
		t.Errorf("arrow geometry = %+v", x)
	}
	if x.Origin != teeth.At(0).Anchor {
		t.Errorf("arrow origin = %+v, want %+v", x.Origin, teeth.At(0).Anchor)
	}
}

func TestCrossSectionPlane(t *testing.T) {
	st := loadedState(model(loader.SingleMesh, teeth.Lower, "a.stl"))
	st.CrossSection = viewer.CrossSection{Enabled: false, Axis: viewer.AxisX, Position: 7}
	if f := Compose(st, DefaultOptions()); f.Plane != nil {
		t.Error("plane hidden while disabled")
	}

	tests := []struct {
		axis viewer.Axis
		pos  math.Vec3
		rot  math.Vec3
	}{
		{viewer.AxisX, math.V3(7, 0, 0), math.V3(0, 0, gomath.Pi/2)},
		{viewer.AxisY, math.V3(0, 7, 0), math.V3(gomath.Pi/2, 0, 0)},
		{viewer.AxisZ, math.V3(0, 0, 7), math.V3(0, 0, 0)},
	}
	for _, tt := range tests {
		st.CrossSection = viewer.CrossSection{Enabled: true, Axis: tt.axis, Position: 7}
		p := Compose(st, DefaultOptions()).Plane
		if p == nil {
			t.Fatalf("%v: no plane", tt.axis)
		}
		if p.Position != tt.pos || p.Rotation != tt.rot {
			t.Errorf("%v: plane at %+v rot %+v, want %+v rot %+v", tt.axis, p.Position, p.Rotation, tt.pos, tt.rot)
		}
		if p.Size != 200 || p.Opacity != 0.3 || p.Color != ColorPlane {
			t.Errorf("%v: plane = %+v", tt.axis, p)
		}
	}
}

func TestHSL(t *testing.T) {
	tests := []struct {
		h, s, l float32
		want    Color
	}{
		{0, 1, 0.5, Color{1, 0, 0, 1}},
		{120, 1, 0.5, Color{0, 1, 0, 1}},
		{240, 1, 0.5, Color{0, 0, 1, 1}},
		{360, 1, 0.5, Color{1, 0, 0, 1}},
		{0, 0, 1, Color{1, 1, 1, 1}},
	}
	for _, tt := range tests {
		got := HSL(tt.h, tt.s, tt.l)
		if d := got.R - tt.want.R + got.G - tt.want.G + got.B - tt.want.B; d > 1e-5 || d < -1e-5 {
			t.Errorf("HSL(%v,%v,%v) = %+v, want %+v", tt.h, tt.s, tt.l, got, tt.want)
		}
	}
	if Hex(0xdc2626).NRGBA().R != 0xdc {
		t.Error("Hex round trip")
	}
}
