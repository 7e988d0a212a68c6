// Package scene derives the render command list for a viewer state.
//
// Compose is pure: the same State and Options always give the same Frame.
// A retained-mode renderer consumes the Frame on every state change.
package scene

import (
	gomath "math"

	"github.com/Faultbox/dentaview/internal/config"
	"github.com/Faultbox/dentaview/internal/loader"
	"github.com/Faultbox/dentaview/internal/locale"
	"github.com/Faultbox/dentaview/internal/teeth"
	"github.com/Faultbox/dentaview/internal/viewer"
	"github.com/Faultbox/dentaview/pkg/math"
)

// Segment box geometry relative to the tooth anchor.
var (
	SegmentSize   = math.V3(6, 7, 5)
	segmentOffset = math.V3(0, -2, -1.5)
	captionOffset = math.V3(0, 5, 0)
)

// Arrow geometry.
const (
	ArrowLength     = 4
	ArrowHeadLength = 1
	ArrowHeadWidth  = 0.8
)

// Frame is everything the renderer should draw.
type Frame struct {
	Loading bool `yaml:"loading,omitempty"`

	Lights   []Light    `yaml:"lights,omitempty"`
	Helpers  []Helper   `yaml:"helpers,omitempty"`
	Meshes   []MeshNode `yaml:"meshes,omitempty"`
	Labels   []Label    `yaml:"labels,omitempty"`
	Segments []Segment  `yaml:"segments,omitempty"`
	Arrows   []Arrow    `yaml:"arrows,omitempty"`
	Plane    *Plane     `yaml:"plane,omitempty"`
}

// HelperKind names a debug helper.
type HelperKind string

const (
	HelperAxes HelperKind = "axes"
	HelperGrid HelperKind = "grid"
)

// Helper is a world axes or ground grid helper.
type Helper struct {
	Kind      HelperKind `yaml:"kind"`
	Size      float32    `yaml:"size"`
	Divisions int        `yaml:"divisions,omitempty"`
}

// Material is a per-mesh material override.
type Material struct {
	Color       Color   `yaml:"color"`
	Opacity     float32 `yaml:"opacity"`
	Transparent bool    `yaml:"transparent"`
	Wireframe   bool    `yaml:"wireframe"`
	Metalness   float32 `yaml:"metalness"`
	Roughness   float32 `yaml:"roughness"`
}

// MeshNode places one loaded model.
type MeshNode struct {
	Key         string      `yaml:"key"`
	URL         string      `yaml:"url"`
	MaterialURL string      `yaml:"material_url,omitempty"`
	Kind        loader.Kind `yaml:"kind"`
	Jaw         teeth.Jaw   `yaml:"jaw"`
	Translation math.Vec3   `yaml:"translation"`
	Bounds      math.Box    `yaml:"bounds"` // world space
	Material    *Material   `yaml:"material,omitempty"`
}

// Label is a tooth number drawn in 3D space.
type Label struct {
	Text         string    `yaml:"text"`
	Position     math.Vec3 `yaml:"position"`
	FontSize     float32   `yaml:"font_size"`
	Color        Color     `yaml:"color"`
	OutlineColor Color     `yaml:"outline_color"`
	OutlineWidth float32   `yaml:"outline_width"`
}

// Caption is the floating annotation over a selected segment.
type Caption struct {
	Title    string    `yaml:"title"`
	Subtitle string    `yaml:"subtitle"`
	Offset   math.Vec3 `yaml:"offset"`
}

// Segment is one clickable tooth volume.
type Segment struct {
	Index    int       `yaml:"index"`
	Label    string    `yaml:"label"`
	Jaw      teeth.Jaw `yaml:"jaw"`
	Center   math.Vec3 `yaml:"center"`
	Size     math.Vec3 `yaml:"size"`
	Color    Color     `yaml:"color"`
	Opacity  float32   `yaml:"opacity"`
	Selected bool      `yaml:"selected,omitempty"`
	Caption  *Caption  `yaml:"caption,omitempty"`
}

// Box returns the segment's world-space bounds.
func (s Segment) Box() math.Box {
	return math.BoxAround(s.Center, s.Size)
}

// Arrow is one axis indicator.
type Arrow struct {
	Origin     math.Vec3 `yaml:"origin"`
	Direction  math.Vec3 `yaml:"direction"`
	Length     float32   `yaml:"length"`
	HeadLength float32   `yaml:"head_length"`
	HeadWidth  float32   `yaml:"head_width"`
	Color      Color     `yaml:"color"`
}

// Plane is the cross-section indicator.
type Plane struct {
	Axis        viewer.Axis `yaml:"axis"`
	Position    math.Vec3   `yaml:"position"`
	Rotation    math.Vec3   `yaml:"rotation"` // Euler XYZ, radians
	Size        float32     `yaml:"size"`
	Color       Color       `yaml:"color"`
	Opacity     float32     `yaml:"opacity"`
	DoubleSided bool        `yaml:"double_sided"`
}

// Options are the fixed inputs to Compose.
type Options struct {
	Scene config.SceneConfig
	Lang  locale.Lang
}

// DefaultOptions returns options from the default config.
func DefaultOptions() Options {
	cfg := config.Default()
	return Options{Scene: cfg.Scene, Lang: locale.Lang(cfg.Locale.Language)}
}

// Compose derives the frame for st.
func Compose(st viewer.State, opts Options) Frame {
	if st.AnyLoading() {
		return Frame{Loading: true}
	}

	f := Frame{Lights: LightingRig(st.LightingIntensity)}
	if !st.HasModels() {
		return f
	}

	for _, m := range st.Models {
		f.Meshes = append(f.Meshes, meshNode(st, m))
	}

	f.Helpers = []Helper{
		{Kind: HelperAxes, Size: opts.Scene.AxesHelperSize},
		{Kind: HelperGrid, Size: opts.Scene.GridSize, Divisions: opts.Scene.GridDivisions},
	}

	catalog := teeth.All()

	if st.LabelsVisible {
		for _, t := range catalog {
			f.Labels = append(f.Labels, Label{
				Text:         t.Label,
				Position:     anchor(st, t),
				FontSize:     2.4,
				Color:        ColorLabel,
				OutlineColor: ColorWhite,
				OutlineWidth: 0.15,
			})
		}
	}

	if st.SegmentsVisible {
		n := min(st.SegmentRevealCount, len(catalog))
		for i, t := range catalog[:n] {
			f.Segments = append(f.Segments, segment(st, i, t, opts.Lang))
		}
	}

	if st.AxesVisible {
		for _, t := range catalog {
			f.Arrows = append(f.Arrows, arrows(anchor(st, t))...)
		}
	}

	if st.CrossSection.Enabled {
		f.Plane = plane(st.CrossSection, opts.Scene.PlaneSize)
	}

	return f
}

// anchor lifts upper-jaw anchors by the jaw offset.
func anchor(st viewer.State, t teeth.Tooth) math.Vec3 {
	if t.Jaw == teeth.Upper {
		return t.Anchor.Add(math.V3(0, st.UpperJawOffset, 0))
	}
	return t.Anchor
}

func meshNode(st viewer.State, m loader.Model) MeshNode {
	tr := m.Bounds.Center().Neg()
	if m.Jaw == teeth.Upper {
		rest := st.UpperJawRestPosition
		if m.Kind == loader.SingleMesh {
			rest = st.SingleMeshRestPosition
		}
		tr = tr.Add(math.V3(0, rest+st.UpperJawOffset, 0))
	}

	n := MeshNode{
		Key:         m.Key,
		URL:         m.Primary.URL,
		Kind:        m.Kind,
		Jaw:         m.Jaw,
		Translation: tr,
		Bounds:      m.Bounds.Translate(tr),
	}
	if m.Material != nil {
		n.MaterialURL = m.Material.URL
	}
	// Grouped meshes keep their own materials
	if m.Kind == loader.SingleMesh {
		n.Material = singleMeshMaterial(st)
	}
	return n
}

func singleMeshMaterial(st viewer.State) *Material {
	mat := &Material{
		Color:     ColorTooth,
		Opacity:   1,
		Wireframe: st.WireframeEnabled,
		Roughness: 0.4,
	}
	if st.XrayEnabled {
		mat.Color = ColorXray
		mat.Opacity = 0.3
		mat.Transparent = true
	}
	return mat
}

func segment(st viewer.State, i int, t teeth.Tooth, lang locale.Lang) Segment {
	s := Segment{
		Index:   i,
		Label:   t.Label,
		Jaw:     t.Jaw,
		Center:  anchor(st, t).Add(segmentOffset),
		Size:    SegmentSize,
		Color:   SegmentColor(i),
		Opacity: 0.8,
	}
	if st.SelectedTooth == i {
		s.Selected = true
		s.Color = ColorSelection
		jaw := locale.JawLower
		if t.Jaw == teeth.Upper {
			jaw = locale.JawUpper
		}
		s.Caption = &Caption{
			Title:    locale.Tf(lang, locale.ToothCaption, t.Label),
			Subtitle: locale.T(lang, jaw),
			Offset:   captionOffset,
		}
	}
	return s
}

func arrows(base math.Vec3) []Arrow {
	mk := func(dir math.Vec3, c Color) Arrow {
		return Arrow{
			Origin:     base,
			Direction:  dir,
			Length:     ArrowLength,
			HeadLength: ArrowHeadLength,
			HeadWidth:  ArrowHeadWidth,
			Color:      c,
		}
	}
	return []Arrow{
		mk(math.V3(1, 0, 0), ColorRed),
		mk(math.V3(0, 1, 0), ColorGreen),
		mk(math.V3(0, 0, 1), ColorBlue),
	}
}

func plane(cs viewer.CrossSection, size float32) *Plane {
	p := &Plane{
		Axis:        cs.Axis,
		Size:        size,
		Color:       ColorPlane,
		Opacity:     0.3,
		DoubleSided: true,
	}
	switch cs.Axis {
	case viewer.AxisX:
		p.Position = math.V3(cs.Position, 0, 0)
		p.Rotation = math.V3(0, 0, gomath.Pi/2)
	case viewer.AxisY:
		p.Position = math.V3(0, cs.Position, 0)
		p.Rotation = math.V3(gomath.Pi/2, 0, 0)
	default:
		p.Position = math.V3(0, 0, cs.Position)
	}
	return p
}
