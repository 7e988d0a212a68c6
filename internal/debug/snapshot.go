package debug

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Faultbox/dentaview/internal/config"
	"github.com/Faultbox/dentaview/internal/scene"
	"github.com/Faultbox/dentaview/internal/viewer"
	"github.com/Faultbox/dentaview/pkg/math"
)

// Format is an image encoding.
type Format int

const (
	FormatPNG Format = iota
	FormatWebP
)

// FormatFor picks the encoding from path's extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".webp":
		return FormatWebP, nil
	}
	return 0, fmt.Errorf("unsupported snapshot format %q", filepath.Ext(path))
}

// View is the projection direction.
type View string

const (
	ViewTop   View = "top"   // looking down -Y: X right, Z down
	ViewFront View = "front" // looking down -Z: X right, Y up
)

// ParseView parses a view name.
func ParseView(s string) (View, error) {
	switch v := View(strings.ToLower(s)); v {
	case ViewTop, ViewFront:
		return v, nil
	}
	return "", fmt.Errorf("unknown view %q", s)
}

// supersample is the geometry oversampling factor.
const supersample = 2

var (
	colorBackground = color.NRGBA{0xfa, 0xfa, 0xfa, 0xff}
	colorGrid       = color.NRGBA{0xd4, 0xd4, 0xd4, 0xff}
	colorMuted      = color.NRGBA{0x73, 0x73, 0x73, 0xff}
)

// Snapshotter draws orthographic schematics of frames.
type Snapshotter struct {
	cfg  config.SnapshotConfig
	view View
	face font.Face
}

// NewSnapshotter creates a snapshotter with the given view.
func NewSnapshotter(cfg config.SnapshotConfig, view View) *Snapshotter {
	return &Snapshotter{cfg: cfg, view: view, face: basicfont.Face7x13}
}

// project maps a world point to pixel space at scale k.
func (s *Snapshotter) project(p math.Vec3, k int) image.Point {
	ppu := s.cfg.PixelsPerUnit * float32(k)
	cx, cy := float32(s.cfg.Width*k)/2, float32(s.cfg.Height*k)/2
	switch s.view {
	case ViewFront:
		return image.Pt(int(cx+p.X*ppu), int(cy-p.Y*ppu))
	default:
		return image.Pt(int(cx+p.X*ppu), int(cy+p.Z*ppu))
	}
}

func (s *Snapshotter) rect(b math.Box, k int) image.Rectangle {
	return image.Rectangle{Min: s.project(b.Min, k), Max: s.project(b.Max, k)}.Canon()
}

// Render draws f. Geometry is drawn oversampled and scaled down; text is
// drawn at final resolution.
func (s *Snapshotter) Render(f scene.Frame) *image.NRGBA {
	w, h := s.cfg.Width, s.cfg.Height
	big := image.NewNRGBA(image.Rect(0, 0, w*supersample, h*supersample))
	draw.Draw(big, big.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)

	if !f.Loading {
		s.drawGeometry(big, f)
	}

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(out, out.Bounds(), big, big.Bounds(), draw.Src, nil)

	if f.Loading {
		s.text(out, "loading", image.Pt(w/2, h/2), colorMuted, nil)
		return out
	}
	for _, l := range f.Labels {
		outline := l.OutlineColor.NRGBA()
		s.text(out, l.Text, s.project(l.Position, 1), l.Color.NRGBA(), &outline)
	}
	for _, sg := range f.Segments {
		if sg.Caption == nil {
			continue
		}
		p := s.project(sg.Center.Add(sg.Caption.Offset), 1)
		s.text(out, sg.Caption.Title, p, scene.ColorSelection.NRGBA(), nil)
		s.text(out, sg.Caption.Subtitle, p.Add(image.Pt(0, 14)), colorMuted, nil)
	}
	return out
}

func (s *Snapshotter) drawGeometry(img *image.NRGBA, f scene.Frame) {
	k := supersample
	for _, hp := range f.Helpers {
		switch hp.Kind {
		case scene.HelperGrid:
			s.grid(img, hp.Size, hp.Divisions)
		case scene.HelperAxes:
			o := math.Vec3{}
			line(img, s.project(o, k), s.project(math.V3(hp.Size, 0, 0), k), scene.ColorRed.NRGBA())
			line(img, s.project(o, k), s.project(math.V3(0, hp.Size, 0), k), scene.ColorGreen.NRGBA())
			line(img, s.project(o, k), s.project(math.V3(0, 0, hp.Size), k), scene.ColorBlue.NRGBA())
		}
	}

	if p := f.Plane; p != nil {
		s.plane(img, p)
	}

	for _, m := range f.Meshes {
		mat := scene.Material{Color: scene.ColorTooth, Opacity: 1}
		if m.Material != nil {
			mat = *m.Material
		}
		c := mat.Color.NRGBA()
		if !mat.Wireframe {
			fill(img, s.rect(m.Bounds, k), mat.Color.WithAlpha(mat.Opacity*0.5).NRGBA())
		}
		for _, e := range BoxEdges(m.Bounds) {
			line(img, s.project(e[0], k), s.project(e[1], k), darken(c))
		}
	}

	for _, sg := range f.Segments {
		box := sg.Box()
		fill(img, s.rect(box, k), sg.Color.WithAlpha(sg.Opacity).NRGBA())
		if sg.Selected {
			for _, e := range BoxEdges(box) {
				line(img, s.project(e[0], k), s.project(e[1], k), scene.ColorSelection.NRGBA())
			}
		}
	}

	for _, a := range f.Arrows {
		tip := a.Origin.Add(a.Direction.Scale(a.Length))
		line(img, s.project(a.Origin, k), s.project(tip, k), a.Color.NRGBA())
		r := int(a.HeadWidth * s.cfg.PixelsPerUnit * float32(k) / 2)
		fill(img, image.Rectangle{Min: s.project(tip, k), Max: s.project(tip, k)}.Inset(-r), a.Color.NRGBA())
	}
}

func (s *Snapshotter) grid(img *image.NRGBA, size float32, divisions int) {
	if divisions <= 0 {
		return
	}
	half := size / 2
	if s.view == ViewFront {
		// Edge-on.
		line(img, s.project(math.V3(-half, 0, 0), supersample), s.project(math.V3(half, 0, 0), supersample), colorGrid)
		return
	}
	step := size / float32(divisions)
	for i := 0; i <= divisions; i++ {
		v := -half + float32(i)*step
		line(img, s.project(math.V3(v, 0, -half), supersample), s.project(math.V3(v, 0, half), supersample), colorGrid)
		line(img, s.project(math.V3(-half, 0, v), supersample), s.project(math.V3(half, 0, v), supersample), colorGrid)
	}
}

func (s *Snapshotter) plane(img *image.NRGBA, p *scene.Plane) {
	c := p.Color.WithAlpha(p.Opacity).NRGBA()
	half := p.Size / 2
	var a, b math.Vec3
	switch p.Axis {
	case viewer.AxisX:
		a, b = math.V3(p.Position.X, -half, -half), math.V3(p.Position.X, half, half)
	case viewer.AxisY:
		a, b = math.V3(-half, p.Position.Y, -half), math.V3(half, p.Position.Y, half)
	default:
		a, b = math.V3(-half, -half, p.Position.Z), math.V3(half, half, p.Position.Z)
	}
	r := image.Rectangle{Min: s.project(a, supersample), Max: s.project(b, supersample)}.Canon()
	if r.Dx() == 0 || r.Dy() == 0 {
		// Edge-on: draw a thick line.
		r = r.Inset(-supersample)
	}
	fill(img, r, c)
}

// text draws str centred on p, with an optional one-pixel outline.
func (s *Snapshotter) text(img *image.NRGBA, str string, p image.Point, c color.NRGBA, outline *color.NRGBA) {
	width := font.MeasureString(s.face, str).Ceil()
	dot := fixed.P(p.X-width/2, p.Y+s.face.Metrics().Ascent.Ceil()/2)
	if outline != nil {
		for _, d := range []image.Point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			dr := &font.Drawer{Dst: img, Src: image.NewUniform(*outline), Face: s.face,
				Dot: dot.Add(fixed.P(d.X, d.Y))}
			dr.DrawString(str)
		}
	}
	dr := &font.Drawer{Dst: img, Src: image.NewUniform(c), Face: s.face, Dot: dot}
	dr.DrawString(str)
}

func fill(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(c), image.Point{}, draw.Over)
}

// line draws a Bresenham line, clipped to img.
func line(img *image.NRGBA, a, b image.Point, c color.NRGBA) {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := sign(b.X-a.X), sign(b.Y-a.Y)
	e := dx + dy
	for {
		if a.In(img.Bounds()) {
			img.SetNRGBA(a.X, a.Y, c)
		}
		if a == b {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			a.X += sx
		}
		if e2 <= dx {
			e += dx
			a.Y += sy
		}
	}
}

func darken(c color.NRGBA) color.NRGBA {
	return color.NRGBA{c.R / 2, c.G / 2, c.B / 2, 0xff}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// Encode writes img in format.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatWebP:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("encoding WebP: %w", err)
		}
	default:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encoding PNG: %w", err)
		}
	}
	return nil
}

// Save renders f and writes it to path, creating parent directories.
func (s *Snapshotter) Save(path string, f scene.Frame) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	return Encode(file, s.Render(f), format)
}
