package viewer

import (
	gomath "math"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/dentaview/internal/config"
	"github.com/Faultbox/dentaview/pkg/math"
)

// Camera is the programmatic handle to the renderer's camera controls.
// The controller calls it with its lock held; implementations must not call
// back into the Controller.
type Camera interface {
	Position() math.Vec3
	SetPosition(p math.Vec3)
	LookAt(target math.Vec3)
}

// Preset is a named camera viewpoint.
type Preset string

const (
	PresetFront    Preset = "front"
	PresetSide     Preset = "side"
	PresetTop      Preset = "top"
	PresetOcclusal Preset = "occlusal"
)

// Presets lists the presets in control-panel order.
var Presets = []Preset{PresetFront, PresetSide, PresetTop, PresetOcclusal}

// Position returns the preset's eye position. ok is false for unknown presets.
func (p Preset) Position() (pos math.Vec3, ok bool) {
	switch p {
	case PresetFront:
		return math.V3(0, 0, 80), true
	case PresetSide:
		return math.V3(80, 0, 0), true
	case PresetTop:
		return math.V3(0, 80, 0), true
	case PresetOcclusal:
		return math.V3(0, 40, 40), true
	}
	return math.Vec3{}, false
}

// ParsePreset parses a preset name, ignoring case.
func ParsePreset(s string) (Preset, bool) {
	p := Preset(strings.ToLower(s))
	_, ok := p.Position()
	return p, ok
}

// OrbitCamera orbits a target point. It implements Camera.
type OrbitCamera struct {
	Eye    math.Vec3
	Target math.Vec3

	// Projection
	FOV  float32 // vertical, degrees
	Near float32
	Far  float32

	// Constraints
	MinDistance float32
	MaxDistance float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a camera at cfg.Start looking at the origin.
func NewOrbitCamera(cfg config.CameraConfig) *OrbitCamera {
	return &OrbitCamera{
		Eye:             cfg.Start,
		FOV:             cfg.FOV,
		Near:            cfg.Near,
		Far:             cfg.Far,
		MinDistance:     5.0,
		MaxDistance:     500.0,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

func (c *OrbitCamera) Position() math.Vec3 { return c.Eye }

func (c *OrbitCamera) SetPosition(p math.Vec3) { c.Eye = p }

func (c *OrbitCamera) LookAt(target math.Vec3) { c.Target = target }

// Distance returns the eye-to-target distance.
func (c *OrbitCamera) Distance() float32 {
	return c.Eye.Distance(c.Target)
}

// up picks an up vector that is not parallel to the view direction.
func (c *OrbitCamera) up() mgl32.Vec3 {
	dir := c.Target.Sub(c.Eye).Normalize()
	if dir.X*dir.X+dir.Z*dir.Z < 1e-6 {
		// Looking straight down or up
		return mgl32.Vec3{0, 0, -1}
	}
	return mgl32.Vec3{0, 1, 0}
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye.Mgl(), c.Target.Mgl(), c.up())
}

// ProjectionMatrix returns the perspective projection for the given aspect ratio.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// Ray returns the world-space ray through pixel (px, py) of a width x height
// viewport, with py measured from the top edge.
func (c *OrbitCamera) Ray(px, py float32, width, height int) (origin, dir math.Vec3, err error) {
	view := c.ViewMatrix()
	proj := c.ProjectionMatrix(float32(width) / float32(height))
	winY := float32(height) - py

	near, err := mgl32.UnProject(mgl32.Vec3{px, winY, 0}, view, proj, 0, 0, width, height)
	if err != nil {
		return math.Vec3{}, math.Vec3{}, err
	}
	far, err := mgl32.UnProject(mgl32.Vec3{px, winY, 1}, view, proj, 0, 0, width, height)
	if err != nil {
		return math.Vec3{}, math.Vec3{}, err
	}
	return math.FromMgl(near), math.FromMgl(far.Sub(near)).Normalize(), nil
}

// HandleDrag orbits the eye around the target based on a mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	off := c.Eye.Sub(c.Target)
	r := off.Length()
	if r == 0 {
		return
	}
	yaw := gomath.Atan2(float64(off.X), float64(off.Z))
	pitch := gomath.Asin(float64(off.Y / r))

	yaw -= float64(deltaX * c.DragSensitivity)
	pitch += float64(deltaY * c.DragSensitivity)

	// Clamp pitch short of the poles
	limit := gomath.Pi/2 - 0.01
	pitch = gomath.Max(-limit, gomath.Min(limit, pitch))

	c.Eye = c.Target.Add(math.V3(
		r*float32(gomath.Cos(pitch)*gomath.Sin(yaw)),
		r*float32(gomath.Sin(pitch)),
		r*float32(gomath.Cos(pitch)*gomath.Cos(yaw)),
	))
}

// HandleZoom moves the eye along the view direction based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	off := c.Eye.Sub(c.Target)
	d := off.Length()
	if d == 0 {
		return
	}
	nd := d - delta*d*c.ZoomSensitivity
	if nd < c.MinDistance {
		nd = c.MinDistance
	}
	if nd > c.MaxDistance {
		nd = c.MaxDistance
	}
	c.Eye = c.Target.Add(off.Scale(nd / d))
}
