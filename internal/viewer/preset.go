package viewer

import (
	gomath "math"
	"time"

	"github.com/charmbracelet/harmonica"
	"go.uber.org/zap"

	"github.com/Faultbox/dentaview/pkg/math"
)

// glideMotion springs each eye coordinate toward a preset position.
type glideMotion struct {
	spring harmonica.Spring
	pos    [3]float64
	vel    [3]float64
	target [3]float64
	frames int
}

const glideEpsilon = 0.01

// BindCamera attaches the renderer's camera. A nil camera unbinds it.
func (c *Controller) BindCamera(cam Camera) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.glide.cancel()
	c.motion = nil
	c.camera = cam
	c.refreshIdleLocked()
}

// ApplyCameraPreset moves the bound camera to a preset viewpoint aimed at the
// origin. It is a no-op without models, without a bound camera, or for an
// unknown preset. With camera glide enabled the move is animated; a new
// preset cancels a running glide.
func (c *Controller) ApplyCameraPreset(p Preset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	target, ok := p.Position()
	switch {
	case !c.st.HasModels():
		c.ignore("camera-preset", "no models")
		return
	case c.camera == nil:
		c.ignore("camera-preset", "no camera")
		return
	case !ok:
		c.ignore("camera-preset", "unknown preset")
		return
	}

	c.glide.cancel()
	c.motion = nil

	if !c.cam.Glide || c.cam.GlideFPS <= 0 {
		c.camera.SetPosition(target)
		c.camera.LookAt(math.Vec3{})
		c.refreshIdleLocked()
		return
	}

	from := c.camera.Position()
	c.motion = &glideMotion{
		spring: harmonica.NewSpring(harmonica.FPS(c.cam.GlideFPS), c.cam.GlideFrequency, c.cam.GlideDamping),
		pos:    [3]float64{float64(from.X), float64(from.Y), float64(from.Z)},
		target: [3]float64{float64(target.X), float64(target.Y), float64(target.Z)},
	}
	c.log.Debug("camera glide", zap.String("preset", string(p)))
	c.refreshIdleLocked()
	c.schedule(&c.glide, c.glideFrame(), c.glideTickLocked)
}

func (c *Controller) glideFrame() time.Duration {
	return time.Second / time.Duration(c.cam.GlideFPS)
}

func (c *Controller) glideTickLocked() bool {
	m := c.motion
	if m == nil || c.camera == nil {
		c.motion = nil
		return false
	}

	settled := true
	for i := range m.pos {
		m.pos[i], m.vel[i] = m.spring.Update(m.pos[i], m.vel[i], m.target[i])
		if gomath.Abs(m.pos[i]-m.target[i]) > glideEpsilon || gomath.Abs(m.vel[i]) > glideEpsilon {
			settled = false
		}
	}
	m.frames++

	// Give up after five seconds of frames and land exactly.
	if settled || m.frames >= 5*c.cam.GlideFPS {
		m.pos = m.target
		c.motion = nil
	}

	c.camera.SetPosition(math.V3(float32(m.pos[0]), float32(m.pos[1]), float32(m.pos[2])))
	c.camera.LookAt(math.Vec3{})

	if c.motion != nil {
		c.schedule(&c.glide, c.glideFrame(), c.glideTickLocked)
	}
	return false
}
