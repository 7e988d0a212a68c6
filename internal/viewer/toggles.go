package viewer

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/dentaview/internal/teeth"
)

// ToggleLabels flips label visibility after the simulated relabeling delay.
func (c *Controller) ToggleLabels() {
	c.update("labels", func() bool {
		switch {
		case !c.st.HasModels():
			return c.ignore("labels", "no models")
		case c.st.LabelsBusy:
			return c.ignore("labels", "busy")
		}
		c.st.LabelsBusy = true
		c.schedule(&c.labels, c.cfg.LabelDelay, func() bool {
			c.st.LabelsVisible = !c.st.LabelsVisible
			c.st.LabelsBusy = false
			return true
		})
		return true
	})
}

// ToggleSegments hides the segment volumes immediately if they are shown or
// revealing, otherwise starts a staggered reveal from zero.
func (c *Controller) ToggleSegments() {
	c.update("segments", func() bool {
		if !c.st.HasModels() {
			return c.ignore("segments", "no models")
		}
		if c.st.SegmentsVisible {
			c.hideSegmentsLocked()
			return true
		}
		c.st.SegmentsVisible = true
		c.st.SegmentRevealCount = 0
		c.st.SegmentRevealBusy = true
		c.schedule(&c.reveal, c.cfg.RevealInterval, c.revealTickLocked)
		return true
	})
}

func (c *Controller) revealTickLocked() bool {
	n := teeth.Count()
	c.st.SegmentRevealCount = min(c.st.SegmentRevealCount+c.cfg.RevealStep, n)
	if c.st.SegmentRevealCount >= n {
		c.st.SegmentRevealBusy = false
		return true
	}
	c.schedule(&c.reveal, c.cfg.RevealInterval, c.revealTickLocked)
	return true
}

// hideSegmentsLocked cancels any reveal and clears segment state.
func (c *Controller) hideSegmentsLocked() {
	c.reveal.cancel()
	c.st.SegmentsVisible = false
	c.st.SegmentRevealCount = 0
	c.st.SegmentRevealBusy = false
	c.st.SelectedTooth = NoTooth
}

// ToggleAxes flips axis-arrow visibility after the simulated estimation delay.
func (c *Controller) ToggleAxes() {
	c.update("axes", func() bool {
		switch {
		case !c.st.HasModels():
			return c.ignore("axes", "no models")
		case c.st.AxesTransitionBusy:
			return c.ignore("axes", "busy")
		}
		c.st.AxesTransitionBusy = true
		c.schedule(&c.axes, c.cfg.AxesDelay, func() bool {
			c.st.AxesVisible = !c.st.AxesVisible
			c.st.AxesTransitionBusy = false
			return true
		})
		return true
	})
}

// SetUpperJawOffset stores v, snapped and clamped to the jaw offset range.
func (c *Controller) SetUpperJawOffset(v float32) {
	c.update("jaw-offset", func() bool {
		switch {
		case !c.st.HasModels():
			return c.ignore("jaw-offset", "no models")
		case math32.IsNaN(v):
			return c.ignore("jaw-offset", "not a number")
		}
		v = c.cfg.JawOffset.Clamp(v)
		if v == c.st.UpperJawOffset {
			return false
		}
		c.st.UpperJawOffset = v
		return true
	})
}

// ToggleCrossSection flips the clipping plane.
func (c *Controller) ToggleCrossSection() {
	c.update("cross-section", func() bool {
		if !c.st.HasModels() {
			return c.ignore("cross-section", "no models")
		}
		c.st.CrossSection.Enabled = !c.st.CrossSection.Enabled
		return true
	})
}

// SetCrossSectionAxis sets the plane normal. It applies even while the plane is disabled.
func (c *Controller) SetCrossSectionAxis(a Axis) {
	c.update("cross-section-axis", func() bool {
		switch {
		case !c.st.HasModels():
			return c.ignore("cross-section-axis", "no models")
		case !a.Valid():
			return c.ignore("cross-section-axis", "invalid axis")
		case a == c.st.CrossSection.Axis:
			return false
		}
		c.st.CrossSection.Axis = a
		return true
	})
}

// SetCrossSectionPosition sets the plane offset along its axis. It applies
// even while the plane is disabled.
func (c *Controller) SetCrossSectionPosition(p float32) {
	c.update("cross-section-position", func() bool {
		switch {
		case !c.st.HasModels():
			return c.ignore("cross-section-position", "no models")
		case math32.IsNaN(p):
			return c.ignore("cross-section-position", "not a number")
		}
		p = c.cfg.CrossSection.Clamp(p)
		if p == c.st.CrossSection.Position {
			return false
		}
		c.st.CrossSection.Position = p
		return true
	})
}

// SetLightingIntensity scales the lighting rig. It is accepted with or without models.
func (c *Controller) SetLightingIntensity(v float32) {
	c.update("lighting", func() bool {
		if math32.IsNaN(v) {
			return c.ignore("lighting", "not a number")
		}
		v = c.cfg.Lighting.Clamp(v)
		if v == c.st.LightingIntensity {
			return false
		}
		c.st.LightingIntensity = v
		return true
	})
}

func (c *Controller) ToggleWireframe() {
	c.update("wireframe", func() bool {
		if !c.st.HasModels() {
			return c.ignore("wireframe", "no models")
		}
		c.st.WireframeEnabled = !c.st.WireframeEnabled
		return true
	})
}

func (c *Controller) ToggleXray() {
	c.update("xray", func() bool {
		if !c.st.HasModels() {
			return c.ignore("xray", "no models")
		}
		c.st.XrayEnabled = !c.st.XrayEnabled
		return true
	})
}

// ResetAllSettings resets the numeric drift parameters only: jaw offset,
// lighting intensity and cross-section position. Visibility flags, visual
// modes and the cross-section switch and axis are kept.
func (c *Controller) ResetAllSettings() {
	c.update("reset", func() bool {
		c.st.UpperJawOffset = 0
		c.st.LightingIntensity = 1
		c.st.CrossSection.Position = 0
		return true
	})
}

// SelectTooth toggles selection of a revealed segment. Selecting the selected
// index or NoTooth clears the selection; an unrevealed index is ignored.
func (c *Controller) SelectTooth(i int) {
	c.update("select", func() bool {
		switch {
		case i == NoTooth || i == c.st.SelectedTooth:
			if c.st.SelectedTooth == NoTooth {
				return false
			}
			c.st.SelectedTooth = NoTooth
		case i < 0 || i >= c.st.SegmentRevealCount:
			return c.ignore("select", "index not revealed")
		default:
			c.st.SelectedTooth = i
		}
		return true
	})
}
