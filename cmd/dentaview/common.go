package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/Faultbox/dentaview/internal/clock"
	"github.com/Faultbox/dentaview/internal/debug"
	"github.com/Faultbox/dentaview/internal/loader"
	"github.com/Faultbox/dentaview/internal/resource"
	"github.com/Faultbox/dentaview/internal/scene"
	"github.com/Faultbox/dentaview/internal/ui"
	"github.com/Faultbox/dentaview/internal/viewer"
)

// newController builds a controller with an orbit camera bound for presets.
func newController(clk clock.Clock) *viewer.Controller {
	ldr := loader.New(resource.NewRegistry(), cfg.Viewer.RestPositions)
	ctrl := viewer.New(cfg.Viewer, ldr, clk, viewer.WithCamera(cfg.Camera))
	ctrl.BindCamera(viewer.NewOrbitCamera(cfg.Camera))
	return ctrl
}

func sceneOptions() scene.Options {
	return scene.Options{Scene: cfg.Scene, Lang: lang}
}

// outputs are the optional artifacts shared by replay, watch and snapshot.
type outputs struct {
	snapshot string
	frame    string
	view     string
}

func (o *outputs) write(f scene.Frame) error {
	if o.snapshot != "" {
		view, err := debug.ParseView(o.view)
		if err != nil {
			return err
		}
		if err := debug.NewSnapshotter(cfg.Snapshot, view).Save(o.snapshot, f); err != nil {
			return err
		}
	}
	if o.frame != "" {
		file, err := os.Create(o.frame)
		if err != nil {
			return fmt.Errorf("creating frame dump: %w", err)
		}
		defer file.Close()
		if err := debug.DumpFrame(file, f); err != nil {
			return err
		}
	}
	return nil
}

// printSurfaces renders the header and panel as text.
func printSurfaces(w io.Writer, st viewer.State) {
	h := ui.BuildHeader(st, lang)
	fmt.Fprintf(w, "%s\n", h.Title)
	if h.Status != "" {
		fmt.Fprintf(w, "  [%s]\n", h.Status)
	}
	if o := ui.Overlay(st, lang); o.Visible {
		fmt.Fprintf(w, "  %s\n", o.Message)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, b := range h.Buttons {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", b.ID, b.Label, flagsOf(b))
	}
	tw.Flush()

	p, ok := ui.BuildPanel(st, lang, cfg.Viewer)
	if !ok {
		return
	}
	fmt.Fprintf(w, "\n%s\n", p.Title)
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	sliders := []ui.Slider{p.JawOffset, p.Lighting}
	if p.CrossSection != nil {
		sliders = append(sliders, p.CrossSection.Position)
	}
	for _, s := range sliders {
		fmt.Fprintf(tw, "  %s\t%s\t[%g, %g]\n", s.Title, s.Display, s.Min, s.Max)
	}
	tw.Flush()

	fmt.Fprintf(w, "%s\n", p.InfoTitle)
	for _, r := range p.Info {
		fmt.Fprintf(w, "  %s %s\n", r.Label, r.Value)
	}
}

func flagsOf(b ui.Button) string {
	switch {
	case b.Disabled && b.Active:
		return "active, disabled"
	case b.Disabled:
		return "disabled"
	case b.Active:
		return "active"
	}
	return ""
}
