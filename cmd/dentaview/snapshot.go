package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Faultbox/dentaview/internal/clock"
	"github.com/Faultbox/dentaview/internal/loader"
	"github.com/Faultbox/dentaview/internal/scene"
	"github.com/Faultbox/dentaview/internal/session"
	"github.com/Faultbox/dentaview/internal/teeth"
	"github.com/Faultbox/dentaview/internal/ui"
	"github.com/Faultbox/dentaview/internal/viewer"
)

type snapshotOptions struct {
	labels, segments, axes bool
	wireframe, xray        bool
	crossSection           string
	position               float32
	jawOffset              float32
	selectTooth            string
	out                    outputs
}

var snapshotOpts snapshotOptions

var snapshotCmd = &cobra.Command{
	Use:   "snapshot FILES... -o OUT",
	Short: "Load scans and write a schematic of the settled scene",
	Example: `  dentaview snapshot lower_jaw.stl upper_jaw.stl -o jaws.png --labels --segments
  dentaview snapshot scan.obj scan.mtl -o scan.webp --cross-section x --position 4 --view front`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSnapshot,
}

func init() {
	f := snapshotCmd.Flags()
	f.StringVarP(&snapshotOpts.out.snapshot, "output", "o", "", "Output image (.png or .webp)")
	f.StringVar(&snapshotOpts.out.frame, "frame", "", "Also dump the frame to this YAML file")
	f.StringVar(&snapshotOpts.out.view, "view", "top", "Projection (top, front)")
	f.BoolVar(&snapshotOpts.labels, "labels", false, "Show tooth labels")
	f.BoolVar(&snapshotOpts.segments, "segments", false, "Show tooth segments")
	f.BoolVar(&snapshotOpts.axes, "axes", false, "Show tooth axes")
	f.BoolVar(&snapshotOpts.wireframe, "wireframe", false, "Wireframe rendering")
	f.BoolVar(&snapshotOpts.xray, "xray", false, "X-ray rendering")
	f.StringVar(&snapshotOpts.crossSection, "cross-section", "", "Enable the cross-section plane on this axis (x, y, z)")
	f.Float32Var(&snapshotOpts.position, "position", 0, "Cross-section plane position")
	f.Float32Var(&snapshotOpts.jawOffset, "jaw-offset", 0, "Upper jaw offset")
	f.StringVar(&snapshotOpts.selectTooth, "select", "", "Select a tooth by label (implies --segments)")
	snapshotCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	files, err := loader.ReadFiles(args...)
	if err != nil {
		return err
	}

	clk := clock.NewManual(time.Now())
	ctrl := newController(clk)
	defer ctrl.Close()

	if err := ui.Dispatch(ctrl, ui.ActionUpload, files); err != nil {
		return err
	}
	if err := session.Settle(clk); err != nil {
		return err
	}

	steps, err := snapshotSteps()
	if err != nil {
		return err
	}
	for _, s := range steps {
		if err := ui.Dispatch(ctrl, s.id, s.value); err != nil {
			return fmt.Errorf("%s: %w", s.id, err)
		}
		// Selection needs the reveal to have passed the tooth.
		if err := session.Settle(clk); err != nil {
			return err
		}
	}

	f := scene.Compose(ctrl.State(), sceneOptions())
	if err := snapshotOpts.out.write(f); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d meshes, %d segments)\n",
		snapshotOpts.out.snapshot, len(f.Meshes), len(f.Segments))
	return nil
}

type step struct {
	id    ui.ActionID
	value any
}

func snapshotSteps() ([]step, error) {
	o := snapshotOpts
	var steps []step
	add := func(on bool, id ui.ActionID, v any) {
		if on {
			steps = append(steps, step{id, v})
		}
	}

	selected := viewer.NoTooth
	if o.selectTooth != "" {
		i, ok := teeth.Lookup(o.selectTooth)
		if !ok {
			return nil, fmt.Errorf("unknown tooth %q", o.selectTooth)
		}
		selected = i
	}

	add(o.labels, ui.ActionLabels, nil)
	add(o.segments || selected != viewer.NoTooth, ui.ActionSegments, nil)
	add(o.axes, ui.ActionAxes, nil)
	add(o.wireframe, ui.ActionWireframe, nil)
	add(o.xray, ui.ActionXray, nil)
	add(o.jawOffset != 0, ui.ActionJawOffset, o.jawOffset)
	if o.crossSection != "" {
		axis, err := viewer.ParseAxis(o.crossSection)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step{ui.ActionCrossSection, nil})
		steps = append(steps, step{ui.ActionID("axis-" + axis.String()), nil})
		steps = append(steps, step{ui.ActionCrossSectionPosition, o.position})
	} else if o.position != 0 {
		return nil, errors.New("--position needs --cross-section")
	}
	add(selected != viewer.NoTooth, ui.ActionSelectTooth, selected)
	return steps, nil
}
