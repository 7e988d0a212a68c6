package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/dentaview/internal/clock"
	"github.com/Faultbox/dentaview/internal/scene"
	"github.com/Faultbox/dentaview/internal/session"
)

var replayOpts struct {
	strict bool
	trace  string
	out    outputs
}

var replayCmd = &cobra.Command{
	Use:   "replay SCRIPT",
	Short: "Replay a scripted session on a virtual clock",
	Long: `Replay runs the steps of a YAML session script against the viewer. Timers run
on a virtual clock, so transitions complete instantly. The final header and panel
are printed; the frame can be dumped or snapshotted.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	f := replayCmd.Flags()
	f.BoolVar(&replayOpts.strict, "strict", false, "Stop at the first rejected step")
	f.StringVar(&replayOpts.trace, "trace", "", "Write per-step state records to this YAML file")
	f.StringVarP(&replayOpts.out.snapshot, "snapshot", "o", "", "Write a schematic of the final frame (.png or .webp)")
	f.StringVar(&replayOpts.out.frame, "frame", "", "Dump the final frame to this YAML file")
	f.StringVar(&replayOpts.out.view, "view", "top", "Snapshot view (top, front)")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	script, err := session.Load(args[0])
	if err != nil {
		return err
	}

	clk := clock.NewManual(time.Now())
	ctrl := newController(clk)
	defer ctrl.Close()

	runner := session.NewRunner(ctrl, clk)
	runner.Strict = replayOpts.strict
	records, runErr := runner.Run(cmd.Context(), script)

	if replayOpts.trace != "" {
		if err := writeTrace(replayOpts.trace, records); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	for _, r := range records {
		if r.Err != "" {
			fmt.Fprintf(out, "step %d (%s): %s\n", r.Index, r.Action, r.Err)
		}
	}
	if runErr != nil {
		return runErr
	}

	st := ctrl.State()
	printSurfaces(out, st)
	return replayOpts.out.write(scene.Compose(st, sceneOptions()))
}

func writeTrace(path string, records []session.Record) error {
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding trace: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
