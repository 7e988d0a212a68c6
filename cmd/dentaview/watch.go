package main

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/dentaview/internal/clock"
	"github.com/Faultbox/dentaview/internal/loader"
	"github.com/Faultbox/dentaview/internal/logger"
	"github.com/Faultbox/dentaview/internal/scene"
	"github.com/Faultbox/dentaview/internal/viewer"
	"github.com/Faultbox/dentaview/pkg/watcher"
)

var watchOpts struct {
	out outputs
}

var watchCmd = &cobra.Command{
	Use:   "watch DIR",
	Short: "Re-upload a scan directory whenever its files change",
	Long: `Watch uploads every .obj, .mtl and .stl file in DIR, then uploads the set again
each time it changes. Timers run in real time. After each completed load the header
is printed and, with --snapshot, a schematic is written.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	f := watchCmd.Flags()
	f.StringVarP(&watchOpts.out.snapshot, "snapshot", "o", "", "Write a schematic after each load (.png or .webp)")
	f.StringVar(&watchOpts.out.frame, "frame", "", "Dump the frame after each load to this YAML file")
	f.StringVar(&watchOpts.out.view, "view", "top", "Snapshot view (top, front)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	log := logger.Named("watch")

	dw, err := watcher.NewDirWatcher(args[0], cfg.Watch.Debounce,
		loader.ExtGrouped, loader.ExtSidecar, loader.ExtSingle)
	if err != nil {
		return err
	}
	defer dw.Close()
	dw.OnError(func(err error) { log.Warn("watcher error", zap.Error(err)) })

	ctrl := newController(clock.Real())
	defer ctrl.Close()

	out := cmd.OutOrStdout()
	var edge loadEdge
	cancel := ctrl.Subscribe(func(viewer.State) {
		// Deliveries from timer goroutines can arrive out of order; act on
		// the latest state instead of the delivered snapshot.
		st, loaded := edge.observe(ctrl.State)
		if !loaded {
			return
		}
		printSurfaces(out, st)
		fmt.Fprintln(out)
		if err := watchOpts.out.write(scene.Compose(st, sceneOptions())); err != nil {
			log.Warn("writing outputs", zap.Error(err))
		}
	})
	defer cancel()

	upload := func(paths []string) {
		files, err := loader.ReadFiles(paths...)
		if err != nil {
			log.Warn("reading scans", zap.Error(err))
			return
		}
		if err := ctrl.LoadModels(files); err != nil {
			log.Warn("upload rejected", zap.Strings("files", paths), zap.Error(err))
			return
		}
		log.Info("uploading", zap.Int("files", len(paths)))
	}

	initial, err := dw.Scan()
	if err != nil {
		return err
	}
	if len(initial) > 0 {
		upload(initial)
	}
	dw.Start(upload)

	log.Info("watching", zap.String("dir", args[0]))
	<-cmd.Context().Done()
	return nil
}

// loadEdge reports each transition from loading to loaded once.
type loadEdge struct {
	mu         sync.Mutex
	wasLoading bool
}

func (e *loadEdge) observe(latest func() viewer.State) (viewer.State, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	st := latest()
	loaded := e.wasLoading && !st.ModelsLoading
	e.wasLoading = st.ModelsLoading
	return st, loaded
}
