// dentaview drives the dental scan viewer core headlessly.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/dentaview/internal/config"
	"github.com/Faultbox/dentaview/internal/locale"
	"github.com/Faultbox/dentaview/internal/logger"
)

var (
	flags *config.Flags
	cfg   *config.Config
	lang  locale.Lang
)

var rootCmd = &cobra.Command{
	Use:   "dentaview",
	Short: "Inspect, replay and snapshot dental scan viewer sessions",
	Long: `dentaview loads upper and lower jaw scans (.obj with .mtl, or .stl) into the
viewer core and exercises it without a renderer: inspect uploads, replay scripted
sessions, watch a scan directory and write schematic snapshots of the scene.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(flags)
		if err != nil {
			return err
		}
		if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
			return fmt.Errorf("logger: %w", err)
		}

		var ok bool
		lang, ok = locale.Parse(cfg.Locale.Language)
		if !ok {
			logger.Warn("unknown language, using default",
				zap.String("lang", cfg.Locale.Language), zap.String("default", string(lang)))
		}
		logger.Sugar.Debugf("Config: %+v", cfg)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	flags = config.BindFlags(rootCmd.PersistentFlags())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
