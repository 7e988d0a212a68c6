package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Faultbox/dentaview/internal/loader"
	"github.com/Faultbox/dentaview/internal/resource"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILES...",
	Short: "Show how an upload would be classified and placed",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	files, err := loader.ReadFiles(args...)
	if err != nil {
		return err
	}

	parts := loader.Partition(files)
	ldr := loader.New(resource.NewRegistry(), cfg.Viewer.RestPositions)
	batch, err := ldr.Prepare(files)
	if err != nil {
		return err
	}
	defer ldr.Release(batch.Models)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Upload: %d grouped, %d sidecar, %d single, %d ignored\n",
		len(parts.Grouped), len(parts.Sidecars), len(parts.Single),
		len(files)-len(parts.Grouped)-len(parts.Sidecars)-len(parts.Single))
	fmt.Fprintf(out, "Upper jaw rest position: %.1f (single meshes %.1f)\n\n",
		batch.RestPosition, ldr.SingleMeshRest())

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tKIND\tJAW\tTRIANGLES\tMATERIAL\tCENTER\tSIZE")
	for _, m := range batch.Models {
		material := "-"
		if m.Material != nil {
			material = fmt.Sprintf("%s (%d)", m.Material.Name, len(m.Materials))
		}
		c, s := m.Bounds.Center(), m.Bounds.Size()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t(%.2f, %.2f, %.2f)\t%.2f x %.2f x %.2f\n",
			m.Key, m.Kind, m.Jaw, m.Triangles, material, c.X, c.Y, c.Z, s.X, s.Y, s.Z)
	}
	return tw.Flush()
}
