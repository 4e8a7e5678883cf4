package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Faneva385/svg-initiation/internal/attrs"
	"github.com/Faneva385/svg-initiation/internal/document"
	"github.com/Faneva385/svg-initiation/internal/export"
)

// addAttrFlags registers one string flag per chart attribute.
func addAttrFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String(attrs.KeyData, "", `slice magnitudes separated by ";" (required)`)
	f.String(attrs.KeyLabels, "", `slice labels separated by ";"`)
	f.String(attrs.KeyDonut, "", "hole radius as a fraction of the outer radius")
	f.String(attrs.KeyGap, "", "width of the gaps between donut slices")
	f.String(attrs.KeyStart, "", `start angle: "top", "right" or radians`)
	f.String(attrs.KeyAnimate, "", "animate the entrance (true or false)")
	f.String(attrs.KeyDuration, "", "entrance duration, e.g. 750ms")
	f.String(attrs.KeyEasing, "", "easing curve")
	cmd.MarkFlagRequired(attrs.KeyData)
}

// attributesFromFlags parses the attribute flags that were set, falling
// back to the configured duration.
func attributesFromFlags(cmd *cobra.Command) (attrs.Attributes, error) {
	raw := make(map[string]string)
	for _, key := range attrs.Keys {
		if cmd.Flags().Changed(key) {
			raw[key], _ = cmd.Flags().GetString(key)
		}
	}
	if _, ok := raw[attrs.KeyDuration]; !ok {
		raw[attrs.KeyDuration] = cfg.Duration.String()
	}
	return attrs.Parse(raw)
}

func exportOptions(cmd *cobra.Command) export.Options {
	size, _ := cmd.Flags().GetInt("size")
	if size <= 0 {
		size = cfg.Size
	}
	return export.Options{
		Size:     size,
		Palette:  cfg.Palette,
		FPS:      cfg.FPS,
		Workers:  cfg.Workers,
		Progress: cmd.ErrOrStderr(),
	}
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a chart to SVG",
	Long:  "Render a chart at the given sweep progress. Labels are only drawn at progress 1.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := attributesFromFlags(cmd)
		if err != nil {
			return err
		}
		progress, _ := cmd.Flags().GetFloat64("progress")
		out, _ := cmd.Flags().GetString("out")
		opts := exportOptions(cmd)

		if out == "" || out == "-" {
			return export.Render(cmd.OutOrStdout(), a, progress, opts)
		}
		if err := export.RenderFile(out, a, progress, opts); err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "wrote", out)
		return nil
	},
}

func init() {
	addAttrFlags(renderCmd)
	renderCmd.Flags().Float64("progress", 1, "sweep progress in [0, 1]")
	renderCmd.Flags().StringP("out", "o", "", "output file (default stdout)")
	renderCmd.Flags().Int("size", 0, "width and height in pixels")
}

var framesCmd = &cobra.Command{
	Use:   "frames",
	Short: "Export every frame of the entrance animation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := attributesFromFlags(cmd)
		if err != nil {
			return err
		}
		opts := exportOptions(cmd)
		if fps, _ := cmd.Flags().GetInt("fps"); fps > 0 {
			opts.FPS = fps
		}
		dir, _ := cmd.Flags().GetString("dir")
		if dir == "" {
			dir = filepath.Join(cfg.OutDir, "frames")
		}

		paths, err := export.Frames(cmd.Context(), a, dir, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d frames to %s\n", len(paths), dir)
		return nil
	},
}

func init() {
	addAttrFlags(framesCmd)
	framesCmd.Flags().String("dir", "", "output directory (default $PIECHART_OUT_DIR/frames)")
	framesCmd.Flags().Int("fps", 0, "frames per second (default $PIECHART_FPS)")
	framesCmd.Flags().Int("size", 0, "width and height in pixels")
}

var batchCmd = &cobra.Command{
	Use:   "batch [manifest.yaml]",
	Short: "Render every chart of a YAML manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := document.LoadManifest(args[0])
		if err != nil {
			return err
		}
		opts := exportOptions(cmd)
		if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
			opts.Workers = workers
		}
		dir, _ := cmd.Flags().GetString("dir")
		if dir == "" {
			dir = cfg.OutDir
		}

		results, err := export.Batch(cmd.Context(), m, dir, opts)
		if err != nil {
			return err
		}
		for _, r := range results {
			fmt.Fprintln(cmd.OutOrStdout(), r.Path)
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().String("dir", "", "output directory (default $PIECHART_OUT_DIR)")
	batchCmd.Flags().Int("workers", 0, "concurrent renders (default $PIECHART_WORKERS)")
	batchCmd.Flags().Int("size", 0, "default width and height in pixels")
}

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print a sample chart manifest",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := document.NewSampleManifest().Marshal()
		if err != nil {
			return err
		}
		out, _ := cmd.Flags().GetString("out")
		if out == "" || out == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		return os.WriteFile(out, data, 0o644)
	},
}

func init() {
	sampleCmd.Flags().StringP("out", "o", "", "output file (default stdout)")
}
