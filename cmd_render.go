package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRenderCmd() *cobra.Command {
	var (
		output string
		mode   string
		width  int
		height int
		run    int
	)
	cmd := &cobra.Command{
		Use:   "render <file.dst>",
		Short: "Render a design to PNG",
		Long:  "Render a design to PNG with a legend strip. --run shows trace mode up to the given run (1-based).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			d, err := readDesignFile(args[0])
			if err != nil {
				return err
			}
			viewMode, ok := parseViewMode(mode)
			if !ok {
				return fmt.Errorf("unknown mode %q (want colors, mono or trace)", mode)
			}

			s := newViewerSession(d, viewMode, config.Speed)
			switch {
			case run > 0:
				s.JumpToRun(run - 1)
			case viewMode == ViewTrace:
				s.ShowAll()
			}

			if width <= 0 {
				width = config.ExportWidth
			}
			if height <= 0 {
				height = config.ExportHeight
			}
			if output == "" {
				output = config.GetSavePath(exportName(d, s.Mode))
			}
			output = withPNGExt(output)
			if err := exportPNG(d, s.Mode, s.renderOptions(), width, height, output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output PNG path (default <name>-<mode>.png)")
	cmd.Flags().StringVarP(&mode, "mode", "m", "colors", "view mode: colors, mono or trace")
	cmd.Flags().IntVar(&width, "width", 0, "image width in pixels (default from config)")
	cmd.Flags().IntVar(&height, "height", 0, "design area height in pixels (default from config)")
	cmd.Flags().IntVar(&run, "run", 0, "show trace up to this run (1-based)")
	return cmd
}
