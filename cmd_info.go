package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// infoReport is the machine-readable form of the info command.
type infoReport struct {
	File     string     `json:"file" yaml:"file"`
	Header   Header     `json:"header" yaml:"header"`
	Stats    Stats      `json:"stats" yaml:"stats"`
	WidthMM  float64    `json:"widthMM" yaml:"width_mm"`
	HeightMM float64    `json:"heightMM" yaml:"height_mm"`
	WidthIn  float64    `json:"widthIn" yaml:"width_in"`
	HeightIn float64    `json:"heightIn" yaml:"height_in"`
	Runs     []ColorRun `json:"runs,omitempty" yaml:"runs,omitempty"`
	Breaks   []Break    `json:"breaks,omitempty" yaml:"breaks,omitempty"`
}

func newInfoReport(d *Design, withRuns, withBreaks bool) infoReport {
	w, h := d.widthMM(), d.heightMM()
	r := infoReport{
		File:     d.FileName,
		Header:   d.Header,
		Stats:    d.Stats,
		WidthMM:  w,
		HeightMM: h,
		WidthIn:  w / mmPerInch,
		HeightIn: h / mmPerInch,
	}
	if withRuns {
		r.Runs = d.ColorRuns
	}
	if withBreaks {
		r.Breaks = d.Breaks
	}
	return r
}

func newInfoCmd() *cobra.Command {
	var (
		format     string
		withRuns   bool
		withBreaks bool
	)
	cmd := &cobra.Command{
		Use:   "info <file.dst>",
		Short: "Print design size, counts, runs and breaks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printInfo(cmd.OutOrStdout(), args[0], format, withRuns, withBreaks)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, yaml or json")
	cmd.Flags().BoolVar(&withRuns, "runs", false, "include the color run list")
	cmd.Flags().BoolVar(&withBreaks, "breaks", false, "include the break list")
	return cmd
}

func printInfo(w io.Writer, path, format string, withRuns, withBreaks bool) error {
	d, err := readDesignFile(path)
	if err != nil {
		return err
	}

	switch format {
	case "yaml":
		data, err := yaml.Marshal(newInfoReport(d, withRuns, withBreaks))
		if err != nil {
			return fmt.Errorf("failed to marshal info: %w", err)
		}
		_, err = w.Write(data)
		return err
	case "json":
		data, err := json.MarshalIndent(newInfoReport(d, withRuns, withBreaks), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal info: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "text", "":
		_, err := io.WriteString(w, infoText(d, withRuns, withBreaks))
		return err
	default:
		return fmt.Errorf("unknown format %q (want text, yaml or json)", format)
	}
}

func infoText(d *Design, withRuns, withBreaks bool) string {
	var b strings.Builder
	b.WriteString(strings.Join(d.summaryLines(), "\n"))
	b.WriteString("\n")
	if withRuns {
		b.WriteString("\nRuns:\n")
		for i, run := range d.ColorRuns {
			fmt.Fprintf(&b, "  %2d  %-12s %6d stitches  [%d..%d]\n",
				i+1, paletteColor(run.ColorIndex).Name, run.StitchCount, run.StartIdx, run.EndIdx)
		}
	}
	if withBreaks {
		b.WriteString("\nBreaks:\n")
		for _, br := range d.Breaks {
			b.WriteString("  " + formatBreak(br) + "\n")
		}
	}
	return b.String()
}
