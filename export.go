package main

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

const (
	legendFontSize = 12.0
	legendLineH    = 18.0
	legendSwatch   = 12.0
	legendPadding  = 10.0
)

func legendFace() (font.Face, error) {
	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return truetype.NewFace(ttfFont, &truetype.Options{
		Size:    legendFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

func withPNGExt(path string) string {
	if strings.HasSuffix(strings.ToLower(path), ".png") {
		return path
	}
	return path + ".png"
}

func legendHeight(d *Design) float64 {
	return legendPadding*2 + legendLineH*2 + legendLineH*float64((len(d.ColorRuns)+3)/4)
}

// exportPNG renders the design above a legend strip and writes a PNG.
func exportPNG(d *Design, mode ViewMode, opts RenderOptions, width, height int, path string) error {
	if d == nil || len(d.Points) == 0 {
		return errNothingToExport
	}
	path = withPNGExt(path)

	legendH := legendHeight(d)
	dc := gg.NewContext(width, height+int(legendH))
	dc.SetColor(color.White)
	dc.Clear()

	design := gg.NewContext(width, height)
	renderDesign(design, d, mode, opts)
	dc.DrawImage(design.Image(), 0, 0)

	face, err := legendFace()
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	drawLegend(dc, d, float64(height))

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Printf("exported %s (%s, %dx%d)", filepath.Base(path), mode, width, height)
	return nil
}

func drawLegend(dc *gg.Context, d *Design, top float64) {
	dc.SetRGB(0.85, 0.85, 0.85)
	dc.DrawLine(0, top, float64(dc.Width()), top)
	dc.Stroke()

	w, h := d.widthMM(), d.heightMM()
	y := top + legendPadding + legendFontSize
	dc.SetColor(color.Black)
	dc.DrawString(fmt.Sprintf("%s  %s", d.FileName, d.Header.Label), legendPadding, y)
	y += legendLineH
	dc.DrawString(fmt.Sprintf("%d stitches  %d colors  %d jumps  %.1f x %.1f mm (%.2f x %.2f in)",
		d.Stats.TotalStitches, d.Stats.TotalColors, d.Stats.Jumps, w, h, w/mmPerInch, h/mmPerInch), legendPadding, y)

	colWidth := (float64(dc.Width()) - legendPadding*2) / 4
	for i, run := range d.ColorRuns {
		x := legendPadding + float64(i%4)*colWidth
		rowY := y + legendLineH*float64(i/4+1)
		thread := paletteColor(run.ColorIndex)
		setHexAlpha(dc, thread.Hex, 1)
		dc.DrawRectangle(x, rowY-legendSwatch+2, legendSwatch, legendSwatch)
		dc.Fill()
		dc.SetColor(color.Black)
		dc.DrawString(fmt.Sprintf("%d %s (%d)", i+1, thread.Name, run.StitchCount), x+legendSwatch+4, rowY)
	}
}
