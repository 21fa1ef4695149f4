package main

import (
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fogleman/gg"
)

// transform maps design units (y up) to raster pixels (y down).
type transform struct {
	scale  float64
	offX   float64
	offY   float64
	height float64
}

func (t transform) apply(p Point) (float64, float64) {
	x := float64(p.X)*t.scale + t.offX
	y := float64(p.Y)*t.scale + t.offY
	return x, t.height - y
}

// fitDesign picks one uniform scale that fits the design's bounding box into
// 90% of the viewport, and centers it.
func fitDesign(d *Design, vp Viewport) transform {
	t := transform{scale: 1, height: float64(vp.Height)}
	if d == nil || len(d.Points) == 0 || vp.Width <= 0 || vp.Height <= 0 {
		return t
	}
	minX, minY, maxX, maxY := d.bounds()
	w := float64(max(1, maxX-minX))
	h := float64(max(1, maxY-minY))
	t.scale = math.Min(fitFraction*float64(vp.Width)/w, fitFraction*float64(vp.Height)/h)
	t.offX = (float64(vp.Width)-w*t.scale)/2 - float64(minX)*t.scale
	t.offY = (float64(vp.Height)-h*t.scale)/2 - float64(minY)*t.scale
	return t
}

func parseHex(s string) (r, g, b float64) {
	s = strings.TrimPrefix(s, "#")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || len(s) != 6 {
		return 0, 0, 0
	}
	return float64(v>>16&0xff) / 255, float64(v>>8&0xff) / 255, float64(v&0xff) / 255
}

func setHexAlpha(dc *gg.Context, hex string, alpha float64) {
	r, g, b := parseHex(hex)
	dc.SetRGBA(r, g, b, alpha)
}

func lineWidthFor(dc *gg.Context) float64 {
	if min(dc.Width(), dc.Height()) >= 400 {
		return 1.5
	}
	return 1
}

// strokeSegments strokes every segment (i-1, i) for i in [from, to] that
// keep accepts, as one path.
func strokeSegments(dc *gg.Context, pts []Point, from, to int, t transform, keep func(prev, p Point) bool) {
	from = max(from, 1)
	to = min(to, len(pts)-1)
	open := false
	for i := from; i <= to; i++ {
		prev, p := pts[i-1], pts[i]
		if !keep(prev, p) {
			open = false
			continue
		}
		if !open {
			dc.MoveTo(t.apply(prev))
			open = true
		}
		dc.LineTo(t.apply(p))
	}
	dc.Stroke()
}

func sewn(prev, p Point) bool {
	return prev.Type == StitchNormal && p.Type == StitchNormal
}

func travel(_, p Point) bool {
	return p.Type == StitchJump
}

// renderDesign draws d onto dc in the given view mode. opts is only read in
// trace mode. The design is never modified.
func renderDesign(dc *gg.Context, d *Design, mode ViewMode, opts RenderOptions) {
	dc.SetColor(color.White)
	dc.Clear()
	if d == nil || len(d.Points) == 0 {
		return
	}
	t := fitDesign(d, Viewport{Width: dc.Width(), Height: dc.Height()})
	dc.SetLineWidth(lineWidthFor(dc))
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	switch mode {
	case ViewMono:
		setHexAlpha(dc, monoStitchHex, 1)
		strokeSegments(dc, d.Points, 1, len(d.Points)-1, t, sewn)
		dc.SetRGBA(1, 0, 0, jumpAlpha)
		strokeSegments(dc, d.Points, 1, len(d.Points)-1, t, travel)
	case ViewTrace:
		renderTrace(dc, d, opts, t)
	default:
		for _, run := range d.ColorRuns {
			setHexAlpha(dc, paletteColor(run.ColorIndex).Hex, 1)
			strokeSegments(dc, d.Points, run.StartIdx, run.EndIdx, t, sewn)
		}
	}
}

func renderTrace(dc *gg.Context, d *Design, opts RenderOptions, t transform) {
	if len(d.ColorRuns) == 0 {
		return
	}
	upTo := max(0, min(len(d.ColorRuns)-1, opts.ShowUpToRun))
	lastShown := -1
	for r := 0; r <= upTo; r++ {
		run := d.ColorRuns[r]
		end := run.EndIdx
		if r == upTo {
			end = run.StartIdx + max(0, min(run.Len(), opts.ShowUpToStitch)) - 1
		}
		alpha := completedAlpha
		if r == opts.HighlightRun {
			alpha = 1
		}
		setHexAlpha(dc, paletteColor(run.ColorIndex).Hex, alpha)
		strokeSegments(dc, d.Points, run.StartIdx, end, t, sewn)
		lastShown = max(lastShown, end)
	}
	if opts.ShowAll {
		return
	}
	x, y := t.apply(d.Points[max(0, min(len(d.Points)-1, lastShown))])
	dc.SetRGBA(1, 0, 0, 0.9)
	dc.DrawCircle(x, y, markerRadius)
	dc.Fill()
}

// rasterize renders into a new image of the viewport's size.
func rasterize(d *Design, vp Viewport, mode ViewMode, opts RenderOptions) image.Image {
	dc := gg.NewContext(max(1, vp.Width), max(1, vp.Height))
	renderDesign(dc, d, mode, opts)
	return dc.Image()
}

func hexOf(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return "#" + strconv.FormatUint(uint64(1<<24|(r>>8)<<16|(g>>8)<<8|b>>8), 16)[1:]
}

// terminalImage draws img with upper half blocks, two pixel rows per line.
// Runs of identical cells share one styled span.
func terminalImage(img image.Image) string {
	bounds := img.Bounds()
	var out strings.Builder
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		if y > bounds.Min.Y {
			out.WriteByte('\n')
		}
		var spanTop, spanBottom string
		span := 0
		flush := func() {
			if span == 0 {
				return
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(spanTop)).Background(lipgloss.Color(spanBottom))
			out.WriteString(style.Render(strings.Repeat("▀", span)))
			span = 0
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			top := hexOf(img.At(x, y))
			bottom := top
			if y+1 < bounds.Max.Y {
				bottom = hexOf(img.At(x, y+1))
			}
			if span > 0 && (top != spanTop || bottom != spanBottom) {
				flush()
			}
			spanTop, spanBottom = top, bottom
			span++
		}
		flush()
	}
	return out.String()
}

// renderCanvas renders the current session into a width x height cell area.
func (m model) renderCanvas(width, height int) string {
	if m.session == nil || width < 1 || height < 1 {
		return ""
	}
	opts := m.session.renderOptions()
	img := rasterize(m.session.Design, Viewport{Width: width, Height: height * 2}, m.session.Mode, opts)
	return terminalImage(img)
}
