package main

import "time"

type Mode int

const (
	ModeStartup Mode = iota
	ModeNormal
	ModeFileInput
)

type FileOperation int

const (
	FileOpOpen FileOperation = iota
	FileOpSavePNG
)

// ViewMode selects how a design is drawn onto the raster surface.
type ViewMode int

const (
	ViewColors ViewMode = iota
	ViewMono
	ViewTrace
)

func (v ViewMode) String() string {
	switch v {
	case ViewColors:
		return "colors"
	case ViewMono:
		return "mono"
	case ViewTrace:
		return "trace"
	default:
		return "unknown"
	}
}

func parseViewMode(s string) (ViewMode, bool) {
	switch s {
	case "colors", "color", "flat":
		return ViewColors, true
	case "mono", "monochrome":
		return ViewMono, true
	case "trace":
		return ViewTrace, true
	}
	return ViewColors, false
}

// StitchType is the command kind carried by each 3-byte record.
type StitchType int

const (
	StitchNormal StitchType = iota
	StitchJump
	StitchColorChange
	StitchEnd
)

func (t StitchType) String() string {
	switch t {
	case StitchNormal:
		return "Normal"
	case StitchJump:
		return "Jump"
	case StitchColorChange:
		return "Color Change"
	case StitchEnd:
		return "End"
	default:
		return "Unknown"
	}
}

type ListPanel int

const (
	PanelRuns ListPanel = iota
	PanelBreaks
)

const (
	headerSize  = 512
	recordSize  = 3
	mmPerInch   = 25.4
	unitsPerMM  = 10.0
	fitFraction = 0.9

	minSpeed     = 1
	maxSpeed     = 10
	defaultSpeed = 5

	frameInterval  = 33 * time.Millisecond
	settleDuration = 500 * time.Millisecond
	watchDebounce  = 200 * time.Millisecond

	sidePanelWidth = 34
	markerRadius   = 4.0
	completedAlpha = 0.35
	jumpAlpha      = 0.15
	monoStitchHex  = "#222222"
)

// threadColor is one entry of the static thread palette.
type threadColor struct {
	Hex  string
	Name string
}

var palette = []threadColor{
	{"#1f4e9c", "Royal Blue"},
	{"#c8102e", "Red"},
	{"#2e8b57", "Kelly Green"},
	{"#f2a900", "Gold"},
	{"#6a1b9a", "Purple"},
	{"#ff6f00", "Orange"},
	{"#00838f", "Teal"},
	{"#d81b60", "Hot Pink"},
	{"#5d4037", "Brown"},
	{"#7cb342", "Lime"},
	{"#0d47a1", "Navy"},
	{"#8e24aa", "Violet"},
	{"#ffd600", "Yellow"},
	{"#546e7a", "Slate"},
	{"#b71c1c", "Maroon"},
	{"#000000", "Black"},
}

func paletteColor(colorIndex int) threadColor {
	n := len(palette)
	return palette[((colorIndex%n)+n)%n]
}
