package main

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

type model struct {
	width             int
	height            int
	mode              Mode
	help              bool
	helpScroll        int
	session           *ViewerSession
	filePath          string
	fileList          []string
	selectedFileIndex int
	fileOp            FileOperation
	fromStartup       bool
	input             textinput.Model
	panel             ListPanel
	selectedRun       int
	list              viewport.Model
	progress          progress.Model
	playGen           int
	watcher           *fileWatcher
	errorMessage      string
	successMessage    string
	config            *Config
}

// Header is the metadata decoded from the 512-byte ASCII block.
type Header struct {
	Label       string  `json:"label" yaml:"label"`
	StitchCount int     `json:"stitchCount" yaml:"stitch_count"`
	ColorCount  int     `json:"colorCount" yaml:"color_count"`
	XPlus       int     `json:"xPlus" yaml:"x_plus"`
	XMinus      int     `json:"xMinus" yaml:"x_minus"`
	YPlus       int     `json:"yPlus" yaml:"y_plus"`
	YMinus      int     `json:"yMinus" yaml:"y_minus"`
	WidthMM     float64 `json:"widthMM" yaml:"width_mm"`
	HeightMM    float64 `json:"heightMM" yaml:"height_mm"`
}

// StitchCommand is one decoded body record. DX and DY are in 0.1mm units.
type StitchCommand struct {
	Type StitchType
	DX   int
	DY   int
}

// Point is an absolute needle position. Y is up-positive as in the file.
type Point struct {
	X          int
	Y          int
	Type       StitchType
	ColorIndex int
	StitchNum  int
}

type Break struct {
	Type      StitchType `json:"-" yaml:"-"`
	Label     string     `json:"type" yaml:"type"`
	StitchNum int        `json:"stitchNum" yaml:"stitch_num"`
	X         int        `json:"x" yaml:"x"`
	Y         int        `json:"y" yaml:"y"`
	ColorFrom int        `json:"colorFrom" yaml:"color_from"`
	ColorTo   int        `json:"colorTo" yaml:"color_to"`
}

// ColorRun is an inclusive index range into Sequence.Points sharing one color.
type ColorRun struct {
	ColorIndex  int `json:"colorIndex" yaml:"color_index"`
	StartIdx    int `json:"startIdx" yaml:"start_idx"`
	EndIdx      int `json:"endIdx" yaml:"end_idx"`
	StitchCount int `json:"stitchCount" yaml:"stitch_count"`
}

// Len is the number of points in the run.
func (r ColorRun) Len() int {
	if r.EndIdx < r.StartIdx {
		return 0
	}
	return r.EndIdx - r.StartIdx + 1
}

type Stats struct {
	TotalStitches int `json:"totalStitches" yaml:"total_stitches"`
	Jumps         int `json:"jumps" yaml:"jumps"`
	ColorChanges  int `json:"colorChanges" yaml:"color_changes"`
	TotalColors   int `json:"totalColors" yaml:"total_colors"`
}

type Sequence struct {
	Points    []Point
	Breaks    []Break
	ColorRuns []ColorRun
	Stats     Stats
}

// Design is the result handed to the host after a successful load.
type Design struct {
	Header Header
	Sequence
	FileName string
}

// TraceState is the playback cursor. Settle is the remaining pause before
// auto-advancing to the next run; zero means no pause is pending.
type TraceState struct {
	CurrentRun int
	StitchIdx  int
	Playing    bool
	Settle     time.Duration
}

type Viewport struct {
	Width  int
	Height int
}

// RenderOptions limits what trace mode reveals. HighlightRun is drawn at
// full opacity; ShowAll suppresses the needle marker.
type RenderOptions struct {
	ShowUpToRun    int
	ShowUpToStitch int
	HighlightRun   int
	ShowAll        bool
}
