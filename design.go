package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	errTruncatedHeader = errors.New("file too short for a DST header")
	errNotDST          = errors.New("not a .dst file")
	errNothingToExport = errors.New("nothing to export")
)

func isDSTName(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".dst")
}

// loadDesign runs the header, stitch and sequence stages over one buffer.
// It either returns a complete design or an error; never a partial one.
func loadDesign(fileName string, data []byte) (*Design, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes", errTruncatedHeader, len(data))
	}
	header := parseHeader(data)
	seq := buildSequence(decodeStitches(data))
	return &Design{
		Header:   header,
		Sequence: seq,
		FileName: fileName,
	}, nil
}

// readDesignFile validates the extension, reads the whole file and decodes it.
func readDesignFile(path string) (*Design, error) {
	if !isDSTName(path) {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), errNotDST)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	d, err := loadDesign(filepath.Base(path), data)
	if err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", filepath.Base(path), err)
	}
	return d, nil
}

func (d *Design) widthMM() float64 {
	if d.Header.WidthMM > 0 {
		return d.Header.WidthMM
	}
	minX, _, maxX, _ := d.bounds()
	return float64(maxX-minX) / unitsPerMM
}

func (d *Design) heightMM() float64 {
	if d.Header.HeightMM > 0 {
		return d.Header.HeightMM
	}
	_, minY, _, maxY := d.bounds()
	return float64(maxY-minY) / unitsPerMM
}

// summaryLines is the file-info block shared by the side panel, the info
// command and the clipboard copy.
func (d *Design) summaryLines() []string {
	w, h := d.widthMM(), d.heightMM()
	label := d.Header.Label
	if label == "" {
		label = "-"
	}
	return []string{
		fmt.Sprintf("File:     %s", d.FileName),
		fmt.Sprintf("Label:    %s", label),
		fmt.Sprintf("Stitches: %d", d.Stats.TotalStitches),
		fmt.Sprintf("Colors:   %d", d.Stats.TotalColors),
		fmt.Sprintf("Jumps:    %d", d.Stats.Jumps),
		fmt.Sprintf("Size:     %.1f x %.1f mm", w, h),
		fmt.Sprintf("          %.2f x %.2f in", w/mmPerInch, h/mmPerInch),
	}
}
