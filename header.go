package main

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	labelTag  = regexp.MustCompile(`LA:([^\r\n]*)`)
	stitchTag = regexp.MustCompile(`ST:\s*(\d+)`)
	colorTag  = regexp.MustCompile(`CO:\s*(\d+)`)
	xPlusTag  = regexp.MustCompile(`\+X:\s*(\d+)`)
	xMinusTag = regexp.MustCompile(`-X:\s*(\d+)`)
	yPlusTag  = regexp.MustCompile(`\+Y:\s*(\d+)`)
	yMinusTag = regexp.MustCompile(`-Y:\s*(\d+)`)
)

// parseHeader reads the tagged fields of the 512-byte header block. Missing
// or malformed tags leave the field at its zero value.
func parseHeader(buf []byte) Header {
	if len(buf) > headerSize {
		buf = buf[:headerSize]
	}
	text := string(buf)

	h := Header{
		StitchCount: headerInt(stitchTag, text),
		ColorCount:  headerInt(colorTag, text),
		XPlus:       headerInt(xPlusTag, text),
		XMinus:      headerInt(xMinusTag, text),
		YPlus:       headerInt(yPlusTag, text),
		YMinus:      headerInt(yMinusTag, text),
	}
	if m := labelTag.FindStringSubmatch(text); m != nil {
		h.Label = strings.TrimSpace(strings.TrimRight(m[1], "\x00\x1a"))
	}
	h.WidthMM = float64(h.XPlus+h.XMinus) / unitsPerMM
	h.HeightMM = float64(h.YPlus+h.YMinus) / unitsPerMM
	return h
}

func headerInt(re *regexp.Regexp, text string) int {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
