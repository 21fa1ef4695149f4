package main

// buildSequence walks the decoded commands once, accumulating absolute
// position, splitting points into color runs and recording breaks.
//
// A color change closes the open run at the last appended point, then the
// color change point itself opens the next run. Consecutive jumps produce a
// single break at the first jump.
func buildSequence(cmds []StitchCommand) Sequence {
	var seq Sequence
	x, y := 0, 0
	colorIndex := 0
	stitchNum := 0
	runStart := 0

	for _, cmd := range cmds {
		if cmd.Type == StitchEnd {
			break
		}
		x += cmd.DX
		y += cmd.DY
		stitchNum++

		switch cmd.Type {
		case StitchColorChange:
			seq.ColorRuns = append(seq.ColorRuns, newColorRun(colorIndex, runStart, len(seq.Points)-1))
			seq.Breaks = append(seq.Breaks, Break{
				Type:      StitchColorChange,
				Label:     StitchColorChange.String(),
				StitchNum: stitchNum,
				X:         x,
				Y:         y,
				ColorFrom: colorIndex,
				ColorTo:   colorIndex + 1,
			})
			colorIndex++
			runStart = len(seq.Points)
			seq.Stats.ColorChanges++
		case StitchJump:
			if n := len(seq.Points); n == 0 || seq.Points[n-1].Type != StitchJump {
				seq.Breaks = append(seq.Breaks, Break{
					Type:      StitchJump,
					Label:     StitchJump.String(),
					StitchNum: stitchNum,
					X:         x,
					Y:         y,
				})
			}
			seq.Stats.Jumps++
		default:
			seq.Stats.TotalStitches++
		}

		seq.Points = append(seq.Points, Point{
			X:          x,
			Y:          y,
			Type:       cmd.Type,
			ColorIndex: colorIndex,
			StitchNum:  stitchNum,
		})
	}

	if len(seq.Points) > 0 {
		seq.ColorRuns = append(seq.ColorRuns, newColorRun(colorIndex, runStart, len(seq.Points)-1))
		seq.Stats.TotalColors = seq.Stats.ColorChanges + 1
	}
	return seq
}

func newColorRun(colorIndex, startIdx, endIdx int) ColorRun {
	count := endIdx - startIdx
	if count < 0 {
		count = 0
	}
	return ColorRun{
		ColorIndex:  colorIndex,
		StartIdx:    startIdx,
		EndIdx:      endIdx,
		StitchCount: count,
	}
}

// bounds returns the design-space bounding box of all points.
func (s *Sequence) bounds() (minX, minY, maxX, maxY int) {
	if len(s.Points) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = s.Points[0].X, s.Points[0].Y
	maxX, maxY = minX, minY
	for _, p := range s.Points[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY
}
