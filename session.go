package main

import (
	"github.com/google/uuid"
)

// ViewerSession owns the loaded design and the only mutable view state.
// A new session is created for every successful load.
type ViewerSession struct {
	ID      string
	Design  *Design
	Mode    ViewMode
	Trace   TraceState
	Speed   int
	showAll bool
}

func newViewerSession(d *Design, mode ViewMode, speed int) *ViewerSession {
	return &ViewerSession{
		ID:     uuid.NewString(),
		Design: d,
		Mode:   mode,
		Speed:  clampSpeed(speed),
	}
}

func clampSpeed(speed int) int {
	return max(minSpeed, min(maxSpeed, speed))
}

// ready reports whether transport operations have anything to act on.
func (s *ViewerSession) ready() bool {
	return s != nil && s.Design != nil && len(s.Design.ColorRuns) > 0
}

func (s *ViewerSession) runCount() int {
	if s == nil || s.Design == nil {
		return 0
	}
	return len(s.Design.ColorRuns)
}

func (s *ViewerSession) clampRun(index int) int {
	return max(0, min(s.runCount()-1, index))
}

// moveTo stops playback and shows the given run fully revealed.
func (s *ViewerSession) moveTo(run int) {
	run = s.clampRun(run)
	s.Trace = TraceState{
		CurrentRun: run,
		StitchIdx:  s.Design.ColorRuns[run].Len(),
	}
	s.showAll = false
}

// Step moves one run backwards or forwards, clamped to the run list.
func (s *ViewerSession) Step(direction int) {
	if !s.ready() {
		return
	}
	switch {
	case direction > 0:
		s.moveTo(s.Trace.CurrentRun + 1)
	case direction < 0:
		s.moveTo(s.Trace.CurrentRun - 1)
	default:
		s.moveTo(s.Trace.CurrentRun)
	}
}

// Seek maps a position in [0, 1] linearly onto the run list.
func (s *ViewerSession) Seek(fraction float64) {
	if !s.ready() {
		return
	}
	fraction = max(0, min(1, fraction))
	s.moveTo(int(fraction * float64(s.runCount())))
}

// JumpToRun selects a run directly and switches to trace mode. Indexes
// outside the run list are clamped to the first or last run.
func (s *ViewerSession) JumpToRun(index int) {
	if !s.ready() {
		return
	}
	s.Mode = ViewTrace
	s.moveTo(index)
}

// ShowAll reveals every run, with no needle marker.
func (s *ViewerSession) ShowAll() {
	if !s.ready() {
		return
	}
	s.Mode = ViewTrace
	s.moveTo(s.runCount() - 1)
	s.showAll = true
}

func (s *ViewerSession) finished() bool {
	last := s.runCount() - 1
	return s.Trace.CurrentRun >= last && s.Trace.StitchIdx >= s.Design.ColorRuns[last].Len()
}

// Play starts playback in trace mode, from the beginning if the trace has
// already run to completion.
func (s *ViewerSession) Play() {
	if !s.ready() {
		return
	}
	s.Mode = ViewTrace
	if s.finished() {
		s.Trace = TraceState{}
	}
	s.Trace.Playing = true
	s.showAll = false
}

// Pause stops playback and drops any pending settle pause.
func (s *ViewerSession) Pause() {
	if !s.ready() {
		return
	}
	s.Trace.Playing = false
	s.Trace.Settle = 0
}

func (s *ViewerSession) TogglePlay() {
	if !s.ready() {
		return
	}
	if s.Trace.Playing {
		s.Pause()
	} else {
		s.Play()
	}
}

func (s *ViewerSession) Reset() {
	if s == nil {
		return
	}
	s.Trace = TraceState{}
	s.showAll = false
}

func (s *ViewerSession) SetSpeed(speed int) {
	if s == nil {
		return
	}
	s.Speed = clampSpeed(speed)
}

func (s *ViewerSession) renderOptions() RenderOptions {
	return RenderOptions{
		ShowUpToRun:    s.Trace.CurrentRun,
		ShowUpToStitch: s.Trace.StitchIdx,
		HighlightRun:   s.Trace.CurrentRun,
		ShowAll:        s.showAll,
	}
}

// revealed returns the fraction of points visible in trace mode.
func (s *ViewerSession) revealed() float64 {
	if !s.ready() || len(s.Design.Points) == 0 {
		return 0
	}
	run := s.Design.ColorRuns[s.clampRun(s.Trace.CurrentRun)]
	shown := run.StartIdx + min(s.Trace.StitchIdx, run.Len())
	return float64(shown) / float64(len(s.Design.Points))
}
