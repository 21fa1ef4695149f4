package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// playTickMsg drives one playback frame. Ticks from an older generation are
// dropped, which is how pausing or a transport action cancels a running loop.
type playTickMsg struct {
	gen     int
	elapsed time.Duration
}

func playTickCmd(gen int) tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return playTickMsg{gen: gen, elapsed: frameInterval}
	})
}

// stitchesPerTick grows with the square of the speed setting.
func stitchesPerTick(speed int) int {
	return max(1, speed*speed/2)
}

// advanceTrace computes the playback state after one frame. At the end of a
// run it holds for settleDuration before moving on; at the end of the last
// run it stops.
func advanceTrace(state TraceState, runs []ColorRun, speed int, elapsed time.Duration) TraceState {
	if !state.Playing || len(runs) == 0 {
		return state
	}
	last := len(runs) - 1
	state.CurrentRun = max(0, min(last, state.CurrentRun))
	runLen := runs[state.CurrentRun].Len()

	if state.StitchIdx >= runLen {
		state.StitchIdx = runLen
		if state.CurrentRun == last {
			state.Playing = false
			state.Settle = 0
			return state
		}
		if state.Settle <= 0 {
			state.Settle = settleDuration
			return state
		}
		state.Settle -= elapsed
		if state.Settle <= 0 {
			state.Settle = 0
			state.CurrentRun++
			state.StitchIdx = 0
		}
		return state
	}

	state.StitchIdx = min(runLen, state.StitchIdx+stitchesPerTick(speed))
	if state.StitchIdx >= runLen {
		if state.CurrentRun == last {
			state.Playing = false
		} else {
			state.Settle = settleDuration
		}
	}
	return state
}

// Tick advances playback by one frame and reports whether it is still running.
func (s *ViewerSession) Tick(elapsed time.Duration) bool {
	if !s.ready() {
		return false
	}
	s.Trace = advanceTrace(s.Trace, s.Design.ColorRuns, s.Speed, elapsed)
	return s.Trace.Playing
}
