package main

import (
	tea "github.com/charmbracelet/bubbletea"
)

// transport runs a transport action. Bumping the generation drops any tick
// already scheduled, so at most one playback loop is ever live.
func (m *model) transport(action func(s *ViewerSession)) tea.Cmd {
	if !m.session.ready() {
		return nil
	}
	m.playGen++
	action(m.session)
	m.selectedRun = m.session.Trace.CurrentRun
	m.successMessage = ""
	m.layoutPanel()
	if m.session.Trace.Playing {
		return playTickCmd(m.playGen)
	}
	return nil
}

// setView switches the view mode. Leaving trace view pauses playback.
func (m *model) setView(mode ViewMode) {
	if mode != ViewTrace && m.session.Trace.Playing {
		m.playGen++
		m.session.Pause()
	}
	m.session.Mode = mode
	m.layoutPanel()
}

func (m model) handleNormalKey(key string) (tea.Model, tea.Cmd) {
	s := m.session
	switch key {
	case "q", "ctrl+c":
		m.watcher.Close()
		m.watcher = nil
		return m, tea.Quit
	case "?":
		m.help = true
	case "c":
		m.setView(ViewColors)
	case "m":
		m.setView(ViewMono)
	case "t":
		m.setView(ViewTrace)
	case " ":
		return m, m.transport((*ViewerSession).TogglePlay)
	case "h", "left":
		return m, m.transport(func(s *ViewerSession) {
			s.Mode = ViewTrace
			s.Step(-1)
		})
	case "l", "right":
		return m, m.transport(func(s *ViewerSession) {
			s.Mode = ViewTrace
			s.Step(1)
		})
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		fraction := float64(key[0]-'0') / 9
		return m, m.transport(func(s *ViewerSession) {
			s.Mode = ViewTrace
			s.Seek(fraction)
		})
	case "G":
		return m, m.transport((*ViewerSession).ShowAll)
	case "r":
		return m, m.transport((*ViewerSession).Reset)
	case "enter":
		run := m.selectedRun
		return m, m.transport(func(s *ViewerSession) { s.JumpToRun(run) })
	case "+", "=":
		s.SetSpeed(s.Speed + 1)
	case "-", "_":
		s.SetSpeed(s.Speed - 1)
	case "tab":
		if m.panel == PanelRuns {
			m.panel = PanelBreaks
		} else {
			m.panel = PanelRuns
		}
		m.list.GotoTop()
		m.layoutPanel()
	case "j", "down":
		m.moveSelection(1)
	case "k", "up":
		m.moveSelection(-1)
	case "e":
		m.startFileInput(FileOpSavePNG, exportName(s.Design, s.Mode))
	case "o":
		m.scanDSTFiles()
		m.startFileInput(FileOpOpen, "")
	case "y":
		if err := copySummary(s.Design); err != nil {
			m.errorMessage = "Clipboard unavailable: " + err.Error()
		} else {
			m.errorMessage = ""
			m.successMessage = "Copied file info"
		}
	}
	return m, nil
}

// moveSelection moves the run selection, or scrolls the break list.
func (m *model) moveSelection(delta int) {
	if m.panel == PanelBreaks {
		if delta > 0 {
			m.list.ScrollDown(1)
		} else {
			m.list.ScrollUp(1)
		}
		return
	}
	n := m.session.runCount()
	if n == 0 {
		return
	}
	m.selectedRun = max(0, min(n-1, m.selectedRun+delta))
	m.layoutPanel()
}
