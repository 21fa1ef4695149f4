package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			PaddingLeft(1)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	activeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func swatch(colorIndex int) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(paletteColor(colorIndex).Hex)).Render("██")
}

func formatBreak(b Break) string {
	if b.Type == StitchColorChange {
		return fmt.Sprintf("#%-6d %s %d→%d (%d, %d)", b.StitchNum, b.Label, b.ColorFrom+1, b.ColorTo+1, b.X, b.Y)
	}
	return fmt.Sprintf("#%-6d %s (%d, %d)", b.StitchNum, b.Label, b.X, b.Y)
}

func (m model) runListContent() string {
	d := m.getDesign()
	if d == nil || len(d.ColorRuns) == 0 {
		return mutedStyle.Render("no runs")
	}
	lines := make([]string, 0, len(d.ColorRuns))
	for i, run := range d.ColorRuns {
		marker := "  "
		if m.session.Mode == ViewTrace && i == m.session.Trace.CurrentRun {
			marker = activeStyle.Render("▶ ")
		}
		text := fmt.Sprintf("%2d %-12s %6d", i+1, paletteColor(run.ColorIndex).Name, run.StitchCount)
		if i == m.selectedRun {
			text = selectedStyle.Render(text)
		}
		lines = append(lines, marker+swatch(run.ColorIndex)+" "+text)
	}
	return strings.Join(lines, "\n")
}

func (m model) breakListContent() string {
	d := m.getDesign()
	if d == nil || len(d.Breaks) == 0 {
		return mutedStyle.Render("no breaks")
	}
	lines := make([]string, 0, len(d.Breaks))
	for _, b := range d.Breaks {
		lines = append(lines, formatBreak(b))
	}
	return strings.Join(lines, "\n")
}

func (m model) infoContent() string {
	d := m.getDesign()
	if d == nil {
		return ""
	}
	return titleStyle.Render("File") + "\n" + strings.Join(d.summaryLines(), "\n")
}

// layoutPanel sizes the list viewport and progress bar to the side panel and
// refreshes the list content. Call after a resize, load or state change.
func (m *model) layoutPanel() {
	infoHeight := lipgloss.Height(m.infoContent())
	listHeight := m.canvasHeight() - infoHeight - 4
	if m.session != nil && m.session.Mode == ViewTrace {
		listHeight -= 2
	}
	listHeight = max(1, listHeight)

	if m.list.Width != sidePanelWidth-2 || m.list.Height != listHeight {
		yOffset := m.list.YOffset
		m.list = viewport.New(sidePanelWidth-2, listHeight)
		m.list.YOffset = yOffset
	}
	m.progress.Width = sidePanelWidth - 4

	switch m.panel {
	case PanelBreaks:
		m.list.SetContent(m.breakListContent())
	default:
		m.list.SetContent(m.runListContent())
		if m.selectedRun < m.list.YOffset {
			m.list.SetYOffset(m.selectedRun)
		} else if m.selectedRun >= m.list.YOffset+m.list.Height {
			m.list.SetYOffset(m.selectedRun - m.list.Height + 1)
		}
	}
}

func newProgress() progress.Model {
	return progress.New(progress.WithDefaultGradient(), progress.WithWidth(sidePanelWidth-4))
}

func (m model) renderSidePanel(height int) string {
	var b strings.Builder
	b.WriteString(m.infoContent())
	b.WriteString("\n\n")

	runsTitle, breaksTitle := "Runs", "Breaks"
	if m.panel == PanelBreaks {
		breaksTitle = titleStyle.Render(breaksTitle)
		runsTitle = mutedStyle.Render(runsTitle)
	} else {
		runsTitle = titleStyle.Render(runsTitle)
		breaksTitle = mutedStyle.Render(breaksTitle)
	}
	b.WriteString(runsTitle + mutedStyle.Render(" | ") + breaksTitle + mutedStyle.Render("  (tab)"))
	b.WriteString("\n")
	b.WriteString(m.list.View())

	if m.session != nil && m.session.Mode == ViewTrace {
		b.WriteString("\n\n")
		b.WriteString(m.progress.ViewAs(m.session.revealed()))
	}

	return panelStyle.Width(sidePanelWidth).Height(height).MaxHeight(height).Render(b.String())
}
