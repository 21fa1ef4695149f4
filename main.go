package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool
	cmd := &cobra.Command{
		Use:           "stitchview [file.dst]",
		Short:         "Inspect Tajima DST embroidery files",
		Long:          "stitchview decodes .dst stitch files and shows them in a terminal viewer\nwith color, mono and trace playback views.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			if !isatty.IsTerminal(os.Stdout.Fd()) {
				if path == "" {
					return errors.New("no file given and stdout is not a terminal")
				}
				return printInfo(cmd.OutOrStdout(), path, "text", false, false)
			}
			return runViewer(path, debug)
		},
	}
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "write a debug log to stitchview-debug.log")
	cmd.AddCommand(newInfoCmd(), newRenderCmd())
	return cmd
}

func runViewer(path string, debug bool) error {
	if debug {
		f, err := tea.LogToFile("stitchview-debug.log", "debug")
		if err != nil {
			return fmt.Errorf("failed to open debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	m := initialModel(loadConfig())
	m.filePath = path
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if fm, ok := final.(model); ok && fm.watcher != nil {
		fm.watcher.Close()
	}
	return err
}

// openFileMsg asks the model to load a file through the normal load path.
type openFileMsg struct {
	path string
}

func initialModel(config *Config) model {
	input := textinput.New()
	input.CharLimit = 256
	input.Width = 40
	m := model{
		mode:     ModeStartup,
		config:   config,
		input:    input,
		progress: newProgress(),
	}
	m.scanDSTFiles()
	return m
}

func (m model) Init() tea.Cmd {
	if m.filePath == "" {
		return nil
	}
	path := m.filePath
	return func() tea.Msg { return openFileMsg{path: path} }
}

func (m model) canvasWidth() int {
	return max(1, m.width-sidePanelWidth-1)
}

func (m model) canvasHeight() int {
	return max(1, m.height-1)
}

// openFile loads path and, on success, replaces the session. On failure the
// current session (or the startup screen) is left untouched.
func (m *model) openFile(path string) tea.Cmd {
	d, err := readDesignFile(path)
	if err != nil {
		log.Printf("load failed: %v", err)
		m.errorMessage = err.Error()
		m.successMessage = ""
		return nil
	}
	m.playGen++
	m.session = newViewerSession(d, m.config.viewMode(), m.config.Speed)
	m.filePath = path
	m.mode = ModeNormal
	m.fromStartup = false
	m.selectedRun = 0
	m.errorMessage = ""
	m.successMessage = fmt.Sprintf("Loaded %s", d.FileName)
	log.Printf("[%s] loaded %s: %d points, %d runs, %d breaks",
		m.session.ID, d.FileName, len(d.Points), len(d.ColorRuns), len(d.Breaks))
	m.layoutPanel()
	return m.watchFile(path)
}

// reloadFile re-reads the open file after an on-disk change. The view mode
// and speed carry over; the trace state starts fresh.
func (m *model) reloadFile() {
	d, err := readDesignFile(m.filePath)
	if err != nil {
		log.Printf("reload failed: %v", err)
		m.errorMessage = err.Error()
		return
	}
	mode, speed := m.config.viewMode(), m.config.Speed
	if m.session != nil {
		mode, speed = m.session.Mode, m.session.Speed
	}
	m.playGen++
	m.session = newViewerSession(d, mode, speed)
	m.selectedRun = 0
	m.errorMessage = ""
	m.successMessage = fmt.Sprintf("Reloaded %s", d.FileName)
	log.Printf("[%s] reloaded %s", m.session.ID, d.FileName)
	m.layoutPanel()
}

func (m *model) watchFile(path string) tea.Cmd {
	m.watcher.Close()
	m.watcher = nil
	if !m.config.Watch {
		return nil
	}
	m.watcher = newFileWatcher(path)
	if m.watcher == nil {
		return nil
	}
	return m.watcher.next()
}

func (m *model) startFileInput(op FileOperation, value string) {
	m.fromStartup = m.mode == ModeStartup
	m.mode = ModeFileInput
	m.fileOp = op
	m.errorMessage = ""
	m.successMessage = ""
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *model) endFileInput() {
	m.input.Blur()
	if m.fromStartup || m.session == nil {
		m.mode = ModeStartup
	} else {
		m.mode = ModeNormal
	}
	m.fromStartup = false
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanel()
		return m, nil

	case openFileMsg:
		return m, m.openFile(msg.path)

	case fileChangedMsg:
		if m.watcher == nil || msg.watcher != m.watcher {
			return m, nil
		}
		m.reloadFile()
		return m, m.watcher.next()

	case playTickMsg:
		if msg.gen != m.playGen || m.session == nil {
			return m, nil
		}
		playing := m.session.Tick(msg.elapsed)
		m.selectedRun = m.session.Trace.CurrentRun
		m.layoutPanel()
		if playing {
			return m, playTickCmd(m.playGen)
		}
		return m, nil

	case tea.KeyMsg:
		if m.help {
			return m.handleHelpKey(msg.String()), nil
		}
		switch m.mode {
		case ModeStartup:
			return m.handleStartupKey(msg.String())
		case ModeFileInput:
			return m.handleFileInputKey(msg)
		case ModeNormal:
			return m.handleNormalKey(msg.String())
		}
	}
	return m, nil
}

func (m model) handleHelpKey(key string) tea.Model {
	switch key {
	case "esc", "q", "?":
		m.help = false
		m.helpScroll = 0
	case "j", "down":
		if m.helpScroll < len(helpLines)-1 {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	}
	return m
}

func (m model) handleStartupKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "k", "up":
		if len(m.fileList) > 0 {
			m.selectedFileIndex = (m.selectedFileIndex - 1 + len(m.fileList)) % len(m.fileList)
		}
	case "j", "down":
		if len(m.fileList) > 0 {
			m.selectedFileIndex = (m.selectedFileIndex + 1) % len(m.fileList)
		}
	case "enter":
		if name := m.selectedFile(); name != "" {
			return m, m.openFile(name)
		}
		m.startFileInput(FileOpOpen, "")
	case "o":
		m.startFileInput(FileOpOpen, m.selectedFile())
	case "?":
		m.help = true
	}
	return m, nil
}

func (m model) handleFileInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.endFileInput()
		m.errorMessage = ""
		return m, nil
	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		if value == "" {
			m.errorMessage = "Please enter a filename"
			return m, nil
		}
		switch m.fileOp {
		case FileOpOpen:
			cmd := m.openFile(value)
			if m.errorMessage == "" {
				m.input.Blur()
			}
			return m, cmd
		case FileOpSavePNG:
			m.exportCurrent(value)
			if m.errorMessage == "" {
				m.endFileInput()
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) exportCurrent(name string) {
	d := m.getDesign()
	if d == nil {
		m.errorMessage = errNothingToExport.Error()
		return
	}
	path := withPNGExt(m.config.GetSavePath(name))
	err := exportPNG(d, m.session.Mode, m.session.renderOptions(), m.config.ExportWidth, m.config.ExportHeight, path)
	if err != nil {
		m.errorMessage = fmt.Sprintf("Error exporting PNG: %s", err.Error())
		return
	}
	m.errorMessage = ""
	m.successMessage = fmt.Sprintf("Exported %s", path)
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}
	if m.mode == ModeStartup || m.session == nil {
		return m.startupView()
	}

	canvas := lipgloss.NewStyle().
		Width(m.canvasWidth()).
		Height(m.canvasHeight()).
		Render(m.renderCanvas(m.canvasWidth(), m.canvasHeight()))
	body := lipgloss.JoinHorizontal(lipgloss.Top, canvas, m.renderSidePanel(m.canvasHeight()))
	return body + "\n" + m.statusLine()
}

func (m model) startupView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("stitchview"))
	b.WriteString("\n\n")
	if len(m.fileList) == 0 {
		b.WriteString(mutedStyle.Render("No .dst files in this directory. Press 'o' to enter a path."))
	} else {
		b.WriteString("DST files:\n")
		for i, name := range m.fileList {
			if i == m.selectedFileIndex {
				b.WriteString(selectedStyle.Render("> " + name))
			} else {
				b.WriteString("  " + name)
			}
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	if m.mode == ModeFileInput {
		b.WriteString(m.statusLine())
	} else {
		b.WriteString(mutedStyle.Render("↑/↓ select | Enter open | o type a path | ? help | q quit"))
		if m.errorMessage != "" {
			b.WriteString("\n" + errorStyle.Render("ERROR: "+m.errorMessage))
		}
	}
	return b.String()
}

func (m model) statusLine() string {
	if m.mode == ModeFileInput {
		opStr := "Open"
		if m.fileOp == FileOpSavePNG {
			opStr = "Export PNG"
		}
		line := fmt.Sprintf("Mode: FILE | %s: %s | Enter=confirm, Esc=cancel", opStr, m.input.View())
		if m.errorMessage != "" {
			line += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
		}
		return line
	}

	s := m.session
	status := fmt.Sprintf("Mode: %s | View: %s", m.modeString(), s.Mode)
	if n := s.runCount(); n > 0 {
		status += fmt.Sprintf(" | Run %d/%d", s.Trace.CurrentRun+1, n)
	}
	status += fmt.Sprintf(" | Speed %d", s.Speed)
	if s.Trace.Playing {
		status += " | ▶ playing"
	}
	switch {
	case m.errorMessage != "":
		status += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
	case m.successMessage != "":
		status += " | " + successStyle.Render(m.successMessage)
	default:
		status += " | ? for help | q to quit"
	}
	return status
}

func (m model) modeString() string {
	switch m.mode {
	case ModeStartup:
		return "STARTUP"
	case ModeNormal:
		return "NORMAL"
	case ModeFileInput:
		return "FILE"
	default:
		return "UNKNOWN"
	}
}

var helpLines = []string{
	"stitchview Help",
	"===============",
	"",
	"Views:",
	"------",
	"  c                Colors: stitches in thread colors",
	"  m                Mono: dark stitches, faint jump travel",
	"  t                Trace: incremental reveal by run",
	"",
	"Playback:",
	"---------",
	"  space            Play / pause (switches to trace)",
	"  h/←  l/→         Previous / next run",
	"  0-9              Seek (0 = first run, 9 = last run)",
	"  G                Show all runs",
	"  r                Reset trace",
	"  +/-              Faster / slower (1-10)",
	"",
	"Lists:",
	"------",
	"  tab              Switch between runs and breaks",
	"  j/↓  k/↑         Move run selection / scroll breaks",
	"  Enter            Jump to the selected run",
	"",
	"Files:",
	"------",
	"  o                Open another .dst file",
	"  e                Export PNG of the current view",
	"  y                Copy file info to the clipboard",
	"",
	"  ?                Toggle this help",
	"  q / Ctrl+C       Quit",
}

func (m model) helpView() string {
	height := max(1, m.height-1)
	start := min(m.helpScroll, max(0, len(helpLines)-height))
	end := min(len(helpLines), start+height)
	return strings.Join(helpLines[start:end], "\n") + "\n" + mutedStyle.Render("j/k scroll | ? or Esc to close")
}
