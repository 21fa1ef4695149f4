package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
)

func (m *model) getDesign() *Design {
	if m.session == nil {
		return nil
	}
	return m.session.Design
}

// scanDSTFiles lists the .dst files in the working directory for the
// startup screen.
func (m *model) scanDSTFiles() {
	m.fileList = []string{}

	dir, err := os.Getwd()
	if err != nil {
		m.selectedFileIndex = -1
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		m.selectedFileIndex = -1
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() && isDSTName(entry.Name()) {
			m.fileList = append(m.fileList, entry.Name())
		}
	}
	sort.Strings(m.fileList)

	if len(m.fileList) > 0 {
		m.selectedFileIndex = 0
	} else {
		m.selectedFileIndex = -1
	}
}

func (m *model) selectedFile() string {
	if m.selectedFileIndex < 0 || m.selectedFileIndex >= len(m.fileList) {
		return ""
	}
	return m.fileList[m.selectedFileIndex]
}

func copySummary(d *Design) error {
	return clipboard.WriteAll(strings.Join(d.summaryLines(), "\n"))
}

// exportName is the default PNG name for the open design.
func exportName(d *Design, mode ViewMode) string {
	base := strings.TrimSuffix(d.FileName, filepath.Ext(d.FileName))
	return base + "-" + mode.String() + ".png"
}
