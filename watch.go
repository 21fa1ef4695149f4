package main

import (
	"log"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// fileChangedMsg is sent when the open design changes on disk. watcher
// identifies the loop that sent it; messages from a replaced watcher are
// dropped.
type fileChangedMsg struct {
	path    string
	watcher *fileWatcher
}

// fileWatcher watches the directory of one file. Editors often replace files
// instead of writing them, so the directory is watched and events filtered
// by name.
type fileWatcher struct {
	path    string
	watcher *fsnotify.Watcher
}

func newFileWatcher(path string) *fileWatcher {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("fsnotify: failed to create watcher: %v (live reload disabled)", err)
		return nil
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		log.Printf("fsnotify: failed to watch %s: %v (live reload disabled)", abs, err)
		return nil
	}
	return &fileWatcher{path: abs, watcher: watcher}
}

func (w *fileWatcher) Close() {
	if w == nil {
		return
	}
	_ = w.watcher.Close()
}

func (w *fileWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// next blocks until a debounced change to the file arrives. It returns nil
// once the watcher is closed.
func (w *fileWatcher) next() tea.Cmd {
	return func() tea.Msg {
		timer := time.NewTimer(time.Hour)
		timer.Stop()
		defer timer.Stop()
		pending := false

		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}
				if !w.relevant(event) {
					continue
				}
				pending = true
				timer.Reset(watchDebounce)

			case <-timer.C:
				if pending {
					return fileChangedMsg{path: w.path, watcher: w}
				}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				log.Printf("fsnotify: watcher error: %v", err)
			}
		}
	}
}
