package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestFileWatcherRelevant(t *testing.T) {
	w := &fileWatcher{path: "/designs/logo.dst"}
	tests := []struct {
		event fsnotify.Event
		want  bool
	}{
		{fsnotify.Event{Name: "/designs/logo.dst", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/designs/logo.dst", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "/designs/./logo.dst", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/designs/logo.dst", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/designs/logo.dst", Op: fsnotify.Remove}, false},
		{fsnotify.Event{Name: "/designs/other.dst", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		if got := w.relevant(tt.event); got != tt.want {
			t.Errorf("relevant(%v) = %v, want %v", tt.event, got, tt.want)
		}
	}
}

func TestFileWatcherNotifiesOnWrite(t *testing.T) {
	path := twoRunFile(t)
	w := newFileWatcher(path)
	if w == nil {
		t.Skip("fsnotify unavailable")
	}
	defer w.Close()

	got := make(chan any, 1)
	go func() { got <- w.next()() }()

	// a burst of writes collapses into one message
	for i := 0; i < 3; i++ {
		//nolint:gosec // Test file permissions are acceptable
		if err := os.WriteFile(path, dstBytes("LA:Changed\r", endRecord), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case msg := <-got:
		changed, ok := msg.(fileChangedMsg)
		if !ok {
			t.Fatalf("got %#v, want fileChangedMsg", msg)
		}
		if changed.watcher != w {
			t.Error("message does not identify its watcher")
		}
		abs, _ := filepath.Abs(path)
		if changed.path != abs {
			t.Errorf("path = %q, want %q", changed.path, abs)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestFileWatcherStopsOnClose(t *testing.T) {
	w := newFileWatcher(twoRunFile(t))
	if w == nil {
		t.Skip("fsnotify unavailable")
	}
	done := make(chan any, 1)
	go func() { done <- w.next()() }()
	w.Close()

	select {
	case msg := <-done:
		if msg != nil {
			t.Errorf("got %#v after close, want nil", msg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("next did not return after Close")
	}
}
