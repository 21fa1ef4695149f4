package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".stitchview.toml")
	//nolint:gosec // Test file permissions are acceptable
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	got := loadConfigFile(filepath.Join(t.TempDir(), "absent.toml"), "/home/x")
	if *got != *defaultConfig() {
		t.Errorf("got %+v, want defaults", got)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := writeConfig(t, `
save_directory = "/tmp/exports"
default_mode = "trace"
speed = 8
watch = false
export_width = 640
export_height = 480
`)
	got := loadConfigFile(path, "/home/x")
	want := Config{
		SaveDirectory: "/tmp/exports",
		DefaultMode:   "trace",
		Speed:         8,
		Watch:         false,
		ExportWidth:   640,
		ExportHeight:  480,
	}
	if *got != want {
		t.Errorf("got %+v, want %+v", *got, want)
	}
	if got.viewMode() != ViewTrace {
		t.Errorf("viewMode = %v, want trace", got.viewMode())
	}
}

func TestLoadConfigNormalizes(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		check func(*Config) bool
	}{
		{"tilde expanded", `save_directory = "~/stitches"`, func(c *Config) bool {
			return c.SaveDirectory == filepath.Join("/home/x", "stitches")
		}},
		{"relative made absolute", `save_directory = "out"`, func(c *Config) bool {
			return filepath.IsAbs(c.SaveDirectory)
		}},
		{"unknown mode", `default_mode = "sepia"`, func(c *Config) bool {
			return c.DefaultMode == "colors" && c.viewMode() == ViewColors
		}},
		{"speed too high", `speed = 99`, func(c *Config) bool { return c.Speed == maxSpeed }},
		{"speed too low", `speed = -2`, func(c *Config) bool { return c.Speed == minSpeed }},
		{"bad export size", "export_width = 0\nexport_height = -5", func(c *Config) bool {
			return c.ExportWidth == 1200 && c.ExportHeight == 900
		}},
		{"malformed file", `speed = [`, func(c *Config) bool { return *c == *defaultConfig() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := loadConfigFile(writeConfig(t, tt.body), "/home/x")
			if !tt.check(got) {
				t.Errorf("loadConfigFile(%q) = %+v", tt.body, got)
			}
		})
	}
}

func TestGetSavePath(t *testing.T) {
	if got := (&Config{}).GetSavePath("a.png"); got != "a.png" {
		t.Errorf("GetSavePath without directory = %q", got)
	}
	dir := filepath.Join(t.TempDir(), "nested")
	got := (&Config{SaveDirectory: dir}).GetSavePath("a.png")
	if got != filepath.Join(dir, "a.png") {
		t.Errorf("GetSavePath = %q", got)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("save directory not created: %v", err)
	}
}
