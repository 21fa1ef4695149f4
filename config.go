package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	SaveDirectory string `toml:"save_directory"`
	DefaultMode   string `toml:"default_mode"`
	Speed         int    `toml:"speed"`
	Watch         bool   `toml:"watch"`
	ExportWidth   int    `toml:"export_width"`
	ExportHeight  int    `toml:"export_height"`
}

func defaultConfig() *Config {
	return &Config{
		DefaultMode:  ViewColors.String(),
		Speed:        defaultSpeed,
		Watch:        true,
		ExportWidth:  1200,
		ExportHeight: 900,
	}
}

// loadConfig reads ~/.stitchview.toml. Any problem yields the defaults.
func loadConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return defaultConfig()
	}
	return loadConfigFile(filepath.Join(homeDir, ".stitchview.toml"), homeDir)
}

func loadConfigFile(path, homeDir string) *Config {
	config := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return config
	}
	if err := toml.Unmarshal(data, config); err != nil {
		return defaultConfig()
	}

	if value := config.SaveDirectory; value != "" {
		if strings.HasPrefix(value, "~") {
			value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
		}
		if !filepath.IsAbs(value) {
			if absPath, err := filepath.Abs(value); err == nil {
				value = absPath
			}
		}
		config.SaveDirectory = value
	}
	if _, ok := parseViewMode(config.DefaultMode); !ok {
		config.DefaultMode = ViewColors.String()
	}
	config.Speed = clampSpeed(config.Speed)
	if config.ExportWidth <= 0 {
		config.ExportWidth = 1200
	}
	if config.ExportHeight <= 0 {
		config.ExportHeight = 900
	}
	return config
}

func (c *Config) viewMode() ViewMode {
	mode, _ := parseViewMode(c.DefaultMode)
	return mode
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}
