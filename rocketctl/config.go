package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/syncwave/rocket/rocket"
)

const DefaultConfigPath = "rocketctl.toml"

type Config struct {
	TrackerUrl    string   `toml:"tracker_url"`
	WebSocket     bool     `toml:"websocket"`
	TracksFile    string   `toml:"tracks_file"`
	RowsPerSecond float64  `toml:"rows_per_second"`
	Tracks        []string `toml:"tracks"`
}

func defaultConfig() *Config {
	return &Config{
		TrackerUrl:    rocket.DefaultTrackerEndpoint,
		TracksFile:    "tracks.bin",
		RowsPerSecond: 31.25,
		Tracks:        []string{"test", "test2", "a:test2"},
	}
}

// loadConfig overlays a TOML file onto the defaults. A missing file at
// the default path is fine; an explicitly named file must exist.
func loadConfig(path string, explicit bool) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.RowsPerSecond <= 0 {
		return nil, fmt.Errorf("config %s: rows_per_second must be positive", path)
	}
	return cfg, nil
}
