package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	DBPath      string   `toml:"db_path"`
	DeviceOwner string   `toml:"device_owner"`
	EditMarkers []string `toml:"edit_markers"`
	FFProbePath string   `toml:"ffprobe_path"`
	// keep zip extraction directories around after parsing
	KeepExtracted bool `toml:"keep_extracted"`
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DBPath:      filepath.Join(home, ".config", "waex", "waex.db"),
		FFProbePath: "ffprobe",
	}

	cfgPath := filepath.Join(home, ".config", "waex", "config.toml")
	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	// expand ~ in paths
	cfg.DBPath = expandHome(cfg.DBPath, home)
	cfg.FFProbePath = expandHome(cfg.FFProbePath, home)

	return cfg, nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
