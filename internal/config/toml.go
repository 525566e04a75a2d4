// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Solver SolverConfig `toml:"solver"`
	Bench  BenchConfig  `toml:"bench"`
}

// SolverConfig maps settings shared by every solve session.
type SolverConfig struct {
	Dict     *string `toml:"dict"`
	TieBreak *string `toml:"tie-break"`
}

// BenchConfig maps batch harness settings.
type BenchConfig struct {
	Workers  *int  `toml:"workers"`
	Wire     *bool `toml:"wire"`
	Progress *bool `toml:"progress"`
	Save     *bool `toml:"save"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
