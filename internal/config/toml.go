// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/tuibonds/internal/model"
	"github.com/verte-zerg/tuibonds/internal/prefs"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Player PlayerConfig `toml:"player"`
	Game   GameConfig   `toml:"game"`
}

// PlayerConfig maps player settings.
type PlayerConfig struct {
	Name *string `toml:"name"`
}

// GameConfig maps difficulty settings. A preset is applied before the
// individual fields.
type GameConfig struct {
	Preset   *string   `toml:"preset"`
	Min      *int      `toml:"min"`
	Max      *int      `toml:"max"`
	Operands *int      `toml:"operands"`
	Problems *int      `toml:"problems"`
	Decoys   *int      `toml:"decoys"`
	Ops      *[]string `toml:"ops"`
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
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Apply overlays the file values onto base.
func (g GameConfig) Apply(base model.DifficultyConfig) (model.DifficultyConfig, error) {
	cfg := base
	if g.Preset != nil {
		var err error
		if cfg, err = prefs.ApplyPreset(cfg, *g.Preset); err != nil {
			return base, err
		}
	}
	setInt(&cfg.MinNumber, g.Min)
	setInt(&cfg.MaxNumber, g.Max)
	setInt(&cfg.OperandCount, g.Operands)
	setInt(&cfg.ProblemCount, g.Problems)
	setInt(&cfg.DecoyCount, g.Decoys)
	if g.Ops != nil {
		ops, err := prefs.ParseOperations(*g.Ops)
		if err != nil {
			return base, fmt.Errorf("config ops: %w", err)
		}
		cfg.Operations = ops
	}
	return cfg, nil
}

func setInt(target *int, value *int) {
	if value != nil {
		*target = *value
	}
}
