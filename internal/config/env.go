package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Env holds overrides read from the environment.
type Env struct {
	ConfigPath string `env:"TUIBONDS_CONFIG"`
	DBPath     string `env:"TUIBONDS_DB"`
	Seed       int64  `env:"TUIBONDS_SEED" envDefault:"0"`
}

// LoadEnv reads an optional .env file and then the process environment.
// Empty paths fall back to the XDG defaults.
func LoadEnv() (Env, error) {
	_ = godotenv.Load()
	return parseEnv()
}

func parseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	if e.ConfigPath == "" {
		e.ConfigPath = DefaultConfigPath()
	}
	if e.DBPath == "" {
		e.DBPath = DefaultDBPath()
	}
	return e, nil
}
