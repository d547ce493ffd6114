// internal/config/config.go
//
// Process configuration.
// Values come from the environment, optionally seeded from a .env file in the
// working directory. Command-line flags override them in cmd.

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every setting the binary reads from the environment.
type Config struct {
	Port         string `env:"PORT"             envDefault:"5175"`
	LogLevel     string `env:"LOG_LEVEL"        envDefault:"info"`
	DBPath       string `env:"MIXLE_DB"`
	Storage      string `env:"MIXLE_STORAGE"    envDefault:"sqlite"`
	ClientOrigin string `env:"CLIENT_ORIGIN"    envDefault:"http://localhost:5173"`
	ShareHost    string `env:"MIXLE_SHARE_HOST" envDefault:"Mixle"`
}

// Load reads .env (if present) and parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ResolveDBPath picks the database file: an explicit path first, then
// MIXLE_DB, then $XDG_DATA_HOME/mixle/mixle.db, then
// ~/.local/share/mixle/mixle.db.
func (c Config) ResolveDBPath(flag string) (string, error) {
	switch {
	case flag != "":
		return flag, nil
	case c.DBPath != "":
		return c.DBPath, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "mixle", "mixle.db"), nil
}
