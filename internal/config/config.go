// Package config loads runtime settings. Flags beat environment variables,
// which beat values from the optional dotenv file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage backend names
const (
	StoreAuto   = "auto"
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

// DefaultEnvFile is read when present; a missing file is not an error.
const DefaultEnvFile = ".env"

// Config holds every runtime setting
type Config struct {
	Store          string `env:"RPS_STORE" envDefault:"auto"`
	BotName        string `env:"RPS_BOT_NAME" envDefault:"mafaldo"`
	Seed           int64  `env:"RPS_SEED" envDefault:"0"`
	Shuffle        bool   `env:"RPS_SHUFFLE" envDefault:"true"`
	LogLevel       string `env:"RPS_LOG_LEVEL" envDefault:"warn"`
	LogDevelopment bool   `env:"RPS_LOG_DEV" envDefault:"false"`

	// flag-only
	Standings bool
	Args      []string
}

// LoadEnvFile exports the variables in path without overriding ones already set.
func LoadEnvFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Parse builds a Config: the dotenv file named by -env-file (or DefaultEnvFile)
// seeds the environment, env vars fill defaults, then flags override.
func Parse(flags *flag.FlagSet, args []string) (Config, error) {
	if flags == nil {
		return Config{}, errors.New("flag parser is required")
	}
	if err := LoadEnvFile(envFileFromArgs(args)); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	var envFile string
	flags.StringVar(&envFile, "env-file", DefaultEnvFile, "dotenv file to load before reading the environment")
	flags.StringVar(&cfg.Store, "store", cfg.Store, "history backend: auto, json or sqlite")
	flags.StringVar(&cfg.BotName, "bot", cfg.BotName, "name of the adaptive computer player")
	flags.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed, 0 picks one")
	flags.BoolVar(&cfg.Shuffle, "shuffle", cfg.Shuffle, "randomize seat order")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	flags.BoolVar(&cfg.LogDevelopment, "log-dev", cfg.LogDevelopment, "human-readable development logs")
	flags.BoolVar(&cfg.Standings, "standings", false, "print the standings table and exit")
	if args == nil {
		args = []string{}
	}
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.Args = flags.Args()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks setting values, not positional arguments.
func (c Config) Validate() error {
	switch c.Store {
	case StoreAuto, StoreJSON, StoreSQLite:
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if strings.TrimSpace(c.BotName) == "" {
		return errors.New("bot name is required")
	}
	return nil
}

// StoreFor resolves StoreAuto from the history file extension.
func (c Config) StoreFor(path string) string {
	if c.Store != StoreAuto {
		return c.Store
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return StoreSQLite
	default:
		return StoreJSON
	}
}

// envFileFromArgs finds -env-file before flags are parsed, since the file
// must be loaded before env defaults are bound to flags.
func envFileFromArgs(args []string) string {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		name := strings.TrimLeft(arg, "-")
		if name == arg {
			continue
		}
		if value, ok := strings.CutPrefix(name, "env-file="); ok {
			return value
		}
		if name == "env-file" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return DefaultEnvFile
}
