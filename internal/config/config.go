// Package config loads the argbind CLI configuration from the environment,
// after merging an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Prefix is prepended to every variable name.
const Prefix = "ARGBIND_"

// DefaultEnvFile is read when Load is given no files. It may be absent.
const DefaultEnvFile = ".env"

// Config holds the CLI settings.
type Config struct {
	// Strict enables the format consistency checks.
	Strict bool `env:"STRICT" envDefault:"true"`
	// FastPath enables the binder's early return.
	FastPath bool `env:"FAST_PATH" envDefault:"true"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	// OutputDir receives generated files.
	OutputDir string `env:"OUTPUT_DIR" envDefault:"./generated"`
	// Package names the generated package.
	Package string `env:"PACKAGE" envDefault:"bindings"`
	// ModulePath is the import path generated code uses for argbind.
	ModulePath string `env:"MODULE_PATH" envDefault:"argbind"`
}

// Load merges the given .env files into the process environment (existing
// variables win) and parses the configuration. Without files the optional
// DefaultEnvFile is used; explicitly named files must exist.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		err := godotenv.Load(DefaultEnvFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", DefaultEnvFile, err)
		}
	} else if err := godotenv.Load(files...); err != nil {
		return nil, fmt.Errorf("loading env files: %w", err)
	}

	var cfg Config

	err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix})
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	return &cfg, nil
}

// Logger returns a text logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel}))
}
