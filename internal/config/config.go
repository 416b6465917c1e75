// Package config loads the environment-driven settings of the command line
// tools.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config holds tool settings. Values come from the process environment,
// optionally seeded from .env files.
type Config struct {
	// LogLevel is trace, debug, info, warn or error. ENV: IOC_LOG_LEVEL
	LogLevel string `env:"IOC_LOG_LEVEL,default=info"`
	// LogFormat is console or json. ENV: IOC_LOG_FORMAT
	LogFormat string `env:"IOC_LOG_FORMAT,default=console"`
	// Definitions lists definition files, separated by ';'. ENV: IOC_DEFINITIONS
	Definitions []string `env:"IOC_DEFINITIONS"`
}

// Load reads envFiles (".env" when none are given) into the environment and
// decodes Config from it. Missing env files are skipped and malformed ones
// are an error. Variables already set in the process win over file values.
func Load(envFiles ...string) (Config, error) {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg := Config{LogLevel: "info", LogFormat: "console"}
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, err
	}
	cfg.Definitions = compact(cfg.Definitions)
	return cfg, nil
}

func compact(paths []string) []string {
	var out []string
	for _, p := range paths {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
