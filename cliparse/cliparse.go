// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"os"
	"time"
)

type Config struct {
	BackendURL     string
	DatabaseURL    string
	DatabaseType   string
	RequestTimeout time.Duration
	PollInterval   time.Duration
}

// ParseFlags validates flags and resolves the backend and local store
// settings. The returned slice holds the arguments after the flags - the
// subcommand and its operands.
func ParseFlags(args []string) (Config, []string, error) {
	var cfg Config

	fs := flag.NewFlagSet("teamup", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.StringVar(&cfg.BackendURL, "b", "", "Backend base URL")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Local database URL or path")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Local database type (sqlite or postgres)")

	// Timing (prefer env variables, but allow CLI for dev)
	fs.DurationVar(&cfg.RequestTimeout, "timeout", 0, "Per-request timeout (prefer env)")
	fs.DurationVar(&cfg.PollInterval, "poll-interval", 0, "Notification poll period (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, nil, err
	}

	// Fall back to environment variables
	if cfg.BackendURL == "" {
		cfg.BackendURL = os.Getenv("BACKEND_URL")
	}
	if cfg.BackendURL == "" {
		return Config{}, nil, errors.New("backend URL required (use -b or BACKEND_URL env)")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "teamup.db"
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, nil, errors.New("database type must be sqlite or postgres")
	}

	if cfg.RequestTimeout == 0 {
		if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return Config{}, nil, errors.New("invalid REQUEST_TIMEOUT env variable")
			}
			cfg.RequestTimeout = d
		} else {
			cfg.RequestTimeout = 10 * time.Second // default
		}
	}

	if cfg.PollInterval == 0 {
		if v := os.Getenv("POLL_INTERVAL"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return Config{}, nil, errors.New("invalid POLL_INTERVAL env variable")
			}
			cfg.PollInterval = d
		} else {
			cfg.PollInterval = 20 * time.Second // default
		}
	}
	if cfg.RequestTimeout < 0 || cfg.PollInterval < 0 {
		return Config{}, nil, errors.New("timeouts must be positive")
	}

	return cfg, fs.Args(), nil
}
