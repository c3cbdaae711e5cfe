// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings plus the arguments
after the flags (the subcommand and its operands):

	cfg, args, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - BackendURL: base URL of the matchmaking backend (required)
  - DatabaseURL: local database path or connection string (default: teamup.db)
  - DatabaseType: sqlite (default) or postgres
  - RequestTimeout: bound on every remote call (default: 10s)
  - PollInterval: notification poll period (default: 20s)

# CLI Flags

	-b             Backend base URL
	-d             Local database URL or path
	-t             Local database type
	--timeout      Per-request timeout
	--poll-interval Notification poll period

# Environment Variables

Flags fall back to environment variables:

	BACKEND_URL     → -b
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	REQUEST_TIMEOUT → --timeout
	POLL_INTERVAL   → --poll-interval

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - BACKEND_URL must be provided
  - DATABASE_TYPE must be sqlite or postgres
*/
package cliparse
