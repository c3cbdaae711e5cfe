// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the teamup CLI.

Teamup is a command-line client for a team-matchmaking service: browse and
join teams, watch and resolve join requests, discuss games in comment
threads, and rate teammates after playing. It keeps a small local database
so sessions survive restarts and work done while the backend is down is not
lost.

# Running

The client requires a backend URL via environment variables or CLI flags:

	BACKEND_URL=https://api.example.com teamup team list

Or with flags:

	teamup -b https://api.example.com team list

# Configuration

Required settings:

  - BACKEND_URL (-b): Base URL of the backend API

Optional settings:

  - DATABASE_URL (-d): Local database location (default: teamup.db)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - REQUEST_TIMEOUT (--timeout): Per-request deadline (default: 10s)
  - POLL_INTERVAL (--poll-interval): Notification poll period (default: 20s)

A .env file in the working directory is loaded if present.

# Architecture

The client uses a service-based architecture with dependency injection:

  - backend: HTTP client and error classification
  - session: Durable auth token storage
  - membership: Team join/leave/create flows with offline fallback
  - interactions: Comment store with optimistic vote toggling
  - notifications: Background poller for pending join requests
  - grading: One-shot teammate ratings with offline queueing
  - fallback: Local cache for teams created while offline
  - localdb: Schema creation for the local database
  - models: Request/response and domain types
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
