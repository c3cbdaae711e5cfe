// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package backend

import "errors"

// Transport-level error taxonomy. Every remote call resolves to nil or to an
// error matching exactly one of these via errors.Is. Precondition errors
// (already a member, schedule invalid, ...) belong to the calling component,
// not to the transport.
var (
	// ErrUnauthenticated covers a missing credential as well as a 401/403
	// from the backend. Callers redirect to the auth flow rather than retry.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrNotFound is a definitive 404 for the requested resource.
	ErrNotFound = errors.New("not found")

	// ErrConflict is a 409; the component translates it into its own
	// precondition error (duplicate join, already resolved, ...).
	ErrConflict = errors.New("conflict")

	// ErrNetwork is any transport failure or timeout. The request may or may
	// not have reached the backend; optimistic updates must roll back.
	ErrNetwork = errors.New("network failure")

	// ErrServer is a non-success status with a body. Surfaced as a generic
	// failure; the response message is attached by wrapping.
	ErrServer = errors.New("server error")
)
