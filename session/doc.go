// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session holds the current credential and identity.

# Lifecycle

The store is created once at startup and restored from the local database:

	store := session.NewStore(db)
	if err := store.Restore(); err != nil { ... }

Set is called once after successful authentication; Clear on logout. After
Clear every authenticated remote call fails without touching the network.

# Reads

The store implements backend.TokenSource:

	token, ok := store.Credential()

Current returns the full triple:

	sess, err := store.Current()

Reads are concurrent-safe; only the auth flow and logout write.

# Token Claims

Auth responses that omit the identity have userId and username derived from
the JWT claims. Parsing is unverified - the backend signs and validates the
token; the client only reads it. A persisted token whose exp claim has passed
is discarded during Restore.
*/
package session
