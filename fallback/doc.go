// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package fallback stores teams created while the backend was unreachable.

# Behavior

When remote team creation fails with a transport error, the membership
service appends the validated payload here instead of failing the workflow:

	rec, err := cache.Append(payload, creatorUsername)

Each record gets a locally generated uuid (never a server id), the creator as
its only member, and a creation timestamp. The collection is append-only;
nothing in this layer updates or deletes records.

List returns all records oldest first for display and future sync:

	records, err := cache.List()

A fallback record is invisible to other clients until synced - the trade-off
that keeps team creation usable when the backend is flaky.
*/
package fallback
