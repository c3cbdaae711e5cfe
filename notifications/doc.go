// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package notifications polls for pending join requests directed at teams the
current user administers.

# Lifecycle

	Idle → Scheduled → Fetching → (Scheduled | Stopped)

Start fetches once immediately, then once per poll interval. Fetches never
overlap: a tick that fires mid-fetch is skipped. Stop cancels the timer
deterministically; a fetch resolving after Stop discards its result instead
of applying it to torn-down state.

# Fetch Semantics

Each fetch replaces the pending list with the server's current set - an
authoritative overwrite, not a merge. A non-empty set raises the unseen
flag; no fetch ever lowers it. Open() lowers the flag without touching the
list ("seen" is purely a display concern).

# Resolution

	err := poller.Resolve(ctx, requestID, notifications.DecisionApprove)

The notification leaves the local list before the remote call. On failure it
is re-inserted and the error surfaces - a notification is never lost
silently. A 409 means the request was resolved elsewhere: it stays removed
and ErrAlreadyResolved is returned. Approved requesters appear as members on
the next team fetch, not through this package.

# Deterministic Testing

The poll timer sits behind the Scheduler interface; tests substitute a
hand-driven scheduler so ticks fire without real time passing.
*/
package notifications
