// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package optimistic provides the apply/send/revert command used for local
mutations that must be reconciled with the backend.

# Usage

	err := optimistic.Run(ctx, optimistic.Command{
		Apply:  func() { ... mutate local state ... },
		Send:   func(ctx context.Context) error { return client.Call(ctx) },
		Revert: func() { ... undo the mutation ... },
	})

Run applies the local delta before the network round trip, so the caller's
view reflects the change immediately. If Send fails for any reason the delta
is reverted in full; state is never left inconsistent after a definitive
failure.

Both the comment vote store and the notification poller build their
mutations on this command.
*/
package optimistic
