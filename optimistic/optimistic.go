// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package optimistic

import "context"

// Command is one optimistic mutation: Apply the local delta synchronously,
// Send the remote call, Revert the delta if the send fails. Apply and Revert
// must be exact inverses and must take the owning store's lock themselves;
// Send must not hold it.
type Command struct {
	Apply  func()
	Send   func(ctx context.Context) error
	Revert func()
}

// Run executes the command. On a send failure the local delta is reverted
// before the error is returned, so state is never left half-applied.
func Run(ctx context.Context, cmd Command) error {
	cmd.Apply()
	if err := cmd.Send(ctx); err != nil {
		cmd.Revert()
		return err
	}
	return nil
}
