// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package grading records one-shot teammate ratings.

# Submission

	err := svc.Submit(ctx, teammateID, rating)

Ratings are 1-5 stars and each teammate can be graded exactly once; a repeat
submission fails locally with ErrAlreadyGraded before any network call.

# Queueing

A grade is written to the local database first. If the backend is
unreachable the grade stays queued (synced=0) and Submit still succeeds, the
same degraded-success trade-off the team fallback cache makes. SyncPending
pushes queued grades later:

	n, err := svc.SyncPending(ctx)

Authentication failures are not degradable: the local record is removed and
the error surfaces.
*/
package grading
