// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package membership owns team retrieval and membership mutation.

# Service

	svc := membership.NewService(client, sessionStore, fallbackCache)

Operations:

  - FetchTeam / ListTeams: reads, no side effects
  - Join: sends a join request; pending until an admin resolves it
  - Leave: removes the current user; caller confirms with the user first
  - CreateTeam: validate, attempt remote, degrade to the fallback cache

# Membership Determination

IsMember is a pure function over the fetched member list:

	membership.IsMember(sess.UserID, res.Members)

It holds the invariant isMember(u, team) ⇔ u ∈ team.members and drives
whether the view offers Join or Leave.

# Join Semantics

Join fails with ErrAlreadyMember when the user is already in the member list.
A 409 from the backend means a request for this (team, user) pair is still
pending; that is an idempotent no-op, not an error. Success means the request
entered the pending state - never immediate membership.

# Degraded Creation

CreateTeam checks the schedule window (end after start) synchronously and
returns ErrInvalidSchedule before any network call. A transport or server
failure after validation appends the payload to the fallback cache and
reports CreateResult.Fallback=true: the team was created but may not be
visible to other users. Unauthenticated is never degraded.
*/
package membership
