// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package testutil provides shared helpers for the client test suites.

# Local Database

SetupTestDB opens a fresh sqlite database under t.TempDir with the full
schema applied:

	db := testutil.SetupTestDB(t)

# Fake Backend

NewFakeBackend starts a scripted httptest server covering the whole API
surface the client consumes:

	srv := testutil.NewFakeBackend(t)
	client := backend.NewClient(srv.URL, time.Second, store)

Seed state via AddTeam, AddRequest, and AddComment. Failure modes are
toggled per field (JoinConflict, CreateFailures, VoteFailures,
ResolveStatus, GradeStatus); transport failures are simulated by closing the
server. Recorded traffic (VoteActions, Created, Grades) lets tests assert
call order.

All authenticated routes require the TestToken bearer credential.

# Tokens

SignedToken builds an HS256 token with userId/username/exp claims for
session tests. Any signing key works - the client parses unverified.
*/
package testutil
