// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package backend is the transport wrapper for the matchmaking API.

# Client

NewClient builds a client bound to a base URL, a per-request timeout, and a
credential source:

	client := backend.NewClient(cfg.BackendURL, cfg.RequestTimeout, sessionStore)

Every call takes a context and is additionally bounded by the configured
timeout. Authenticated calls fail with ErrUnauthenticated before touching the
network when the session holds no credential.

# Error Taxonomy

Outcomes are classified into sentinel errors checked with errors.Is:

  - ErrUnauthenticated: no credential, or 401/403
  - ErrNotFound: 404
  - ErrConflict: 409, translated by the caller into its precondition error
  - ErrNetwork: transport failure or timeout
  - ErrServer: any other non-success status

Nothing escapes as a raw transport error; callers never see *url.Error.

# Endpoints

Authentication (anonymous):

	POST /login     → Login
	POST /register  → Register

Teams (bearer):

	GET  /teams                 → Teams
	GET  /teams/{id}            → Team
	POST /teams/join            → JoinTeam
	POST /teams/leave           → LeaveTeam
	POST /teams/create          → CreateTeam
	GET  /teams/my_team_request → PendingRequests
	POST /teams/approve/{id}    → ApproveRequest
	POST /teams/reject/{id}     → RejectRequest

Comments (bearer):

	GET  /game_info/{gameId}/comments        → Comments
	POST /game_info/{gameId}/comments        → PostComment
	POST /game_info/comments/{id}/{action}   → VoteComment

# Vote Encoding

The vote contract is the action-suffix scheme: like, dislike, unlike,
undislike. Compound transitions (like→dislike) issue the un-vote first so a
mid-sequence failure leaves at worst a removed vote, never a doubled one.
*/
package backend
