// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the client.

# Request Types

Types serialized into outgoing JSON bodies:

  - LoginRequest / RegisterRequest: credentials for the auth endpoints
  - JoinTeamRequest / LeaveTeamRequest: team id envelopes
  - CreateTeamRequest: full team payload including the play schedule
  - PostCommentRequest: comment content
  - SubmitGradeRequest: teammate rating

# Response Types

Types parsed from backend responses:

  - AuthResponse: bearer token plus identity
  - TeamResponse: team with its current member list
  - MeResponse: identity check for a restored session
  - ErrorResponse: error, message

# Domain Types

  - Team, Member, Schedule: the matchmaking core
  - JoinRequest: pending/approved/rejected membership request
  - Notification: admin-facing view of a pending JoinRequest
  - Comment: per-viewer vote state with like/dislike counts
  - LocalTeamRecord: offline fallback snapshot of a created team
  - Grade: one-shot teammate rating

# Constants

Join request status:

	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"

Viewer vote states (mutually exclusive per comment and viewer):

	VoteNone    = "none"
	VoteLike    = "like"
	VoteDislike = "dislike"
*/
package models
