// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package interactions manages per-comment vote state with optimistic
concurrency.

# Vote Toggling

ToggleVote applies the full transition table for the mutually exclusive
viewer vote:

	none    → like:    vote=like,    likeCount+1
	none    → dislike: vote=dislike, dislikeCount+1
	like    → like:    vote=none,    likeCount-1 (un-vote)
	dislike → dislike: vote=none,    dislikeCount-1
	like    → dislike: vote=dislike, likeCount-1, dislikeCount+1
	dislike → like:    vote=like,    dislikeCount-1, likeCount+1

The delta lands locally before any network round trip. Compound transitions
issue two remote calls with the un-vote first; if any call fails the whole
local delta is reverted, so (viewerVote, likeCount, dislikeCount) is exactly
the pre-call tuple after a failure.

# Serialization

A toggle in flight blocks further toggles on that comment
(ErrToggleInFlight) until it resolves. Toggles on different comments run
concurrently.

# Comments

FetchComments replaces the local list for a game with the server's view.
PostComment requires non-empty content and appends the created comment with
zero counts and no viewer vote.
*/
package interactions
