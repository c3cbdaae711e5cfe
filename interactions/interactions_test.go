// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package interactions

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/danielhkuo/teamup/backend"
	"github.com/danielhkuo/teamup/models"
	"github.com/danielhkuo/teamup/testutil"
)

func setup(t *testing.T) (*Store, *testutil.FakeBackend) {
	t.Helper()

	fake := testutil.NewFakeBackend(t)
	client := backend.NewClient(fake.URL, time.Second, staticSession{})
	return NewStore(client), fake
}

type staticSession struct{}

func (staticSession) Credential() (string, bool) { return testutil.TestToken, true }

func seed(t *testing.T, s *Store, fake *testutil.FakeBackend, c models.Comment) models.Comment {
	t.Helper()

	fake.AddComment(c)
	list, err := s.FetchComments(context.Background(), c.GameID)
	if err != nil {
		t.Fatalf("Failed to fetch comments: %v", err)
	}
	for _, got := range list {
		if got.ID == c.ID {
			return got
		}
	}
	t.Fatalf("Seeded comment %d not returned", c.ID)
	return models.Comment{}
}

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		direction string
		next      string
		like      int
		dislike   int
		actions   []string
	}{
		{"fresh like", models.VoteNone, models.VoteLike, models.VoteLike, +1, 0,
			[]string{backend.VoteActionLike}},
		{"fresh dislike", models.VoteNone, models.VoteDislike, models.VoteDislike, 0, +1,
			[]string{backend.VoteActionDislike}},
		{"un-like", models.VoteLike, models.VoteLike, models.VoteNone, -1, 0,
			[]string{backend.VoteActionUnlike}},
		{"un-dislike", models.VoteDislike, models.VoteDislike, models.VoteNone, 0, -1,
			[]string{backend.VoteActionUndislike}},
		{"dislike to like", models.VoteDislike, models.VoteLike, models.VoteLike, +1, -1,
			[]string{backend.VoteActionUndislike, backend.VoteActionLike}},
		{"like to dislike", models.VoteLike, models.VoteDislike, models.VoteDislike, -1, +1,
			[]string{backend.VoteActionUnlike, backend.VoteActionDislike}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := transition(tt.current, tt.direction)
			if err != nil {
				t.Fatalf("transition(%q, %q) failed: %v", tt.current, tt.direction, err)
			}
			if d.next != tt.next || d.like != tt.like || d.dislike != tt.dislike {
				t.Errorf("Got next=%q like=%+d dislike=%+d, want next=%q like=%+d dislike=%+d",
					d.next, d.like, d.dislike, tt.next, tt.like, tt.dislike)
			}
			if !reflect.DeepEqual(d.actions, tt.actions) {
				t.Errorf("Actions = %v, want %v", d.actions, tt.actions)
			}
		})
	}
}

func TestTransitionRejectsBadDirection(t *testing.T) {
	if _, err := transition(models.VoteNone, "meh"); !errors.Is(err, ErrBadDirection) {
		t.Errorf("Expected ErrBadDirection, got %v", err)
	}
}

func TestToggleVoteApplies(t *testing.T) {
	s, fake := setup(t)
	seed(t, s, fake, models.Comment{ID: 100, GameID: 3, Author: "bob", Content: "gg", LikeCount: 2})

	if err := s.ToggleVote(context.Background(), 100, models.VoteLike); err != nil {
		t.Fatalf("Failed to toggle vote: %v", err)
	}

	c, _ := s.Comment(100)
	if c.LikeCount != 3 || c.ViewerVote != models.VoteLike {
		t.Errorf("After like: likes=%d vote=%q, want 3/like", c.LikeCount, c.ViewerVote)
	}

	// A second click on the same direction withdraws the vote.
	if err := s.ToggleVote(context.Background(), 100, models.VoteLike); err != nil {
		t.Fatalf("Failed to un-vote: %v", err)
	}
	c, _ = s.Comment(100)
	if c.LikeCount != 2 || c.ViewerVote != models.VoteNone {
		t.Errorf("After un-like: likes=%d vote=%q, want 2/none", c.LikeCount, c.ViewerVote)
	}
}

func TestToggleVoteCompoundSwitch(t *testing.T) {
	s, fake := setup(t)
	seed(t, s, fake, models.Comment{
		ID: 100, GameID: 3, Author: "bob", Content: "gg",
		LikeCount: 5, DislikeCount: 1, ViewerVote: models.VoteLike,
	})

	if err := s.ToggleVote(context.Background(), 100, models.VoteDislike); err != nil {
		t.Fatalf("Failed to switch vote: %v", err)
	}

	c, _ := s.Comment(100)
	if c.LikeCount != 4 || c.DislikeCount != 2 || c.ViewerVote != models.VoteDislike {
		t.Errorf("After switch: likes=%d dislikes=%d vote=%q, want 4/2/dislike",
			c.LikeCount, c.DislikeCount, c.ViewerVote)
	}

	// The withdrawal must hit the wire before the new vote.
	want := []string{"100/unlike", "100/dislike"}
	if !reflect.DeepEqual(fake.VoteActions, want) {
		t.Errorf("Wire order = %v, want %v", fake.VoteActions, want)
	}
}

func TestToggleVoteRollsBackOnFailure(t *testing.T) {
	s, fake := setup(t)
	before := seed(t, s, fake, models.Comment{
		ID: 100, GameID: 3, Author: "bob", Content: "gg", LikeCount: 2, DislikeCount: 1,
	})
	fake.VoteFailures[backend.VoteActionLike] = 1

	err := s.ToggleVote(context.Background(), 100, models.VoteLike)
	if !errors.Is(err, backend.ErrServer) {
		t.Fatalf("Expected server error, got %v", err)
	}

	after, _ := s.Comment(100)
	if after.LikeCount != before.LikeCount || after.DislikeCount != before.DislikeCount ||
		after.ViewerVote != before.ViewerVote {
		t.Errorf("State not restored after rollback:\n got %+v\nwant %+v", after, before)
	}
}

func TestToggleVoteRollsBackMidSequence(t *testing.T) {
	s, fake := setup(t)
	before := seed(t, s, fake, models.Comment{
		ID: 100, GameID: 3, Author: "bob", Content: "gg",
		LikeCount: 5, DislikeCount: 1, ViewerVote: models.VoteLike,
	})

	// The un-like succeeds, the dislike fails; the whole local delta reverts.
	fake.VoteFailures[backend.VoteActionDislike] = 1

	if err := s.ToggleVote(context.Background(), 100, models.VoteDislike); err == nil {
		t.Fatal("Expected toggle to fail")
	}

	after, _ := s.Comment(100)
	if after.LikeCount != before.LikeCount || after.DislikeCount != before.DislikeCount ||
		after.ViewerVote != before.ViewerVote {
		t.Errorf("State not restored after partial failure:\n got %+v\nwant %+v", after, before)
	}
}

func TestToggleVoteSerializesPerComment(t *testing.T) {
	s, fake := setup(t)
	seed(t, s, fake, models.Comment{ID: 100, GameID: 3, Author: "bob", Content: "gg"})

	s.mu.Lock()
	s.inFlight[100] = true
	s.mu.Unlock()

	if err := s.ToggleVote(context.Background(), 100, models.VoteLike); !errors.Is(err, ErrToggleInFlight) {
		t.Errorf("Expected ErrToggleInFlight, got %v", err)
	}
}

func TestToggleVoteUnknownComment(t *testing.T) {
	s, _ := setup(t)

	if err := s.ToggleVote(context.Background(), 999, models.VoteLike); !errors.Is(err, ErrUnknownComment) {
		t.Errorf("Expected ErrUnknownComment, got %v", err)
	}
}

func TestFetchCommentsNormalizesViewerVote(t *testing.T) {
	s, fake := setup(t)
	fake.AddComment(models.Comment{ID: 100, GameID: 3, Author: "bob", Content: "gg"})

	list, err := s.FetchComments(context.Background(), 3)
	if err != nil {
		t.Fatalf("Failed to fetch comments: %v", err)
	}
	if len(list) != 1 || list[0].ViewerVote != models.VoteNone {
		t.Errorf("Expected a single comment with vote %q, got %+v", models.VoteNone, list)
	}
}

func TestFetchCommentsOverwritesLocalState(t *testing.T) {
	s, fake := setup(t)
	seed(t, s, fake, models.Comment{ID: 100, GameID: 3, Author: "bob", Content: "gg", LikeCount: 1})

	// The server is authoritative; a refetch replaces whatever we held.
	fake.Comments[3] = []models.Comment{{ID: 100, GameID: 3, Author: "bob", Content: "gg", LikeCount: 7}}
	if _, err := s.FetchComments(context.Background(), 3); err != nil {
		t.Fatalf("Failed to refetch: %v", err)
	}

	c, _ := s.Comment(100)
	if c.LikeCount != 7 {
		t.Errorf("Local count = %d, want the server's 7", c.LikeCount)
	}
}

func TestPostComment(t *testing.T) {
	s, _ := setup(t)

	c, err := s.PostComment(context.Background(), 3, "first!")
	if err != nil {
		t.Fatalf("Failed to post comment: %v", err)
	}
	if c.LikeCount != 0 || c.DislikeCount != 0 || c.ViewerVote != models.VoteNone {
		t.Errorf("New comment not zeroed: %+v", c)
	}

	local := s.Comments(3)
	if len(local) != 1 || local[0].ID != c.ID {
		t.Errorf("Posted comment not in local snapshot: %+v", local)
	}
}

func TestPostCommentRejectsEmptyContent(t *testing.T) {
	s, _ := setup(t)

	for _, content := range []string{"", "   ", "\n\t"} {
		if _, err := s.PostComment(context.Background(), 3, content); !errors.Is(err, ErrEmptyContent) {
			t.Errorf("Content %q: expected ErrEmptyContent, got %v", content, err)
		}
	}
}
