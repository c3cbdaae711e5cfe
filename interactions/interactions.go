// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package interactions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/danielhkuo/teamup/backend"
	"github.com/danielhkuo/teamup/models"
	"github.com/danielhkuo/teamup/optimistic"
)

var (
	ErrUnknownComment = errors.New("unknown comment")
	ErrToggleInFlight = errors.New("a vote for this comment is still in flight")
	ErrEmptyContent   = errors.New("comment content is empty")
	ErrBadDirection   = errors.New("vote direction must be like or dislike")
)

// Store manages per-comment vote state with optimistic local mutation.
// Toggles on one comment are serialized; different comments may toggle
// concurrently.
type Store struct {
	client *backend.Client

	mu       sync.Mutex
	comments map[int64]*models.Comment
	byGame   map[int64][]int64
	inFlight map[int64]bool
}

func NewStore(client *backend.Client) *Store {
	return &Store{
		client:   client,
		comments: make(map[int64]*models.Comment),
		byGame:   make(map[int64][]int64),
		inFlight: make(map[int64]bool),
	}
}

// FetchComments loads the comment list for a game, replacing local state for
// that game with the server's view.
func (s *Store) FetchComments(ctx context.Context, gameID int64) ([]models.Comment, error) {
	fetched, err := s.client.Comments(ctx, gameID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0, len(fetched))
	for i := range fetched {
		c := fetched[i]
		if c.ViewerVote == "" {
			c.ViewerVote = models.VoteNone
		}
		s.comments[c.ID] = &c
		ids = append(ids, c.ID)
	}
	s.byGame[gameID] = ids

	return s.snapshotLocked(gameID), nil
}

// Comments returns the local snapshot for a game without a network call.
func (s *Store) Comments(gameID int64) []models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(gameID)
}

// Comment returns a copy of a single comment's local state.
func (s *Store) Comment(commentID int64) (models.Comment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[commentID]
	if !ok {
		return models.Comment{}, false
	}
	return *c, true
}

func (s *Store) snapshotLocked(gameID int64) []models.Comment {
	ids := s.byGame[gameID]
	out := make([]models.Comment, 0, len(ids))
	for _, id := range ids {
		if c, ok := s.comments[id]; ok {
			out = append(out, *c)
		}
	}
	return out
}

// delta is the local effect of one toggle and the remote calls that realize it.
type delta struct {
	next    string
	like    int
	dislike int
	actions []string
}

// transition computes the next viewer vote, count deltas, and the ordered
// remote actions. The un-vote always goes first so a mid-sequence failure
// leaves a removed vote rather than a doubled one.
func transition(current, direction string) (delta, error) {
	switch direction {
	case models.VoteLike:
		switch current {
		case models.VoteNone:
			return delta{next: models.VoteLike, like: +1, actions: []string{backend.VoteActionLike}}, nil
		case models.VoteLike: // re-click un-votes
			return delta{next: models.VoteNone, like: -1, actions: []string{backend.VoteActionUnlike}}, nil
		case models.VoteDislike:
			return delta{next: models.VoteLike, like: +1, dislike: -1,
				actions: []string{backend.VoteActionUndislike, backend.VoteActionLike}}, nil
		}
	case models.VoteDislike:
		switch current {
		case models.VoteNone:
			return delta{next: models.VoteDislike, dislike: +1, actions: []string{backend.VoteActionDislike}}, nil
		case models.VoteDislike:
			return delta{next: models.VoteNone, dislike: -1, actions: []string{backend.VoteActionUndislike}}, nil
		case models.VoteLike:
			return delta{next: models.VoteDislike, like: -1, dislike: +1,
				actions: []string{backend.VoteActionUnlike, backend.VoteActionDislike}}, nil
		}
	}
	return delta{}, ErrBadDirection
}

// ToggleVote applies the optimistic vote transition for a comment and
// reconciles it with the backend. A failure of any remote call reverts the
// local delta exactly; a toggle already in flight for the same comment is
// rejected with ErrToggleInFlight.
func (s *Store) ToggleVote(ctx context.Context, commentID int64, direction string) error {
	s.mu.Lock()
	c, ok := s.comments[commentID]
	if !ok {
		s.mu.Unlock()
		return ErrUnknownComment
	}
	if s.inFlight[commentID] {
		s.mu.Unlock()
		return ErrToggleInFlight
	}

	prev := c.ViewerVote
	d, err := transition(prev, direction)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.inFlight[commentID] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, commentID)
		s.mu.Unlock()
	}()

	err = optimistic.Run(ctx, optimistic.Command{
		Apply: func() {
			s.mu.Lock()
			c.ViewerVote = d.next
			c.LikeCount += d.like
			c.DislikeCount += d.dislike
			s.mu.Unlock()
		},
		Send: func(ctx context.Context) error {
			for _, action := range d.actions {
				if err := s.client.VoteComment(ctx, commentID, action); err != nil {
					return fmt.Errorf("vote %s: %w", action, err)
				}
			}
			return nil
		},
		Revert: func() {
			s.mu.Lock()
			c.ViewerVote = prev
			c.LikeCount -= d.like
			c.DislikeCount -= d.dislike
			s.mu.Unlock()
		},
	})
	if err != nil {
		slog.Warn("vote rolled back", "comment_id", commentID, "direction", direction, "error", err)
		return err
	}

	slog.Info("vote toggled", "comment_id", commentID, "vote", d.next)
	return nil
}

// PostComment submits a new comment and appends it locally with zero counts
// and no viewer vote.
func (s *Store) PostComment(ctx context.Context, gameID int64, content string) (models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return models.Comment{}, ErrEmptyContent
	}

	created, err := s.client.PostComment(ctx, gameID, content)
	if err != nil {
		return models.Comment{}, err
	}

	created.GameID = gameID
	created.LikeCount = 0
	created.DislikeCount = 0
	created.ViewerVote = models.VoteNone

	s.mu.Lock()
	s.comments[created.ID] = &created
	s.byGame[gameID] = append(s.byGame[gameID], created.ID)
	s.mu.Unlock()

	slog.Info("comment posted", "game_id", gameID, "comment_id", created.ID)
	return created, nil
}
