// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package membership

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/teamup/backend"
	"github.com/danielhkuo/teamup/fallback"
	"github.com/danielhkuo/teamup/models"
	"github.com/danielhkuo/teamup/session"
)

var (
	ErrAlreadyMember   = errors.New("already a member of this team")
	ErrNotMember       = errors.New("not a member of this team")
	ErrInvalidSchedule = errors.New("schedule end time must be after start time")
	ErrInvalidTeam     = errors.New("invalid team payload")
)

// Service owns team retrieval and membership mutation.
type Service struct {
	client   *backend.Client
	sessions *session.Store
	cache    *fallback.Cache
}

func NewService(client *backend.Client, sessions *session.Store, cache *fallback.Cache) *Service {
	return &Service{client: client, sessions: sessions, cache: cache}
}

// IsMember reports whether the user appears in the member list. Pure; used by
// the view layer to decide between offering Join and Leave.
func IsMember(userID int64, members []models.Member) bool {
	for _, m := range members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// FetchTeam retrieves a team and its current members.
func (s *Service) FetchTeam(ctx context.Context, teamID int64) (models.TeamResponse, error) {
	return s.client.Team(ctx, teamID)
}

// ListTeams retrieves the browsable team list.
func (s *Service) ListTeams(ctx context.Context) ([]models.Team, error) {
	return s.client.Teams(ctx)
}

// Join sends a join request for the team. Joining a team the user already
// belongs to fails with ErrAlreadyMember; a duplicate request for a pair that
// is still pending is an idempotent no-op. On success the request is pending,
// not yet a membership.
func (s *Service) Join(ctx context.Context, teamID int64) error {
	sess, err := s.sessions.Current()
	if err != nil {
		return backend.ErrUnauthenticated
	}

	res, err := s.client.Team(ctx, teamID)
	if err != nil {
		return err
	}
	if IsMember(sess.UserID, res.Members) {
		return ErrAlreadyMember
	}

	err = s.client.JoinTeam(ctx, teamID)
	if errors.Is(err, backend.ErrConflict) {
		// A pending request for this pair already exists server-side.
		slog.Info("join request already pending", "team_id", teamID)
		return nil
	}
	if err != nil {
		return err
	}

	slog.Info("join requested", "team_id", teamID, "user_id", sess.UserID)
	return nil
}

// Leave removes the current user from the team. The caller is responsible
// for confirming the action with the user first.
func (s *Service) Leave(ctx context.Context, teamID int64) error {
	sess, err := s.sessions.Current()
	if err != nil {
		return backend.ErrUnauthenticated
	}

	res, err := s.client.Team(ctx, teamID)
	if err != nil {
		return err
	}
	if !IsMember(sess.UserID, res.Members) {
		return ErrNotMember
	}

	if err := s.client.LeaveTeam(ctx, teamID); err != nil {
		return err
	}

	slog.Info("left team", "team_id", teamID, "user_id", sess.UserID)
	return nil
}

// CreateResult reports how a team creation landed. Fallback true means the
// backend could not be reached and the team exists only locally.
type CreateResult struct {
	Team     models.Team
	Fallback bool
	Record   models.LocalTeamRecord
}

// CreateTeam validates the payload, attempts remote creation, and degrades to
// the local fallback cache on transport or server failure. Validation errors
// are synchronous; no network call is attempted.
func (s *Service) CreateTeam(ctx context.Context, req models.CreateTeamRequest) (CreateResult, error) {
	if err := validateTeam(req); err != nil {
		return CreateResult{}, err
	}

	sess, err := s.sessions.Current()
	if err != nil {
		return CreateResult{}, backend.ErrUnauthenticated
	}

	res, err := s.client.CreateTeam(ctx, req)
	if err == nil {
		slog.Info("team created", "team_id", res.Team.ID, "team_name", res.Team.Name)
		return CreateResult{Team: res.Team}, nil
	}

	// Degraded success: keep the workflow usable when the backend is flaky.
	// Auth and validation failures are real failures and do not degrade.
	if errors.Is(err, backend.ErrNetwork) || errors.Is(err, backend.ErrServer) {
		rec, cacheErr := s.cache.Append(req, sess.Username)
		if cacheErr != nil {
			return CreateResult{}, fmt.Errorf("remote create failed (%v) and fallback write failed: %w", err, cacheErr)
		}
		return CreateResult{Fallback: true, Record: rec}, nil
	}

	return CreateResult{}, err
}

func validateTeam(req models.CreateTeamRequest) error {
	if req.Name == "" || req.Size < 1 {
		return ErrInvalidTeam
	}
	if req.Schedule.DayOfWeek < 0 || req.Schedule.DayOfWeek > 6 {
		return ErrInvalidTeam
	}

	start, err := time.Parse("15:04", req.Schedule.StartTime)
	if err != nil {
		return ErrInvalidSchedule
	}
	end, err := time.Parse("15:04", req.Schedule.EndTime)
	if err != nil {
		return ErrInvalidSchedule
	}
	if !end.After(start) {
		return ErrInvalidSchedule
	}
	return nil
}
