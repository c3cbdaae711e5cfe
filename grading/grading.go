// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package grading

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/teamup/backend"
	"github.com/danielhkuo/teamup/models"
)

var (
	ErrBadRating     = errors.New("rating must be between 1 and 5")
	ErrAlreadyGraded = errors.New("teammate already graded")
)

// Service records one-shot teammate ratings. A grade lands locally first and
// is pushed to the backend best-effort; unreachable backends leave it queued
// like the team fallback cache.
type Service struct {
	db     *sql.DB
	client *backend.Client
}

func NewService(db *sql.DB, client *backend.Client) *Service {
	return &Service{db: db, client: client}
}

// Submit records a rating for a teammate. Each teammate can be graded once;
// a second submission is rejected locally without a network call.
func (s *Service) Submit(ctx context.Context, teammateID int64, rating int) error {
	if rating < 1 || rating > 5 {
		return ErrBadRating
	}

	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM grade WHERE teammate_id = $1)
	`, teammateID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check existing grade: %w", err)
	}
	if exists {
		return ErrAlreadyGraded
	}

	_, err = s.db.Exec(`
		INSERT INTO grade (teammate_id, rating, submitted_at, synced)
		VALUES ($1, $2, $3, 0)
	`, teammateID, rating, time.Now())
	if err != nil {
		return fmt.Errorf("record grade: %w", err)
	}

	err = s.client.SubmitGrade(ctx, models.SubmitGradeRequest{TeammateID: teammateID, Rating: rating})
	if errors.Is(err, backend.ErrNetwork) || errors.Is(err, backend.ErrServer) {
		slog.Warn("grade queued, backend unreachable", "teammate_id", teammateID, "error", err)
		return nil
	}
	if err != nil {
		// Not a degradable failure; the local record must not outlive it.
		if _, delErr := s.db.Exec(`DELETE FROM grade WHERE teammate_id = $1`, teammateID); delErr != nil {
			return fmt.Errorf("submit failed (%v) and local cleanup failed: %w", err, delErr)
		}
		return err
	}

	if _, err := s.db.Exec(`UPDATE grade SET synced = 1 WHERE teammate_id = $1`, teammateID); err != nil {
		return fmt.Errorf("mark grade synced: %w", err)
	}

	slog.Info("grade submitted", "teammate_id", teammateID, "rating", rating)
	return nil
}

// Pending returns grades not yet accepted by the backend.
func (s *Service) Pending() ([]models.Grade, error) {
	rows, err := s.db.Query(`
		SELECT teammate_id, rating, submitted_at FROM grade WHERE synced = 0 ORDER BY submitted_at
	`)
	if err != nil {
		return nil, fmt.Errorf("list pending grades: %w", err)
	}
	defer rows.Close()

	var grades []models.Grade
	for rows.Next() {
		var g models.Grade
		if err := rows.Scan(&g.TeammateID, &g.Rating, &g.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan grade: %w", err)
		}
		grades = append(grades, g)
	}
	return grades, rows.Err()
}

// SyncPending pushes queued grades to the backend. Returns how many synced;
// stops at the first transport failure so the rest stay queued.
func (s *Service) SyncPending(ctx context.Context) (int, error) {
	pending, err := s.Pending()
	if err != nil {
		return 0, err
	}

	synced := 0
	for _, g := range pending {
		err := s.client.SubmitGrade(ctx, models.SubmitGradeRequest{TeammateID: g.TeammateID, Rating: g.Rating})
		if err != nil {
			return synced, err
		}
		if _, err := s.db.Exec(`UPDATE grade SET synced = 1 WHERE teammate_id = $1`, g.TeammateID); err != nil {
			return synced, fmt.Errorf("mark grade synced: %w", err)
		}
		synced++
	}
	return synced, nil
}
