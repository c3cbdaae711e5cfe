// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package fallback

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/teamup/models"
)

// Cache is the durable store of teams created while the backend was
// unreachable. Append-only; records are invisible to other clients until a
// later sync.
type Cache struct {
	db *sql.DB
}

func NewCache(db *sql.DB) *Cache {
	return &Cache{db: db}
}

// Append persists one team snapshot under a locally generated id, with the
// creator as the only member.
func (c *Cache) Append(team models.CreateTeamRequest, creatorUsername string) (models.LocalTeamRecord, error) {
	rec := models.LocalTeamRecord{
		ID:        uuid.NewString(),
		Team:      team,
		Members:   []string{creatorUsername},
		CreatedAt: time.Now(),
	}

	members, err := json.Marshal(rec.Members)
	if err != nil {
		return models.LocalTeamRecord{}, fmt.Errorf("encode members: %w", err)
	}

	_, err = c.db.Exec(`
		INSERT INTO fallback_team
			(id, team_name, team_size, description, game_id, day_of_week, start_time, end_time, members, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, rec.ID, team.Name, team.Size, team.Description, team.GameID,
		team.Schedule.DayOfWeek, team.Schedule.StartTime, team.Schedule.EndTime,
		string(members), rec.CreatedAt)
	if err != nil {
		return models.LocalTeamRecord{}, fmt.Errorf("append fallback team: %w", err)
	}

	slog.Warn("team stored locally, backend unreachable", "local_id", rec.ID, "team_name", team.Name)
	return rec, nil
}

// List returns all fallback records, oldest first.
func (c *Cache) List() ([]models.LocalTeamRecord, error) {
	rows, err := c.db.Query(`
		SELECT id, team_name, team_size, description, game_id, day_of_week, start_time, end_time, members, created_at
		FROM fallback_team
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("list fallback teams: %w", err)
	}
	defer rows.Close()

	var records []models.LocalTeamRecord
	for rows.Next() {
		var rec models.LocalTeamRecord
		var members string
		err := rows.Scan(&rec.ID, &rec.Team.Name, &rec.Team.Size, &rec.Team.Description,
			&rec.Team.GameID, &rec.Team.Schedule.DayOfWeek, &rec.Team.Schedule.StartTime,
			&rec.Team.Schedule.EndTime, &members, &rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan fallback team: %w", err)
		}
		if err := json.Unmarshal([]byte(members), &rec.Members); err != nil {
			return nil, fmt.Errorf("decode members for %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fallback teams: %w", err)
	}

	return records, nil
}
