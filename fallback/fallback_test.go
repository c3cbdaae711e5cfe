// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package fallback_test

import (
	"testing"

	"github.com/danielhkuo/teamup/fallback"
	"github.com/danielhkuo/teamup/models"
	"github.com/danielhkuo/teamup/testutil"
)

func sampleTeam(name string) models.CreateTeamRequest {
	return models.CreateTeamRequest{
		Name:        name,
		Size:        5,
		Description: "weekday evenings",
		GameID:      3,
		Schedule:    models.Schedule{DayOfWeek: 2, StartTime: "19:00", EndTime: "21:00"},
	}
}

func TestAppendCreatesSingleRecord(t *testing.T) {
	cache := fallback.NewCache(testutil.SetupTestDB(t))

	rec, err := cache.Append(sampleTeam("night owls"), "alice")
	if err != nil {
		t.Fatalf("Failed to append: %v", err)
	}
	if rec.ID == "" {
		t.Error("Record has no local id")
	}
	if len(rec.Members) != 1 || rec.Members[0] != "alice" {
		t.Errorf("Members = %v, want [alice]", rec.Members)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	records, err := cache.List()
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected exactly 1 record, got %d", len(records))
	}
}

func TestRecordIDsAreUnique(t *testing.T) {
	cache := fallback.NewCache(testutil.SetupTestDB(t))

	a, err := cache.Append(sampleTeam("first"), "alice")
	if err != nil {
		t.Fatalf("Failed to append: %v", err)
	}
	b, err := cache.Append(sampleTeam("second"), "alice")
	if err != nil {
		t.Fatalf("Failed to append: %v", err)
	}
	if a.ID == b.ID {
		t.Errorf("Two records share id %s", a.ID)
	}
}

func TestListRoundTrip(t *testing.T) {
	cache := fallback.NewCache(testutil.SetupTestDB(t))

	team := sampleTeam("night owls")
	if _, err := cache.Append(team, "alice"); err != nil {
		t.Fatalf("Failed to append: %v", err)
	}

	records, err := cache.List()
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}

	got := records[0]
	if got.Team != team {
		t.Errorf("Team round trip mismatch:\n got %+v\nwant %+v", got.Team, team)
	}
	if len(got.Members) != 1 || got.Members[0] != "alice" {
		t.Errorf("Members = %v, want [alice]", got.Members)
	}
}
