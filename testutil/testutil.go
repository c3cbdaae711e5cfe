// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/teamup/localdb"
	"github.com/danielhkuo/teamup/models"
)

// TestToken is the bearer credential the fake backend accepts.
const TestToken = "test-token"

// SetupTestDB creates a fresh sqlite database in a temp dir with the full
// client schema.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "teamup.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := localdb.CreateSchema(db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return db
}

// SignedToken builds an HS256 token carrying the identity claims the session
// store reads. The signature is irrelevant - the client parses unverified.
func SignedToken(t *testing.T, userID int64, username string, exp time.Time) string {
	t.Helper()

	claims := jwt.MapClaims{
		"userId":   userID,
		"username": username,
	}
	if !exp.IsZero() {
		claims["exp"] = exp.Unix()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return token
}

// FakeBackend is a scripted matchmaking API for tests. State is mutated
// in-memory; failure modes are toggled per field.
type FakeBackend struct {
	*httptest.Server

	mu sync.Mutex

	User models.Member

	Teams    map[int64]models.TeamResponse
	Requests []models.Notification
	Comments map[int64][]models.Comment

	// Failure toggles
	JoinConflict   bool           // POST /teams/join returns 409
	CreateFailures int            // next N POST /teams/create return 500
	VoteFailures   map[string]int // action → remaining 500s
	ResolveStatus  map[int64]int  // request id → status (default 200)
	GradeStatus    int            // 0 means 201

	// Recorded traffic
	VoteActions    []string // "{id}/{action}" in call order
	Created        []models.CreateTeamRequest
	Grades         []models.SubmitGradeRequest
	PendingFetches int // GET /teams/my_team_request count
}

func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()

	b := &FakeBackend{
		User:          models.Member{ID: 1, Username: "alice"},
		Teams:         make(map[int64]models.TeamResponse),
		Comments:      make(map[int64][]models.Comment),
		VoteFailures:  make(map[string]int),
		ResolveStatus: make(map[int64]int),
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.AuthResponse{
			Token: TestToken, UserID: b.User.ID, Username: b.User.Username,
		})
	})

	mux.HandleFunc("GET /user/me", b.authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.MeResponse{UserID: b.User.ID, Username: b.User.Username})
	}))

	mux.HandleFunc("GET /teams/{id}", b.authed(func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		b.mu.Lock()
		team, ok := b.Teams[id]
		b.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Not Found", Message: "no such team"})
			return
		}
		writeJSON(w, http.StatusOK, team)
	}))

	mux.HandleFunc("GET /teams", b.authed(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		teams := make([]models.Team, 0, len(b.Teams))
		for _, tr := range b.Teams {
			teams = append(teams, tr.Team)
		}
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, teams)
	}))

	mux.HandleFunc("POST /teams/join", b.authed(func(w http.ResponseWriter, r *http.Request) {
		if b.JoinConflict {
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Conflict", Message: "request already pending"})
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	mux.HandleFunc("POST /teams/leave", b.authed(func(w http.ResponseWriter, r *http.Request) {
		var req models.LeaveTeamRequest
		json.NewDecoder(r.Body).Decode(&req)
		b.mu.Lock()
		if tr, ok := b.Teams[req.ID]; ok {
			members := tr.Members[:0:0]
			for _, m := range tr.Members {
				if m.ID != b.User.ID {
					members = append(members, m)
				}
			}
			tr.Members = members
			b.Teams[req.ID] = tr
		}
		b.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))

	mux.HandleFunc("POST /teams/create", b.authed(func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateTeamRequest
		json.NewDecoder(r.Body).Decode(&req)
		b.mu.Lock()
		if b.CreateFailures > 0 {
			b.CreateFailures--
			b.mu.Unlock()
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal Server Error"})
			return
		}
		b.Created = append(b.Created, req)
		id := int64(1000 + len(b.Created))
		team := models.Team{
			ID: id, Name: req.Name, Size: req.Size, Description: req.Description,
			GameID: req.GameID, Schedule: req.Schedule, CreatorID: b.User.ID,
		}
		b.Teams[id] = models.TeamResponse{Team: team, Members: []models.Member{b.User}}
		b.mu.Unlock()
		writeJSON(w, http.StatusCreated, models.CreateTeamResponse{Team: team})
	}))

	mux.HandleFunc("GET /teams/my_team_request", b.authed(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.PendingFetches++
		list := make([]models.Notification, len(b.Requests))
		copy(list, b.Requests)
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, list)
	}))

	resolve := func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		b.mu.Lock()
		status := b.ResolveStatus[id]
		if status == 0 {
			status = http.StatusOK
		}
		if status == http.StatusOK {
			kept := b.Requests[:0:0]
			for _, n := range b.Requests {
				if n.RequestID != id {
					kept = append(kept, n)
				}
			}
			b.Requests = kept
		}
		b.mu.Unlock()
		if status != http.StatusOK {
			writeJSON(w, status, models.ErrorResponse{Error: http.StatusText(status)})
			return
		}
		w.WriteHeader(http.StatusOK)
	}
	mux.HandleFunc("POST /teams/approve/{id}", b.authed(resolve))
	mux.HandleFunc("POST /teams/reject/{id}", b.authed(resolve))

	mux.HandleFunc("GET /game_info/{gameId}/comments", b.authed(func(w http.ResponseWriter, r *http.Request) {
		gameID, _ := strconv.ParseInt(r.PathValue("gameId"), 10, 64)
		b.mu.Lock()
		list := make([]models.Comment, len(b.Comments[gameID]))
		copy(list, b.Comments[gameID])
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, list)
	}))

	mux.HandleFunc("POST /game_info/{gameId}/comments", b.authed(func(w http.ResponseWriter, r *http.Request) {
		gameID, _ := strconv.ParseInt(r.PathValue("gameId"), 10, 64)
		var req models.PostCommentRequest
		json.NewDecoder(r.Body).Decode(&req)
		b.mu.Lock()
		c := models.Comment{
			ID:       int64(5000 + len(b.Comments[gameID])),
			GameID:   gameID,
			AuthorID: b.User.ID,
			Author:   b.User.Username,
			Content:  req.Content,
		}
		b.Comments[gameID] = append(b.Comments[gameID], c)
		b.mu.Unlock()
		writeJSON(w, http.StatusCreated, c)
	}))

	mux.HandleFunc("POST /game_info/comments/{id}/{action}", b.authed(func(w http.ResponseWriter, r *http.Request) {
		action := r.PathValue("action")
		b.mu.Lock()
		b.VoteActions = append(b.VoteActions, r.PathValue("id")+"/"+action)
		if b.VoteFailures[action] > 0 {
			b.VoteFailures[action]--
			b.mu.Unlock()
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal Server Error"})
			return
		}
		b.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))

	mux.HandleFunc("POST /grades", b.authed(func(w http.ResponseWriter, r *http.Request) {
		var req models.SubmitGradeRequest
		json.NewDecoder(r.Body).Decode(&req)
		b.mu.Lock()
		status := b.GradeStatus
		if status == 0 {
			status = http.StatusCreated
		}
		if status == http.StatusCreated {
			b.Grades = append(b.Grades, req)
		}
		b.mu.Unlock()
		if status != http.StatusCreated {
			writeJSON(w, status, models.ErrorResponse{Error: http.StatusText(status)})
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))

	b.Server = httptest.NewServer(mux)
	t.Cleanup(b.Server.Close)
	return b
}

// authed rejects requests without the expected bearer token.
func (b *FakeBackend) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+TestToken {
			writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
			return
		}
		next(w, r)
	}
}

// AddTeam registers a team with members and returns its id.
func (b *FakeBackend) AddTeam(team models.Team, members ...models.Member) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Teams[team.ID] = models.TeamResponse{Team: team, Members: members}
	return team.ID
}

// AddRequest queues a pending join request notification.
func (b *FakeBackend) AddRequest(n models.Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Requests = append(b.Requests, n)
}

// Fetches reports how many times the pending-request list was polled.
func (b *FakeBackend) Fetches() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.PendingFetches
}

// AddComment seeds a comment for a game.
func (b *FakeBackend) AddComment(c models.Comment) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Comments[c.GameID] = append(b.Comments[c.GameID], c)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
