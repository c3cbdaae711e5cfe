// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

var ErrNoSession = errors.New("no active session")

// Session is the credential/identity triple held for the logged-in user.
type Session struct {
	Token    string
	UserID   int64
	Username string
}

// Store is the single source of truth for the current credential. It is read
// by every remote call and written only by the auth flow and logout, backed
// by one row in the local database.
type Store struct {
	mu  sync.RWMutex
	db  *sql.DB
	cur *Session
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Restore loads a persisted session at startup. A missing row or an expired
// token leaves the store anonymous without error.
func (s *Store) Restore() error {
	var sess Session
	err := s.db.QueryRow(`
		SELECT token, user_id, username FROM session WHERE id = 1
	`).Scan(&sess.Token, &sess.UserID, &sess.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	if expired(sess.Token) {
		slog.Info("persisted session expired, clearing")
		return s.Clear()
	}

	s.mu.Lock()
	s.cur = &sess
	s.mu.Unlock()

	slog.Info("session restored", "user_id", sess.UserID, "username", sess.Username)
	return nil
}

// Set stores the credential after successful authentication. When the auth
// response omits the identity, it is derived from the token claims.
func (s *Store) Set(token string, userID int64, username string) error {
	if userID == 0 || username == "" {
		id, name, err := identityFromToken(token)
		if err != nil {
			return fmt.Errorf("derive identity: %w", err)
		}
		if userID == 0 {
			userID = id
		}
		if username == "" {
			username = name
		}
	}

	_, err := s.db.Exec(`
		INSERT INTO session (id, token, user_id, username, saved_at)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			token = excluded.token,
			user_id = excluded.user_id,
			username = excluded.username,
			saved_at = excluded.saved_at
	`, token, userID, username, time.Now())
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.cur = &Session{Token: token, UserID: userID, Username: username}
	s.mu.Unlock()

	slog.Info("session set", "user_id", userID, "username", username)
	return nil
}

// Clear tears the session down on logout. Subsequent remote calls fail with
// ErrUnauthenticated instead of attempting the network.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.mu.Lock()
	s.cur = nil
	s.mu.Unlock()

	return nil
}

// Credential implements backend.TokenSource.
func (s *Store) Credential() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cur == nil {
		return "", false
	}
	return s.cur.Token, true
}

// Current returns a copy of the active session.
func (s *Store) Current() (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cur == nil {
		return Session{}, ErrNoSession
	}
	return *s.cur, nil
}
