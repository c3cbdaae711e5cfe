// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session_test

import (
	"errors"
	"testing"
	"time"

	"github.com/danielhkuo/teamup/session"
	"github.com/danielhkuo/teamup/testutil"
)

func TestSetAndCurrent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := session.NewStore(db)

	token := testutil.SignedToken(t, 7, "alice", time.Now().Add(time.Hour))
	if err := store.Set(token, 7, "alice"); err != nil {
		t.Fatalf("Failed to set session: %v", err)
	}

	sess, err := store.Current()
	if err != nil {
		t.Fatalf("Failed to read session: %v", err)
	}
	if sess.UserID != 7 || sess.Username != "alice" || sess.Token != token {
		t.Errorf("Unexpected session: %+v", sess)
	}

	cred, ok := store.Credential()
	if !ok || cred != token {
		t.Errorf("Credential() = %q, %v; want token, true", cred, ok)
	}
}

func TestRestoreSurvivesRestart(t *testing.T) {
	db := testutil.SetupTestDB(t)

	token := testutil.SignedToken(t, 7, "alice", time.Now().Add(time.Hour))
	if err := session.NewStore(db).Set(token, 7, "alice"); err != nil {
		t.Fatalf("Failed to set session: %v", err)
	}

	// A fresh store over the same database simulates a process restart.
	store := session.NewStore(db)
	if err := store.Restore(); err != nil {
		t.Fatalf("Failed to restore session: %v", err)
	}

	sess, err := store.Current()
	if err != nil {
		t.Fatalf("Session not restored: %v", err)
	}
	if sess.UserID != 7 || sess.Username != "alice" {
		t.Errorf("Restored wrong identity: %+v", sess)
	}
}

func TestRestoreWithEmptyDatabase(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := session.NewStore(db)

	if err := store.Restore(); err != nil {
		t.Fatalf("Restore over empty database should not error: %v", err)
	}
	if _, err := store.Current(); !errors.Is(err, session.ErrNoSession) {
		t.Errorf("Expected ErrNoSession, got %v", err)
	}
}

func TestRestoreClearsExpiredToken(t *testing.T) {
	db := testutil.SetupTestDB(t)

	token := testutil.SignedToken(t, 7, "alice", time.Now().Add(-time.Hour))
	if err := session.NewStore(db).Set(token, 7, "alice"); err != nil {
		t.Fatalf("Failed to set session: %v", err)
	}

	store := session.NewStore(db)
	if err := store.Restore(); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if _, err := store.Current(); !errors.Is(err, session.ErrNoSession) {
		t.Errorf("Expired session should be cleared, got %v", err)
	}

	// The persisted row must be gone too, not just the in-memory copy.
	again := session.NewStore(db)
	if err := again.Restore(); err != nil {
		t.Fatalf("Second restore failed: %v", err)
	}
	if _, err := again.Current(); !errors.Is(err, session.ErrNoSession) {
		t.Error("Expired session row survived the clear")
	}
}

func TestSetDerivesIdentityFromToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := session.NewStore(db)

	token := testutil.SignedToken(t, 42, "bob", time.Now().Add(time.Hour))
	if err := store.Set(token, 0, ""); err != nil {
		t.Fatalf("Failed to set session from token claims: %v", err)
	}

	sess, err := store.Current()
	if err != nil {
		t.Fatalf("Failed to read session: %v", err)
	}
	if sess.UserID != 42 || sess.Username != "bob" {
		t.Errorf("Derived identity = %d/%q, want 42/bob", sess.UserID, sess.Username)
	}
}

func TestClear(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := session.NewStore(db)

	token := testutil.SignedToken(t, 7, "alice", time.Now().Add(time.Hour))
	if err := store.Set(token, 7, "alice"); err != nil {
		t.Fatalf("Failed to set session: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Failed to clear session: %v", err)
	}

	if _, ok := store.Credential(); ok {
		t.Error("Credential still present after Clear")
	}
	if _, err := store.Current(); !errors.Is(err, session.ErrNoSession) {
		t.Errorf("Expected ErrNoSession after Clear, got %v", err)
	}
}
