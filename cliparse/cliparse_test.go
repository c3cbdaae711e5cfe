// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
	"time"
)

func TestParseFlags_EnvVars(t *testing.T) {
	// Set env vars
	os.Setenv("BACKEND_URL", "http://localhost:8080")
	os.Setenv("DATABASE_URL", "file:test.db")
	os.Setenv("POLL_INTERVAL", "5s")
	defer os.Clearenv()

	cfg, _, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.BackendURL != "http://localhost:8080" {
		t.Errorf("expected backend URL from env, got %q", cfg.BackendURL)
	}
	if cfg.PollInterval != 5*time.Second {
		t.Errorf("expected poll interval 5s, got %v", cfg.PollInterval)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default database type sqlite, got %q", cfg.DatabaseType)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("BACKEND_URL", "http://env-host:8080")
	defer os.Clearenv()

	cfg, _, err := ParseFlags([]string{"-b", "http://cli-host:8080", "-d", "file:test.db"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.BackendURL != "http://cli-host:8080" {
		t.Errorf("CLI should override env: expected cli-host, got %q", cfg.BackendURL)
	}
}

func TestParseFlags_MissingBackendURL(t *testing.T) {
	os.Clearenv()

	_, _, err := ParseFlags([]string{"-d", "file:test.db"})
	if err == nil {
		t.Fatal("expected error when backend URL missing")
	}
}

func TestParseFlags_BadDatabaseType(t *testing.T) {
	os.Clearenv()

	_, _, err := ParseFlags([]string{"-b", "http://x", "-d", "file:test.db", "-t", "mysql"})
	if err == nil {
		t.Fatal("expected error for unsupported database type")
	}
}

func TestParseFlags_RemainingArgs(t *testing.T) {
	os.Clearenv()

	_, args, err := ParseFlags([]string{"-b", "http://x", "team", "join", "10"})
	if err != nil {
		t.Fatal(err)
	}

	if len(args) != 3 || args[0] != "team" || args[1] != "join" || args[2] != "10" {
		t.Errorf("expected subcommand args [team join 10], got %v", args)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, _, err := ParseFlags([]string{"-b", "http://x"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.DatabaseURL != "teamup.db" {
		t.Errorf("expected default database path teamup.db, got %q", cfg.DatabaseURL)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("expected default request timeout 10s, got %v", cfg.RequestTimeout)
	}
	if cfg.PollInterval != 20*time.Second {
		t.Errorf("expected default poll interval 20s, got %v", cfg.PollInterval)
	}
}
