package database

import (
	"context"
	"errors"
	"testing"

	"loader-api/internal/apperrors"
)

func TestOperationsBeforeConnect(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	if _, err := store.Execute(ctx, "DELETE FROM files WHERE file_id = $1", "x"); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Execute err = %v, expected ErrNotConnected", err)
	}
	if _, err := store.FetchAll(ctx, "SELECT 1"); !errors.Is(err, ErrNotConnected) {
		t.Errorf("FetchAll err = %v, expected ErrNotConnected", err)
	}
	if _, _, err := store.FetchScalar(ctx, "SELECT 1"); !errors.Is(err, ErrNotConnected) {
		t.Errorf("FetchScalar err = %v, expected ErrNotConnected", err)
	}
	if err := store.EnsureSchema(ctx); !errors.Is(err, ErrNotConnected) {
		t.Errorf("EnsureSchema err = %v, expected ErrNotConnected", err)
	}
	if err := store.Ping(ctx); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Ping err = %v, expected ErrNotConnected", err)
	}
}

func TestOperationsAfterShutdown(t *testing.T) {
	store := NewStore()
	store.Shutdown()
	// Shutdown is idempotent.
	store.Shutdown()

	ctx := context.Background()
	if _, err := store.Execute(ctx, "SELECT 1"); !errors.Is(err, ErrClosed) {
		t.Errorf("Execute err = %v, expected ErrClosed", err)
	}
	// A shut-down store must not silently reconnect.
	if err := store.Connect(ctx, Config{}); !errors.Is(err, ErrClosed) {
		t.Errorf("Connect err = %v, expected ErrClosed", err)
	}
}

func TestLifecycleErrorsAreStorageErrors(t *testing.T) {
	store := NewStore()

	_, err := store.Execute(context.Background(), "SELECT 1")

	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperrors.Error, got %v", err)
	}
	if appErr.Code != apperrors.CodeStorage {
		t.Errorf("code = %q, expected %q", appErr.Code, apperrors.CodeStorage)
	}
}

func TestConfigDSN(t *testing.T) {
	cfg := Config{
		Host:     "db.local",
		Port:     "5433",
		Name:     "loader",
		User:     "app",
		Password: "secret",
	}

	want := "host=db.local port=5433 dbname=loader user=app password=secret"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, expected %q", got, want)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "pg")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_NAME", "loader")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASS", "pw")
	t.Setenv("DB_POOL_MIN_CONNS", "2")
	t.Setenv("DB_POOL_MAX_CONNS", "20")

	cfg := ConfigFromEnv()
	if cfg.Host != "pg" || cfg.Port != "5432" || cfg.Name != "loader" || cfg.User != "app" || cfg.Password != "pw" {
		t.Errorf("unexpected connection fields: %+v", cfg)
	}
	if cfg.MinConns != 2 || cfg.MaxConns != 20 {
		t.Errorf("pool bounds = %d/%d, expected 2/20", cfg.MinConns, cfg.MaxConns)
	}
}

func TestConfigFromEnvPoolDefaults(t *testing.T) {
	t.Setenv("DB_POOL_MIN_CONNS", "")
	t.Setenv("DB_POOL_MAX_CONNS", "not-a-number")

	cfg := ConfigFromEnv()
	if cfg.MinConns != 1 {
		t.Errorf("MinConns = %d, expected default 1", cfg.MinConns)
	}
	if cfg.MaxConns != 10 {
		t.Errorf("MaxConns = %d, expected default 10", cfg.MaxConns)
	}
}
