// Package database implements the metadata store: a bounded Postgres
// connection pool with raw-SQL helpers. Each statement runs in its own
// implicit transaction; there is no multi-statement transaction spanning
// the disk write and the row write — the upload/delete workflows compensate
// with a fixed step ordering instead.
package database

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	pkgConfig "github.com/kerimovok/go-pkg-utils/config"

	"loader-api/internal/apperrors"
)

// Store lifecycle errors. Operations on a store that was never connected,
// or was shut down, fail clearly instead of silently reconnecting.
var (
	ErrNotConnected = errors.New("metadata store is not initialized")
	ErrClosed       = errors.New("metadata store is shut down")
)

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS files (
		file_id TEXT PRIMARY KEY,
		file_name TEXT NOT NULL,
		file_path TEXT NOT NULL,
		uploaded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`

// Config holds the connection and pool-size settings.
type Config struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MinConns int32
	MaxConns int32
}

// ConfigFromEnv builds a Config from the DB_* environment variables.
// Values are validated upfront by constants.EnvValidationRules.
func ConfigFromEnv() Config {
	return Config{
		Host:     pkgConfig.GetEnv("DB_HOST"),
		Port:     pkgConfig.GetEnv("DB_PORT"),
		Name:     pkgConfig.GetEnv("DB_NAME"),
		User:     pkgConfig.GetEnv("DB_USER"),
		Password: pkgConfig.GetEnv("DB_PASS"),
		MinConns: envInt32("DB_POOL_MIN_CONNS", 1),
		MaxConns: envInt32("DB_POOL_MAX_CONNS", 10),
	}
}

// DSN renders the config as a pgx keyword/value connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s",
		c.Host, c.Port, c.Name, c.User, c.Password)
}

// Store is the metadata store: an explicitly constructed wrapper around a
// pgx connection pool, passed by reference to the workflow components.
// The process entry point owns its Connect/Shutdown lifecycle.
type Store struct {
	mu     sync.Mutex
	pool   *pgxpool.Pool
	closed bool
}

// NewStore creates an unconnected store.
func NewStore() *Store {
	return &Store{}
}

// Connect establishes the bounded connection pool. Idempotent: calling it
// on an already-connected store is a no-op. A shut-down store stays shut.
func (s *Store) Connect(ctx context.Context, cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return apperrors.Storage("connect failed", ErrClosed)
	}
	if s.pool != nil {
		return nil
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return apperrors.Storage("invalid database configuration", err)
	}
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConns = cfg.MaxConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return apperrors.Storage("failed to create connection pool", err)
	}

	s.pool = pool
	return nil
}

// EnsureSchema creates the files table if absent. Idempotent; called once
// at process start. Real deployments would do this via migrations.
func (s *Store) EnsureSchema(ctx context.Context) error {
	pool, err := s.acquire()
	if err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return apperrors.Storage("failed to ensure schema", err)
	}
	return nil
}

// Execute runs a mutating statement in its own implicit transaction and
// returns the affected row count.
func (s *Store) Execute(ctx context.Context, stmt string, args ...any) (int64, error) {
	pool, err := s.acquire()
	if err != nil {
		return 0, err
	}
	tag, err := pool.Exec(ctx, stmt, args...)
	if err != nil {
		return 0, apperrors.Storage("statement execution failed", err)
	}
	return tag.RowsAffected(), nil
}

// FetchAll runs a read-only query and materializes every row as a
// column-name -> value map, in result order.
func (s *Store) FetchAll(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	pool, err := s.acquire()
	if err != nil {
		return nil, err
	}
	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Storage("query failed", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var result []map[string]any
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, apperrors.Storage("failed to read row", err)
		}
		record := make(map[string]any, len(fields))
		for i, fd := range fields {
			record[fd.Name] = values[i]
		}
		result = append(result, record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Storage("query iteration failed", err)
	}
	return result, nil
}

// FetchScalar runs a single-value read. The second return reports whether
// any row matched.
func (s *Store) FetchScalar(ctx context.Context, query string, args ...any) (any, bool, error) {
	pool, err := s.acquire()
	if err != nil {
		return nil, false, err
	}
	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, false, apperrors.Storage("query failed", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, false, apperrors.Storage("query iteration failed", err)
		}
		return nil, false, nil
	}
	values, err := rows.Values()
	if err != nil {
		return nil, false, apperrors.Storage("failed to read row", err)
	}
	return values[0], true, nil
}

// Ping verifies connectivity; used by the readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	pool, err := s.acquire()
	if err != nil {
		return err
	}
	if err := pool.Ping(ctx); err != nil {
		return apperrors.Storage("database ping failed", err)
	}
	return nil
}

// Shutdown releases all pooled connections. Idempotent. Any operation
// after Shutdown fails with ErrClosed.
func (s *Store) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}
	s.closed = true
}

func (s *Store) acquire() (*pgxpool.Pool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, apperrors.Storage("store unavailable", ErrClosed)
	}
	if s.pool == nil {
		return nil, apperrors.Storage("store unavailable", ErrNotConnected)
	}
	return s.pool, nil
}

func envInt32(key string, fallback int32) int32 {
	v := pkgConfig.GetEnv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil || n <= 0 {
		return fallback
	}
	return int32(n)
}
