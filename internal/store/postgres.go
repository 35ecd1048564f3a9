// Package store provides session storage backends for civicbot.
//
// This file implements the PostgreSQL-backed session store.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "embed"

	"github.com/kolhapurmc/civicbot/internal/models"
	_ "github.com/lib/pq"
)

//go:embed migrations_postgres.sql
var postgresMigrations string

type PostgresStore struct {
	db  *sql.DB
	ttl time.Duration
}

// NewPostgresStore creates a new PostgreSQL session store with the given DSN.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	cfg := applyOptions(opts)
	slog.Debug("NewPostgresStore invoked", "DSN_set", cfg.DSN != "")

	if cfg.DSN == "" {
		return nil, fmt.Errorf("database DSN not set")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		slog.Error("Failed to open PostgreSQL connection", "error", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		slog.Error("PostgreSQL ping failed", "error", err)
		return nil, err
	}

	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("Failed to run PostgreSQL migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("PostgreSQL session store ready")

	return &PostgresStore{db: db, ttl: cfg.TTL}, nil
}

// GetSession returns the live session for a phone number, or nil.
func (s *PostgresStore) GetSession(phone string) (*models.Session, error) {
	var sessionJSON string
	var expiresAt time.Time

	err := s.db.QueryRow(`SELECT session_json, expires_at FROM sessions WHERE phone = $1`, phone).
		Scan(&sessionJSON, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		slog.Error("PostgresStore GetSession failed", "error", err, "phone", phone)
		return nil, fmt.Errorf("failed to query session for %s: %w", phone, err)
	}

	if time.Now().After(expiresAt) {
		slog.Debug("PostgresStore GetSession expired record purged", "phone", phone)
		if _, err := s.db.Exec(`DELETE FROM sessions WHERE phone = $1`, phone); err != nil {
			slog.Warn("PostgresStore failed to purge expired session", "error", err, "phone", phone)
		}
		return nil, nil
	}

	var session models.Session
	if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
		slog.Error("PostgresStore GetSession unmarshal failed, treating as absent", "error", err, "phone", phone)
		return nil, nil
	}
	return &session, nil
}

// SaveSession upserts the session and resets its TTL.
func (s *PostgresStore) SaveSession(session *models.Session) error {
	session.UpdatedAt = time.Now()
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		slog.Error("PostgresStore SaveSession marshal failed", "error", err, "phone", session.Phone)
		return fmt.Errorf("failed to marshal session for %s: %w", session.Phone, err)
	}

	_, err = s.db.Exec(`
		INSERT INTO sessions (phone, session_json, expires_at) VALUES ($1, $2, $3)
		ON CONFLICT (phone) DO UPDATE SET session_json = $2, expires_at = $3`,
		session.Phone, string(sessionJSON), time.Now().Add(s.ttl))
	if err != nil {
		slog.Error("PostgresStore SaveSession failed", "error", err, "phone", session.Phone)
		return fmt.Errorf("failed to save session for %s: %w", session.Phone, err)
	}
	slog.Debug("PostgresStore SaveSession succeeded", "phone", session.Phone, "state", session.State)
	return nil
}

// DeleteSession removes the session record immediately.
func (s *PostgresStore) DeleteSession(phone string) error {
	_, err := s.db.Exec(`DELETE FROM sessions WHERE phone = $1`, phone)
	if err != nil {
		slog.Error("PostgresStore DeleteSession failed", "error", err, "phone", phone)
		return fmt.Errorf("failed to delete session for %s: %w", phone, err)
	}
	return nil
}

// Close closes the PostgreSQL connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
