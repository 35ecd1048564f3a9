// Package store provides session storage backends for civicbot.
//
// This file implements the SQLite-backed session store.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "embed"

	"github.com/kolhapurmc/civicbot/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// DefaultDirPermissions defines the default permissions for database directories.
const DefaultDirPermissions = 0755

//go:embed migrations_sqlite.sql
var sqliteMigrations string

type SQLiteStore struct {
	db  *sql.DB
	ttl time.Duration
}

// NewSQLiteStore creates a new SQLite session store with the given DSN.
// The DSN should be a file path; missing directories are created.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	cfg := applyOptions(opts)
	slog.Debug("NewSQLiteStore invoked", "DSN_set", cfg.DSN != "")

	if cfg.DSN == "" {
		return nil, fmt.Errorf("database DSN not set")
	}

	dir := filepath.Dir(cfg.DSN)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		slog.Error("Failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		slog.Error("Failed to open SQLite connection", "error", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		slog.Error("SQLite ping failed", "error", err)
		return nil, err
	}

	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("Failed to run SQLite migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("SQLite session store ready", "path", cfg.DSN)

	return &SQLiteStore{db: db, ttl: cfg.TTL}, nil
}

// GetSession returns the live session for a phone number, or nil.
// Expired rows are deleted on read; a corrupt session payload is treated as
// absent so the conversation restarts cleanly instead of failing.
func (s *SQLiteStore) GetSession(phone string) (*models.Session, error) {
	var sessionJSON string
	var expiresAt time.Time

	err := s.db.QueryRow(`SELECT session_json, expires_at FROM sessions WHERE phone = ?`, phone).
		Scan(&sessionJSON, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		slog.Error("SQLiteStore GetSession failed", "error", err, "phone", phone)
		return nil, fmt.Errorf("failed to query session for %s: %w", phone, err)
	}

	if time.Now().After(expiresAt) {
		slog.Debug("SQLiteStore GetSession expired record purged", "phone", phone)
		if _, err := s.db.Exec(`DELETE FROM sessions WHERE phone = ?`, phone); err != nil {
			slog.Warn("SQLiteStore failed to purge expired session", "error", err, "phone", phone)
		}
		return nil, nil
	}

	var session models.Session
	if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
		slog.Error("SQLiteStore GetSession unmarshal failed, treating as absent", "error", err, "phone", phone)
		return nil, nil
	}
	return &session, nil
}

// SaveSession upserts the session and resets its TTL.
func (s *SQLiteStore) SaveSession(session *models.Session) error {
	session.UpdatedAt = time.Now()
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		slog.Error("SQLiteStore SaveSession marshal failed", "error", err, "phone", session.Phone)
		return fmt.Errorf("failed to marshal session for %s: %w", session.Phone, err)
	}

	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO sessions (phone, session_json, expires_at) VALUES (?, ?, ?)`,
		session.Phone, string(sessionJSON), time.Now().Add(s.ttl))
	if err != nil {
		slog.Error("SQLiteStore SaveSession failed", "error", err, "phone", session.Phone)
		return fmt.Errorf("failed to save session for %s: %w", session.Phone, err)
	}
	slog.Debug("SQLiteStore SaveSession succeeded", "phone", session.Phone, "state", session.State)
	return nil
}

// DeleteSession removes the session record immediately.
func (s *SQLiteStore) DeleteSession(phone string) error {
	_, err := s.db.Exec(`DELETE FROM sessions WHERE phone = ?`, phone)
	if err != nil {
		slog.Error("SQLiteStore DeleteSession failed", "error", err, "phone", phone)
		return fmt.Errorf("failed to delete session for %s: %w", phone, err)
	}
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
