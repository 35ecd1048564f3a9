// Package store provides session storage backends for civicbot.
//
// Sessions are persisted as one composite record per phone number with a
// single sliding TTL, refreshed on every write. Expired records are treated
// as absent and purged lazily on read. Backends: in-memory (default),
// SQLite and PostgreSQL, selected by DSN.
package store

import (
	"log/slog"
	"sync"
	"time"

	"github.com/kolhapurmc/civicbot/internal/models"
)

// Store defines the session persistence contract.
type Store interface {
	// GetSession returns the session for a phone number, or nil if no
	// live record exists. An expired or unreadable record is nil, not
	// an error.
	GetSession(phone string) (*models.Session, error)

	// SaveSession upserts the session and resets its TTL.
	SaveSession(session *models.Session) error

	// DeleteSession removes the session record immediately.
	DeleteSession(phone string) error

	// Close releases backend resources.
	Close() error
}

// Opts holds configuration for store constructors.
type Opts struct {
	DSN string
	TTL time.Duration
}

// Option defines a configuration option for a store backend.
type Option func(*Opts)

// WithSQLiteDSN sets the SQLite database file path.
func WithSQLiteDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// WithPostgresDSN sets the PostgreSQL connection string.
func WithPostgresDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// WithTTL overrides the default session TTL.
func WithTTL(ttl time.Duration) Option {
	return func(o *Opts) { o.TTL = ttl }
}

func applyOptions(opts []Option) Opts {
	cfg := Opts{TTL: models.SessionTTL}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// memoryEntry pairs a session with its expiry deadline.
type memoryEntry struct {
	session   models.Session
	expiresAt time.Time
}

// InMemoryStore keeps sessions in a map. Used when no DSN is configured and
// as a test double.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

// NewInMemoryStore creates an empty in-memory session store.
func NewInMemoryStore(opts ...Option) *InMemoryStore {
	cfg := applyOptions(opts)
	return &InMemoryStore{
		sessions: make(map[string]memoryEntry),
		ttl:      cfg.TTL,
		now:      time.Now,
	}
}

// SetClock replaces the time source, for expiry tests.
func (s *InMemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// GetSession returns the live session for a phone number, or nil.
func (s *InMemoryStore) GetSession(phone string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[phone]
	if !ok {
		return nil, nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.sessions, phone)
		slog.Debug("InMemoryStore GetSession expired record purged", "phone", phone)
		return nil, nil
	}
	session := entry.session
	return &session, nil
}

// SaveSession upserts the session and resets its TTL.
func (s *InMemoryStore) SaveSession(session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session.UpdatedAt = s.now()
	s.sessions[session.Phone] = memoryEntry{
		session:   *session,
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

// DeleteSession removes the session record immediately.
func (s *InMemoryStore) DeleteSession(phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, phone)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error {
	return nil
}
