// Package session persists the authentication session in the local sqlite
// database so it survives restarts. The store is a pure local-storage
// boundary: no network I/O, no caching layer, every mutation immediately
// visible to subsequent reads.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/gesan-dev/backoffice-cli/internal/client/models"
	"github.com/gesan-dev/backoffice-cli/internal/client/session/migrations"
	"github.com/gesan-dev/backoffice-cli/internal/dbx"
	"github.com/gesan-dev/backoffice-cli/internal/logging"
)

const (
	keyToken = "token"
	keyUser  = "user"
)

// Open opens (creating if needed) the local database at dsn and applies
// pending migrations.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return nil, err
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Store reads and writes the persisted Session.
//
// Storage unavailability must never crash the UI, so mutating methods log a
// warning instead of returning an error. A malformed stored record is
// treated as "no session", not as a failure.
type Store struct {
	db  *sql.DB
	log logging.Logger
}

func NewStore(db *sql.DB, log logging.Logger) *Store {
	return &Store{db: db, log: log.With("component", "session")}
}

// Get returns the persisted session, or nil when either part is missing or
// malformed.
func (s *Store) Get(ctx context.Context) *models.Session {
	token, err := s.value(ctx, keyToken)
	if err != nil {
		return nil
	}

	raw, err := s.value(ctx, keyUser)
	if err != nil {
		return nil
	}

	var user models.UserProfile
	if err := json.Unmarshal(raw, &user); err != nil {
		s.log.Warn(ctx, "stored user record is malformed, treating as no session", "error", err)
		return nil
	}

	sess := &models.Session{Token: string(token), User: &user}
	if !sess.Valid() {
		return nil
	}
	return sess
}

// Set persists sess. Token and user are written in one transaction so a
// partial session is never observable; on failure a warning is logged and
// the previous state is left untouched.
func (s *Store) Set(ctx context.Context, sess *models.Session) {
	if !sess.Valid() {
		s.log.Warn(ctx, "refusing to persist incomplete session")
		return
	}

	raw, err := json.Marshal(sess.User)
	if err != nil {
		s.log.Warn(ctx, "session write failed", "error", err)
		return
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := upsert(ctx, tx, keyToken, []byte(sess.Token)); err != nil {
			return err
		}
		return upsert(ctx, tx, keyUser, raw)
	})
	if err != nil {
		s.log.Warn(ctx, "session write failed", "error", err)
	}
}

// Clear removes both entries. Idempotent: clearing an empty store is a
// no-op.
func (s *Store) Clear(ctx context.Context) {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE key IN (?, ?)`, keyToken, keyUser)
	if err != nil {
		s.log.Warn(ctx, "session clear failed", "error", err)
	}
}

// IsValid reports whether a complete session is currently stored.
func (s *Store) IsValid(ctx context.Context) bool {
	return s.Get(ctx) != nil
}

// Token returns the stored bearer token, or "" when no valid session exists.
func (s *Store) Token(ctx context.Context) string {
	sess := s.Get(ctx)
	if sess == nil {
		return ""
	}
	return sess.Token
}

func (s *Store) value(ctx context.Context, key string) ([]byte, error) {
	var v []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&v)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.log.Warn(ctx, "session read failed", "key", key, "error", err)
		}
		return nil, err
	}
	return v, nil
}

func upsert(ctx context.Context, tx dbx.DBTX, key string, value []byte) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO session (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	return err
}
