package tokenstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/oauth2"
	_ "modernc.org/sqlite"

	"github.com/me/freesound/internal/logging"
)

// schema uses IF NOT EXISTS so Migrate is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS oauth_tokens (
		key           TEXT PRIMARY KEY,
		access_token  TEXT NOT NULL,
		token_type    TEXT NOT NULL DEFAULT 'Bearer',
		refresh_token TEXT NOT NULL DEFAULT '',
		scope         TEXT NOT NULL DEFAULT '',
		expiry        TEXT,
		updated_at    TEXT NOT NULL
	)`,
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) a SQLite database at dbPath.
// Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	logger = logging.OrDiscard(logger)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	// A :memory: database exists per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "tokenstore"),
	}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates the token table.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Save implements Store.
func (s *SQLiteStore) Save(ctx context.Context, key string, tok *oauth2.Token) error {
	s.logger.Debug("sql", "op", "upsert", "table", "oauth_tokens", "key", key)

	var expiry any
	if !tok.Expiry.IsZero() {
		expiry = tok.Expiry.UTC().Format(time.RFC3339Nano)
	}
	tokenType := tok.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO oauth_tokens (key, access_token, token_type, refresh_token, scope, expiry, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		   access_token = excluded.access_token,
		   token_type = excluded.token_type,
		   refresh_token = excluded.refresh_token,
		   scope = excluded.scope,
		   expiry = excluded.expiry,
		   updated_at = excluded.updated_at`,
		key, tok.AccessToken, tokenType, tok.RefreshToken, Scope(tok), expiry,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save token %s: %w", key, err)
	}
	return nil
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, key string) (*oauth2.Token, error) {
	s.logger.Debug("sql", "op", "select", "table", "oauth_tokens", "key", key)

	var tok oauth2.Token
	var scope string
	var expiry sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT access_token, token_type, refresh_token, scope, expiry FROM oauth_tokens WHERE key = ?`, key,
	).Scan(&tok.AccessToken, &tok.TokenType, &tok.RefreshToken, &scope, &expiry)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get token %s: %w", key, err)
	}

	if expiry.Valid {
		t, err := time.Parse(time.RFC3339Nano, expiry.String)
		if err != nil {
			return nil, fmt.Errorf("parse expiry of %s: %w", key, err)
		}
		tok.Expiry = t
	}
	out := &tok
	if scope != "" {
		out = out.WithExtra(map[string]any{"scope": scope})
	}
	return out, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	s.logger.Debug("sql", "op", "delete", "table", "oauth_tokens", "key", key)
	if _, err := s.db.ExecContext(ctx, `DELETE FROM oauth_tokens WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete token %s: %w", key, err)
	}
	return nil
}
