package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	errx "github.com/brb-shop/storefront/internal/core/error"
	"github.com/brb-shop/storefront/internal/storefront/model"
	logx "github.com/brb-shop/storefront/pkg/logger"
)

const kvSchema = `CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteStore persists values in a single table of a local database file,
// so the cart survives restarts on the same machine.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// one writer; avoids SQLITE_BUSY between pooled connections
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, kvSchema); err != nil {
		_ = db.Close()
		logx.Error().Err(err).Str("path", path).Msg("failed to create kv table")
		return nil, errx.WrapStorage(err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to read value from sqlite")
		return "", false, errx.WrapStorage(err)
	}
	return v, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().Unix(),
	)
	if err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to write value to sqlite")
		return errx.WrapStorage(err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ model.KeyValueStore = (*SQLiteStore)(nil)
