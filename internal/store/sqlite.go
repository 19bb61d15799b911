package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"shopfront/internal/domain"
)

// SQLiteStore keeps the cart snapshot in a single-file local database.
// It is the default adapter: pure Go, no server, survives process restarts.
type SQLiteStore struct {
	db  *sql.DB
	log *zap.Logger
}

// NewSQLiteStore opens (creating if needed) the database under dir and
// prepares the key-value table the snapshot lives in.
func NewSQLiteStore(dir string, log *zap.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state dir: %w", err)
	}

	dsn := filepath.Join(dir, "shopfront.db")
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single local writer, keep the pool at one connection.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS kv (
			key   TEXT PRIMARY KEY,
			value BLOB NOT NULL
		)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}

	return &SQLiteStore{db: db, log: log}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (domain.Cart, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, CartKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Empty(), nil
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("failed to read cart snapshot: %w", err)
	}

	cart, err := decodeSnapshot(raw)
	if err != nil {
		s.log.Warn("discarding corrupted cart snapshot", zap.Error(err))
		if _, delErr := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, CartKey); delErr != nil {
			s.log.Warn("failed to delete corrupted cart snapshot", zap.Error(delErr))
		}
		return domain.Empty(), nil
	}
	return cart, nil
}

func (s *SQLiteStore) Save(ctx context.Context, cart domain.Cart) error {
	raw, err := encodeSnapshot(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, CartKey, raw)
	if err != nil {
		return fmt.Errorf("failed to write cart snapshot: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
