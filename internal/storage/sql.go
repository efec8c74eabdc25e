package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLStore persists visitor storage in the visitor_storage table.
type SQLStore struct {
	DB *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{DB: db}
}

func (s *SQLStore) Get(ctx context.Context, visitorID, key string) (string, bool, error) {
	var value string
	query := "SELECT value FROM visitor_storage WHERE visitor_id = ? AND storage_key = ?"
	err := s.DB.QueryRowContext(ctx, query, visitorID, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLStore) Set(ctx context.Context, visitorID, key, value string) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO visitor_storage (visitor_id, storage_key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			value = VALUES(value),
			updated_at = VALUES(updated_at)`,
		visitorID, key, value, time.Now())
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, visitorID, key string) error {
	query := "DELETE FROM visitor_storage WHERE visitor_id = ? AND storage_key = ?"
	if _, err := s.DB.ExecContext(ctx, query, visitorID, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
