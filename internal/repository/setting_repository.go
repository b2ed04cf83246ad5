package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
)

// SettingRepository provides access to the system_setting key/value table.
// Values are stored as given; callers encrypt secrets before writing them.
type SettingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new SettingRepository with the provided database connection.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetSetting returns the value stored under key.
// Returns apperrors.ErrProviderSettingNotFound when the key has never been written.
func (r *SettingRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM system_setting WHERE "key" = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperrors.ErrProviderSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query system_setting: %w", err)
	}
	return value, nil
}

// PutSetting inserts or replaces the value stored under key.
func (r *SettingRepository) PutSetting(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO system_setting (id, "key", value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT("key") DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query, uuid.New().String(), key, value, FormatTimestamp(time.Now()))
	if err != nil {
		return fmt.Errorf("failed to write system_setting: %w", err)
	}
	return nil
}
