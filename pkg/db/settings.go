package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var ErrSettingNotFound = errors.New("setting not found")

// Setting keys.
const (
	// SettingIRProtocol holds the protocol confirmed by a protocol scan
	SettingIRProtocol = "ir_protocol"
)

// SettingStore is a per-profile key/value store.
type SettingStore interface {
	Get(ctx context.Context, profileID int64, key string) (string, error)
	Set(ctx context.Context, profileID int64, key, value string) error
	Delete(ctx context.Context, profileID int64, key string) error
}

// Settings returns a SettingStore for this database.
func (db *DB) Settings() SettingStore {
	return &settingStore{db: db}
}

type settingStore struct {
	db *DB
}

func (s *settingStore) Get(ctx context.Context, profileID int64, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM settings WHERE profile_id = ? AND key = ?
	`, profileID, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrSettingNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *settingStore) Set(ctx context.Context, profileID int64, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (profile_id, key, value)
		VALUES (?, ?, ?)
		ON CONFLICT(profile_id, key) DO UPDATE SET
			value = excluded.value,
			updated_at = datetime('now')
	`, profileID, key, value)
	if err != nil {
		return fmt.Errorf("failed to save setting %s: %w", key, err)
	}
	return nil
}

func (s *settingStore) Delete(ctx context.Context, profileID int64, key string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE profile_id = ? AND key = ?`, profileID, key)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrSettingNotFound
	}
	return nil
}
