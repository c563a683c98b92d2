package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrBridgeConfigNotFound = errors.New("bridge config not found")

// BridgeConfig is the persisted IR bridge configuration of a profile.
type BridgeConfig struct {
	ID          int64
	ProfileID   int64
	Enabled     bool
	URL         string
	Method      string
	SoundEffect string
	UpdatedAt   time.Time
}

// BridgeConfigStore reads and writes bridge configuration.
type BridgeConfigStore interface {
	Get(ctx context.Context, profileID int64) (*BridgeConfig, error)
	Save(ctx context.Context, c *BridgeConfig) error
}

// BridgeConfigs returns a BridgeConfigStore for this database.
func (db *DB) BridgeConfigs() BridgeConfigStore {
	return &bridgeConfigStore{db: db}
}

type bridgeConfigStore struct {
	db *DB
}

func (s *bridgeConfigStore) Get(ctx context.Context, profileID int64) (*BridgeConfig, error) {
	c := &BridgeConfig{}
	var updatedAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, profile_id, enabled, url, method, sound_effect, updated_at
		FROM bridge_configs WHERE profile_id = ?
	`, profileID).Scan(&c.ID, &c.ProfileID, &c.Enabled, &c.URL, &c.Method, &c.SoundEffect, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrBridgeConfigNotFound
	}
	if err != nil {
		return nil, err
	}
	c.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt)
	return c, nil
}

// Save creates or replaces the profile's bridge configuration.
func (s *bridgeConfigStore) Save(ctx context.Context, c *BridgeConfig) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bridge_configs (profile_id, enabled, url, method, sound_effect)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(profile_id) DO UPDATE SET
			enabled = excluded.enabled,
			url = excluded.url,
			method = excluded.method,
			sound_effect = excluded.sound_effect,
			updated_at = datetime('now')
	`, c.ProfileID, c.Enabled, c.URL, c.Method, c.SoundEffect)
	if err != nil {
		return fmt.Errorf("failed to save bridge config: %w", err)
	}
	return nil
}
