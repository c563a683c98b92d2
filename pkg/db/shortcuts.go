package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrShortcutNotFound = errors.New("shortcut not found")

// Shortcut binds a digit key to a favourite channel.
type Shortcut struct {
	ID        int64
	ProfileID int64
	Key       string
	Number    int
	Name      string
	UpdatedAt time.Time
}

// ShortcutStore provides shortcut CRUD operations. A digit holds at most
// one shortcut per profile.
type ShortcutStore interface {
	Get(ctx context.Context, profileID int64, key string) (*Shortcut, error)
	List(ctx context.Context, profileID int64) ([]*Shortcut, error)
	Assign(ctx context.Context, s *Shortcut) error
	Clear(ctx context.Context, profileID int64, key string) error
}

// Shortcuts returns a ShortcutStore for this database.
func (db *DB) Shortcuts() ShortcutStore {
	return &shortcutStore{db: db}
}

type shortcutStore struct {
	db *DB
}

func (s *shortcutStore) Get(ctx context.Context, profileID int64, key string) (*Shortcut, error) {
	sc := &Shortcut{}
	var updatedAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, profile_id, key, number, name, updated_at
		FROM shortcuts WHERE profile_id = ? AND key = ?
	`, profileID, key).Scan(&sc.ID, &sc.ProfileID, &sc.Key, &sc.Number, &sc.Name, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrShortcutNotFound
	}
	if err != nil {
		return nil, err
	}
	sc.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt)
	return sc, nil
}

func (s *shortcutStore) List(ctx context.Context, profileID int64) ([]*Shortcut, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, profile_id, key, number, name, updated_at
		FROM shortcuts WHERE profile_id = ? ORDER BY key
	`, profileID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	shortcuts := []*Shortcut{}
	for rows.Next() {
		sc := &Shortcut{}
		var updatedAt string
		if err := rows.Scan(&sc.ID, &sc.ProfileID, &sc.Key, &sc.Number, &sc.Name, &updatedAt); err != nil {
			return nil, err
		}
		sc.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt)
		shortcuts = append(shortcuts, sc)
	}
	return shortcuts, rows.Err()
}

// Assign creates the shortcut or overwrites the one already on the key.
func (s *shortcutStore) Assign(ctx context.Context, sc *Shortcut) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO shortcuts (profile_id, key, number, name)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(profile_id, key) DO UPDATE SET
			number = excluded.number,
			name = excluded.name,
			updated_at = datetime('now')
		RETURNING id
	`, sc.ProfileID, sc.Key, sc.Number, sc.Name).Scan(&sc.ID)
	if err != nil {
		return fmt.Errorf("failed to assign shortcut: %w", err)
	}
	return nil
}

func (s *shortcutStore) Clear(ctx context.Context, profileID int64, key string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM shortcuts WHERE profile_id = ? AND key = ?`, profileID, key)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrShortcutNotFound
	}
	return nil
}
