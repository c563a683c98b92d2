package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultHistoryLimit caps history listings when no limit is given.
const DefaultHistoryLimit = 50

// HistoryEntry records one assistant exchange.
type HistoryEntry struct {
	ID        string
	ProfileID int64
	Text      string
	Action    string
	Reply     string
	CreatedAt time.Time
}

// HistoryStore appends and lists assistant exchanges.
type HistoryStore interface {
	Add(ctx context.Context, e *HistoryEntry) error
	List(ctx context.Context, profileID int64, limit int) ([]*HistoryEntry, error)
}

// History returns a HistoryStore for this database.
func (db *DB) History() HistoryStore {
	return &historyStore{db: db}
}

type historyStore struct {
	db *DB
}

// Add stores e, assigning a random ID when e.ID is empty.
func (s *historyStore) Add(ctx context.Context, e *HistoryEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO command_history (id, profile_id, text, action, reply, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.ID, e.ProfileID, e.Text, e.Action, e.Reply, e.CreatedAt.UTC().Format(time.DateTime))
	if err != nil {
		return fmt.Errorf("failed to add history entry: %w", err)
	}
	return nil
}

// List returns the most recent entries first.
func (s *historyStore) List(ctx context.Context, profileID int64, limit int) ([]*HistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, profile_id, text, action, reply, created_at
		FROM command_history WHERE profile_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, profileID, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	entries := []*HistoryEntry{}
	for rows.Next() {
		e := &HistoryEntry{}
		var createdAt string
		if err := rows.Scan(&e.ID, &e.ProfileID, &e.Text, &e.Action, &e.Reply, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
