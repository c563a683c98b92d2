package remote

import (
	"context"
	"fmt"

	"github.com/urmzd/plasma-remote/pkg/db"
	"github.com/urmzd/plasma-remote/pkg/tv"
)

// Shortcut binds a digit key to a favourite channel.
type Shortcut struct {
	Key    tv.Key `json:"key"`
	Number int    `json:"number"`
	Name   string `json:"name"`
}

// Shortcuts manages digit shortcuts of one profile and plays them back as
// zaps.
type Shortcuts struct {
	store      db.ShortcutStore
	profileID  int64
	dispatcher *Dispatcher
}

// NewShortcuts creates a Shortcuts service.
func NewShortcuts(store db.ShortcutStore, profileID int64, dispatcher *Dispatcher) *Shortcuts {
	return &Shortcuts{store: store, profileID: profileID, dispatcher: dispatcher}
}

// Assign binds key to channel number, replacing any existing binding.
func (s *Shortcuts) Assign(ctx context.Context, key tv.Key, number int, name string) (Shortcut, error) {
	if !key.IsDigit() {
		return Shortcut{}, fmt.Errorf("%w: %q", ErrNotDigit, string(key))
	}
	if number < tv.MinChannel {
		return Shortcut{}, fmt.Errorf("%w: %d", tv.ErrInvalidChannel, number)
	}

	err := s.store.Assign(ctx, &db.Shortcut{
		ProfileID: s.profileID,
		Key:       string(key),
		Number:    number,
		Name:      name,
	})
	if err != nil {
		return Shortcut{}, err
	}

	s.dispatcher.Notify(fmt.Sprintf("Saved: key %s = %s", key, displayName(number, name)))
	return Shortcut{Key: key, Number: number, Name: name}, nil
}

// Get returns the shortcut on key.
func (s *Shortcuts) Get(ctx context.Context, key tv.Key) (Shortcut, error) {
	if !key.IsDigit() {
		return Shortcut{}, fmt.Errorf("%w: %q", ErrNotDigit, string(key))
	}
	sc, err := s.store.Get(ctx, s.profileID, string(key))
	if err != nil {
		return Shortcut{}, err
	}
	return fromRow(sc), nil
}

// List returns every shortcut ordered by digit.
func (s *Shortcuts) List(ctx context.Context) ([]Shortcut, error) {
	rows, err := s.store.List(ctx, s.profileID)
	if err != nil {
		return nil, err
	}
	out := make([]Shortcut, 0, len(rows))
	for _, r := range rows {
		out = append(out, fromRow(r))
	}
	return out, nil
}

// Clear removes the shortcut on key.
func (s *Shortcuts) Clear(ctx context.Context, key tv.Key) error {
	if !key.IsDigit() {
		return fmt.Errorf("%w: %q", ErrNotDigit, string(key))
	}
	if err := s.store.Clear(ctx, s.profileID, string(key)); err != nil {
		return err
	}
	s.dispatcher.Notify(fmt.Sprintf("Shortcut %s cleared", key))
	return nil
}

// Activate zaps to the channel bound to key.
func (s *Shortcuts) Activate(ctx context.Context, key tv.Key) (*ZapJob, error) {
	sc, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.dispatcher.Zap(sc.Number, sc.Name)
}

func fromRow(r *db.Shortcut) Shortcut {
	return Shortcut{Key: tv.Key(r.Key), Number: r.Number, Name: r.Name}
}

func displayName(number int, name string) string {
	if name == "" {
		return fmt.Sprintf("%d", number)
	}
	return name
}
