package remote

import (
	"errors"

	"github.com/urmzd/plasma-remote/pkg/db"
)

var (
	// ErrUnknownKey indicates a key outside the remote's vocabulary
	ErrUnknownKey = errors.New("unknown key")

	// ErrNotDigit indicates a shortcut bound to a non-digit key
	ErrNotDigit = errors.New("shortcuts can only be bound to digit keys")

	// ErrClosed indicates the dispatcher has been shut down
	ErrClosed = errors.New("dispatcher closed")

	// ErrZapCancelled is the result of a zap that was cancelled or superseded
	ErrZapCancelled = errors.New("zap cancelled")

	// ErrShortcutNotFound indicates no shortcut is bound to the digit
	ErrShortcutNotFound = db.ErrShortcutNotFound
)
