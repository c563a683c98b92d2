package bridge

import "errors"

var (
	// ErrNotConfigured indicates no bridge URL is set or the bridge is disabled
	ErrNotConfigured = errors.New("bridge not configured")

	// ErrUnsupportedScheme indicates the bridge URL uses an unknown transport
	ErrUnsupportedScheme = errors.New("unsupported bridge scheme")

	// ErrInvalidMethod indicates an HTTP method other than GET or POST
	ErrInvalidMethod = errors.New("invalid bridge method")

	// ErrInvalidURL indicates the bridge URL could not be parsed
	ErrInvalidURL = errors.New("invalid bridge url")

	// ErrClosed indicates the bridge transport has been closed
	ErrClosed = errors.New("bridge closed")
)
