package assistant

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable is returned when no interpreter is configured.
	ErrUnavailable = errors.New("assistant: no interpreter configured")

	// ErrNoAPIKey is returned when the provider needs an API key and none was given.
	ErrNoAPIKey = errors.New("assistant: API key required")

	// ErrEmptyCommand is returned for blank input.
	ErrEmptyCommand = errors.New("assistant: empty command")

	// ErrEmptyResponse is returned when the provider answered without any text.
	ErrEmptyResponse = errors.New("assistant: empty response")

	// ErrMalformedIntent is returned when the reply is not a JSON object.
	ErrMalformedIntent = errors.New("assistant: malformed intent")
)

// APIError is an error response from the LLM provider.
type APIError struct {
	StatusCode int
	Message    string
	Code       string
	Provider   string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("assistant [%s]: API error %d (%s): %s",
			e.Provider, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("assistant [%s]: API error %d: %s",
		e.Provider, e.StatusCode, e.Message)
}

// IsRateLimited reports an HTTP 429.
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == 429
}

// IsUnauthorized reports an HTTP 401 or 403.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// IsServerError reports an HTTP 5xx.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// ProviderError tags an error with the provider that produced it.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("assistant [%s]: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// WrapError wraps err with provider context. APIErrors and nil pass through.
func WrapError(provider string, err error) error {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return err
	}
	return &ProviderError{Provider: provider, Err: err}
}
