package bridge

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Transport schemes accepted in a bridge URL.
const (
	SchemeHTTP   = "http"
	SchemeHTTPS  = "https"
	SchemeSerial = "serial"
)

// Config is the persisted bridge configuration.
type Config struct {
	Enabled     bool   `json:"enabled"`
	URL         string `json:"bridge_url"`
	Method      string `json:"method"`
	SoundEffect string `json:"sound_effect"`
}

// DefaultConfig returns a disabled bridge with the standard click sound.
func DefaultConfig() Config {
	return Config{
		Enabled:     false,
		URL:         "",
		Method:      http.MethodGet,
		SoundEffect: DefaultSound,
	}
}

// Active reports whether key presses should be forwarded.
func (c Config) Active() bool {
	return c.Enabled && strings.TrimSpace(c.URL) != ""
}

// Normalize fills defaults and canonicalises the method.
func (c Config) Normalize() Config {
	c.URL = strings.TrimSpace(c.URL)
	c.Method = strings.ToUpper(strings.TrimSpace(c.Method))
	if c.Method == "" {
		c.Method = http.MethodGet
	}
	if c.SoundEffect == "" {
		c.SoundEffect = DefaultSound
	}
	return c
}

// Validate checks a normalized config. A disabled bridge may keep a
// half-typed URL; an enabled one must point at a supported transport.
func (c Config) Validate() error {
	if c.Method != http.MethodGet && c.Method != http.MethodPost {
		return fmt.Errorf("%w: %q", ErrInvalidMethod, c.Method)
	}
	if !c.Active() {
		return nil
	}
	_, err := schemeOf(c.URL)
	return err
}

func schemeOf(raw string) (string, error) {
	u, err := url.Parse(strings.ReplaceAll(strings.ReplaceAll(raw, PlaceholderKey, "KEY"), PlaceholderProtocol, "PROTOCOL"))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	switch s := strings.ToLower(u.Scheme); s {
	case SchemeHTTP, SchemeHTTPS, SchemeSerial:
		return s, nil
	case "":
		return "", fmt.Errorf("%w: missing scheme", ErrInvalidURL)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.Scheme)
	}
}

// ConfigSchema is the JSON Schema for a bridge configuration payload.
var ConfigSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "enabled": {"type": "boolean"},
    "bridge_url": {"type": "string", "maxLength": 2048},
    "method": {"type": "string", "enum": ["GET", "POST", "get", "post"]},
    "sound_effect": {"type": "string"}
  },
  "required": ["enabled", "bridge_url"],
  "additionalProperties": false
}`)
