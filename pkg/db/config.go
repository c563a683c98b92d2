package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/urmzd/plasma-remote/pkg/bridge"
)

var ErrNoActiveProfile = errors.New("no active profile found")

// Config represents the complete runtime configuration loaded from the database.
type Config struct {
	Profile   *Profile
	APIServer *APIServer
	Bridge    *BridgeConfig

	// IRProtocol is empty until a protocol scan has been confirmed
	IRProtocol string
}

// APIAddress returns the API server listen address.
func (c *Config) APIAddress() string {
	if c.APIServer == nil {
		return (&APIServer{Host: DefaultAPIHost, Port: DefaultAPIPort}).Address()
	}
	return c.APIServer.Address()
}

// Timezone returns the profile timezone.
func (c *Config) Timezone() string {
	if c.Profile == nil {
		return "UTC"
	}
	return c.Profile.Timezone
}

// ProfileID returns the active profile ID.
func (c *Config) ProfileID() int64 {
	if c.Profile == nil {
		return 0
	}
	return c.Profile.ID
}

// BridgeConfig converts the stored bridge settings, falling back to the
// disabled default.
func (c *Config) BridgeConfig() bridge.Config {
	if c.Bridge == nil {
		return bridge.DefaultConfig()
	}
	return bridge.Config{
		Enabled:     c.Bridge.Enabled,
		URL:         c.Bridge.URL,
		Method:      c.Bridge.Method,
		SoundEffect: c.Bridge.SoundEffect,
	}.Normalize()
}

// Protocol returns the stored IR protocol or the default one.
func (c *Config) Protocol() string {
	if c.IRProtocol == "" {
		return bridge.DefaultProtocol
	}
	return c.IRProtocol
}

// ActiveConfig loads the complete configuration for the active profile.
func (db *DB) ActiveConfig(ctx context.Context) (*Config, error) {
	// Get active profile
	profile, err := db.Profiles().GetActive(ctx)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, ErrNoActiveProfile
		}
		return nil, fmt.Errorf("failed to get active profile: %w", err)
	}

	config := &Config{
		Profile: profile,
	}

	// Get API server config
	apiServer, err := db.APIServers().Get(ctx, profile.ID)
	if err != nil && !errors.Is(err, ErrAPIServerNotFound) {
		return nil, fmt.Errorf("failed to get API server config: %w", err)
	}
	config.APIServer = apiServer

	bridgeConfig, err := db.BridgeConfigs().Get(ctx, profile.ID)
	if err != nil && !errors.Is(err, ErrBridgeConfigNotFound) {
		return nil, fmt.Errorf("failed to get bridge config: %w", err)
	}
	config.Bridge = bridgeConfig

	protocol, err := db.Settings().Get(ctx, profile.ID, SettingIRProtocol)
	if err != nil && !errors.Is(err, ErrSettingNotFound) {
		return nil, fmt.Errorf("failed to get IR protocol: %w", err)
	}
	config.IRProtocol = protocol

	return config, nil
}
