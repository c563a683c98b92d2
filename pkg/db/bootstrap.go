package db

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/urmzd/plasma-remote/pkg/bridge"
)

// Bootstrap writes the first-run defaults: an active "default" profile
// listening on 0.0.0.0:8080 with the IR bridge disabled. It is a no-op once
// any profile exists.
func (db *DB) Bootstrap(ctx context.Context) error {
	needed, err := db.NeedsBootstrap(ctx)
	if err != nil {
		return fmt.Errorf("failed to check profiles: %w", err)
	}
	if !needed {
		return nil
	}

	_, err = db.createProfile(ctx, DefaultProfileName)
	return err
}

// UseProfile makes the profile called name the active one, creating it with
// the first-run defaults when it does not exist yet.
func (db *DB) UseProfile(ctx context.Context, name string) (*Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrProfileNameRequired
	}

	profiles := db.Profiles()
	list, err := profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	for _, p := range list {
		if p.Name != name {
			continue
		}
		if !p.IsActive {
			if err := profiles.SetActive(ctx, p.ID); err != nil {
				return nil, fmt.Errorf("failed to activate profile %q: %w", name, err)
			}
		}
		return profiles.Get(ctx, p.ID)
	}

	return db.createProfile(ctx, name)
}

// createProfile adds an active profile listening on 0.0.0.0:8080 with the
// IR bridge disabled.
func (db *DB) createProfile(ctx context.Context, name string) (*Profile, error) {
	profile := &Profile{Name: name, Timezone: detectTimezone(), IsActive: true}
	if err := db.Profiles().Create(ctx, profile); err != nil {
		return nil, err
	}

	err := db.APIServers().Save(ctx, &APIServer{
		ProfileID: profile.ID,
		Host:      DefaultAPIHost,
		Port:      DefaultAPIPort,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create default API server: %w", err)
	}

	// The bridge starts disabled; the remote works as a pure simulator
	defaults := bridge.DefaultConfig()
	err = db.BridgeConfigs().Save(ctx, &BridgeConfig{
		ProfileID:   profile.ID,
		Enabled:     defaults.Enabled,
		URL:         defaults.URL,
		Method:      defaults.Method,
		SoundEffect: defaults.SoundEffect,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create default bridge config: %w", err)
	}

	return profile, nil
}

// detectTimezone attempts to detect the system timezone.
func detectTimezone() string {
	switch runtime.GOOS {
	case "darwin":
		// Try systemsetup first
		out, err := exec.Command("systemsetup", "-gettimezone").Output()
		if err == nil {
			parts := strings.SplitN(string(out), ": ", 2)
			if len(parts) == 2 {
				return strings.TrimSpace(parts[1])
			}
		}

		// Fallback: read /etc/localtime symlink
		if link, err := os.Readlink("/etc/localtime"); err == nil {
			if idx := strings.Index(link, "zoneinfo/"); idx != -1 {
				return link[idx+9:]
			}
		}

	case "linux":
		// Try timedatectl first (systemd)
		out, err := exec.Command("timedatectl", "show", "--property=Timezone", "--value").Output()
		if err == nil {
			return strings.TrimSpace(string(out))
		}

		// Fallback: /etc/timezone file
		if data, err := os.ReadFile("/etc/timezone"); err == nil {
			return strings.TrimSpace(string(data))
		}

		// Fallback: /etc/localtime symlink
		if link, err := os.Readlink("/etc/localtime"); err == nil {
			if idx := strings.Index(link, "zoneinfo/"); idx != -1 {
				return link[idx+9:]
			}
		}
	}

	return "UTC"
}

// NeedsBootstrap returns true if the database needs initial setup.
func (db *DB) NeedsBootstrap(ctx context.Context) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
