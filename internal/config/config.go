// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the API key goes to the OS
// keychain.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"fanline/cli/internal/xdg"
)

// Config holds non-sensitive CLI settings.
type Config struct {
	// Endpoint is the static Fanline API endpoint.
	Endpoint string `json:"endpoint"`
	// DiscoveryURL, when set, points at a control-plane document the API
	// endpoint is resolved from before every request. Takes precedence over
	// Endpoint.
	DiscoveryURL string `json:"discovery_url,omitempty"`
	// RequestTimeout is the per-request timeout in seconds. Zero means the
	// client default.
	RequestTimeout int `json:"request_timeout,omitempty"`
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; missing file returns defaults.
func Load() (Config, error) {
	var c Config
	p, err := path()
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Defaults: endpoint must be configured via `fanline connect`
			// or the FANLINE_API_URL environment variable.
			return c, nil
		}
		return c, err
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, err
	}
	return c, nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}
