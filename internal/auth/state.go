// Copyright (c) 2025 Fanline
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package auth implements persistence for login state.
//
// The serialized state is stored in the OS keychain via internal/keychain,
// next to the API key it describes. On platforms without keychain support
// the state falls back to a file in the XDG state directory. The file holds
// no secrets, only the logged-in flag and the endpoint name.
package auth

import (
	"encoding/json"
	"os"
	"path/filepath"

	"fanline/cli/internal/keychain"
	"fanline/cli/internal/xdg"
)

// State represents persisted login state for the current user.
type State struct {
	LoggedIn bool   `json:"logged_in"`
	Endpoint string `json:"endpoint"`
}

// Load reads the login state. Missing state yields the zero value.
func Load() (State, error) {
	var s State

	data, err := loadRaw()
	if err != nil || len(data) == 0 {
		// Missing state reads as not logged in.
		return s, nil
	}

	if err := json.Unmarshal(data, &s); err != nil {
		return s, err
	}
	return s, nil
}

// Save writes the login state.
func Save(s State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	km, err := keychain.GetManager()
	if err == nil {
		return km.SaveAuthState(data)
	}

	path, err := statePath()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Clear removes the stored login state.
func Clear() error {
	if km, err := keychain.GetManager(); err == nil {
		return km.ClearAuthState()
	}

	path, err := statePath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func loadRaw() ([]byte, error) {
	km, err := keychain.GetManager()
	if err == nil {
		return km.LoadAuthState()
	}

	path, err := statePath()
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

func statePath() (string, error) {
	dir, err := xdg.StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "auth.json"), nil
}
