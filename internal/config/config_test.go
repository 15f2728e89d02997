package config

import (
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if c.Endpoint != "" || c.DiscoveryURL != "" || c.RequestTimeout != 0 {
		t.Errorf("defaults = %+v, want zero value", c)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	saved := Config{
		Endpoint:       "https://fanline.example.com/api",
		DiscoveryURL:   "https://control.fanline.example.com/endpoints.json",
		RequestTimeout: 5,
	}
	if err := Save(saved); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded != saved {
		t.Errorf("Load() = %+v, want %+v", loaded, saved)
	}
}
