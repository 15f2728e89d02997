// Copyright (c) 2025 Fanline
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"fanline/cli/internal/api"
	"fanline/cli/internal/config"
	"fanline/cli/internal/keychain"
	"fanline/cli/internal/manifest"
)

// errNotConfigured is returned when no endpoint is known from any source.
var errNotConfigured = errors.New("no server endpoint configured; run 'fanline connect' or set FANLINE_API_URL")

// newAPIClient builds an API client from the saved configuration, the OS
// keychain and the environment. Resolution order for the endpoint:
//
//  1. FANLINE_API_URL environment variable
//  2. discovery URL from the config file (resolved via manifest)
//  3. static endpoint from the config file
//
// The API key comes from FANLINE_API_KEY or, failing that, the keychain.
// An empty key is allowed for servers with auth disabled.
func newAPIClient() (*api.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	apiCfg := api.Config{
		Key: resolveAPIKey(),
	}

	switch {
	case os.Getenv("FANLINE_API_URL") != "":
		apiCfg.Addr = os.Getenv("FANLINE_API_URL")
	case cfg.DiscoveryURL != "":
		apiCfg.GetAddr = manifest.Resolver(cfg.DiscoveryURL)
	case cfg.Endpoint != "":
		apiCfg.Addr = cfg.Endpoint
	default:
		return nil, errNotConfigured
	}

	if cfg.RequestTimeout > 0 {
		apiCfg.HTTPClient = &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 100,
			},
		}
	}

	return api.New(apiCfg), nil
}

// resolveDiscovery fetches the manifest once and returns the API endpoint.
func resolveDiscovery(ctx context.Context, discoveryURL string) (string, error) {
	m, err := manifest.Get(ctx, discoveryURL)
	if err != nil {
		return "", err
	}
	return m.APIEndpoint(), nil
}

// resolveAPIKey returns the API key from the environment or the keychain.
func resolveAPIKey() string {
	if key := os.Getenv("FANLINE_API_KEY"); key != "" {
		return key
	}
	km, err := keychain.GetManager()
	if err != nil {
		return ""
	}
	key, err := km.LoadAPIKey()
	if err != nil {
		return ""
	}
	return key
}
