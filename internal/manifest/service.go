// Copyright (c) 2025 Fanline
// Licensed under the MIT License. See LICENSE file in the project root for details.

package manifest

import (
	"context"
	"fmt"
)

// Get returns the manifest for the discovery URL, using the cache when fresh.
func Get(ctx context.Context, discoveryURL string) (*Manifest, error) {
	if m := GetCached(discoveryURL); m != nil {
		return m, nil
	}

	m, err := fetchFromServer(ctx, discoveryURL)
	if err != nil {
		return nil, err
	}

	SetCached(discoveryURL, m)
	return m, nil
}

// Resolver returns a resolver function that looks up the API endpoint from
// the discovery URL on every call. The returned function matches the
// api.Config.GetAddr signature.
func Resolver(discoveryURL string) func() (string, error) {
	return func() (string, error) {
		m, err := Get(context.Background(), discoveryURL)
		if err != nil {
			return "", fmt.Errorf("endpoint discovery failed: %w", err)
		}
		return m.APIEndpoint(), nil
	}
}
