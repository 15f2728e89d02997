// Copyright (c) 2025 Fanline
// Licensed under the MIT License. See LICENSE file in the project root for details.

package manifest

import (
	"sync"
	"time"
)

const cacheTTL = 5 * time.Minute

type cacheEntry struct {
	manifest  *Manifest
	fetchedAt time.Time
}

var (
	cacheMu sync.RWMutex
	cache   = map[string]cacheEntry{}
)

// GetCached returns the cached manifest for the discovery URL, or nil if
// absent or expired.
func GetCached(discoveryURL string) *Manifest {
	cacheMu.RLock()
	defer cacheMu.RUnlock()

	entry, ok := cache[discoveryURL]
	if !ok || time.Since(entry.fetchedAt) > cacheTTL {
		return nil
	}
	return entry.manifest
}

// SetCached stores the manifest for the discovery URL.
func SetCached(discoveryURL string, m *Manifest) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cache[discoveryURL] = cacheEntry{manifest: m, fetchedAt: time.Now()}
}

// ClearCache drops all cached manifests.
func ClearCache() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cache = map[string]cacheEntry{}
}
