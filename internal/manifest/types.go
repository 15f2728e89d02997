// Copyright (c) 2025 Fanline
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package manifest handles dynamic API endpoint discovery. Deployments that
// move the Fanline API behind a control plane publish a small JSON document
// with the current endpoints; the CLI resolves the API endpoint from it
// before every request instead of using a static address.
package manifest

import (
	"strings"
)

// Manifest represents the endpoint document published by the control plane.
type Manifest struct {
	Version int           `json:"version"`
	HTTP    HTTPEndpoints `json:"http"`
}

// HTTPEndpoints contains HTTP API addresses.
type HTTPEndpoints struct {
	// API is the full URL of the server API endpoint,
	// e.g. "https://fanline.example.com/api".
	API string `json:"api"`
}

// APIEndpoint returns the API endpoint URL without a trailing slash.
func (m *Manifest) APIEndpoint() string {
	return strings.TrimRight(m.HTTP.API, "/")
}
