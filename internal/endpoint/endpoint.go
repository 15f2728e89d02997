// Copyright (c) 2025 Fanline
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package endpoint validates and normalizes Fanline API endpoint URLs.
package endpoint

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultPath is appended when an endpoint URL carries no path.
const DefaultPath = "/api"

// Info contains the parsed pieces of an endpoint URL.
type Info struct {
	Scheme   string
	Host     string
	Path     string
	Original string
}

// String returns the normalized endpoint URL.
func (i *Info) String() string {
	return i.Scheme + "://" + i.Host + i.Path
}

// ParseError represents an error that occurred during endpoint parsing.
type ParseError struct {
	Endpoint string
	Reason   string
	Hint     string
}

func (e *ParseError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("invalid endpoint: %s\nHint: %s", e.Reason, e.Hint)
	}
	return fmt.Sprintf("invalid endpoint: %s", e.Reason)
}

// NewParseError creates a new ParseError.
func NewParseError(endpoint, reason, hint string) *ParseError {
	return &ParseError{
		Endpoint: endpoint,
		Reason:   reason,
		Hint:     hint,
	}
}

// Parse validates an endpoint URL and returns its normalized form: scheme
// lower-cased, trailing slash removed, missing path completed with
// DefaultPath.
func Parse(endpoint string) (*Info, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, NewParseError(endpoint, "empty endpoint", "provide a URL like https://fanline.example.com/api")
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, NewParseError(endpoint, "not a valid URL", "provide a URL like https://fanline.example.com/api")
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, NewParseError(endpoint, "missing or invalid scheme", "use http:// or https://")
	}
	if u.Host == "" {
		return nil, NewParseError(endpoint, "missing host", "provide a URL like https://fanline.example.com/api")
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return nil, NewParseError(endpoint, "query or fragment not allowed", "the endpoint is the bare API URL")
	}

	path := strings.TrimRight(u.Path, "/")
	if path == "" {
		path = DefaultPath
	}

	return &Info{
		Scheme:   scheme,
		Host:     u.Host,
		Path:     path,
		Original: endpoint,
	}, nil
}

// Normalize is a convenience around Parse that returns the normalized URL
// string.
func Normalize(endpoint string) (string, error) {
	info, err := Parse(endpoint)
	if err != nil {
		return "", err
	}
	return info.String(), nil
}
