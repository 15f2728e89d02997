// Copyright (c) 2025 Fanline
// Licensed under the MIT License. See LICENSE file in the project root for details.

package endpoint

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		want     string
	}{
		{
			name:     "full url untouched",
			endpoint: "https://fanline.example.com/api",
			want:     "https://fanline.example.com/api",
		},
		{
			name:     "missing path gets default",
			endpoint: "https://fanline.example.com",
			want:     "https://fanline.example.com/api",
		},
		{
			name:     "trailing slash trimmed",
			endpoint: "https://fanline.example.com/api/",
			want:     "https://fanline.example.com/api",
		},
		{
			name:     "root path gets default",
			endpoint: "http://127.0.0.1:8000/",
			want:     "http://127.0.0.1:8000/api",
		},
		{
			name:     "scheme lowercased",
			endpoint: "HTTP://localhost:8000/api",
			want:     "http://localhost:8000/api",
		},
		{
			name:     "custom path kept",
			endpoint: "https://fanline.example.com/admin/api",
			want:     "https://fanline.example.com/admin/api",
		},
		{
			name:     "surrounding whitespace trimmed",
			endpoint: "  http://localhost:8000/api ",
			want:     "http://localhost:8000/api",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.endpoint)
			if err != nil {
				t.Fatalf("Normalize() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Normalize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
	}{
		{name: "empty", endpoint: ""},
		{name: "whitespace only", endpoint: "   "},
		{name: "no scheme", endpoint: "fanline.example.com/api"},
		{name: "wrong scheme", endpoint: "grpc://fanline.example.com"},
		{name: "missing host", endpoint: "http://"},
		{name: "query string", endpoint: "http://localhost:8000/api?key=1"},
		{name: "fragment", endpoint: "http://localhost:8000/api#top"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.endpoint)
			if err == nil {
				t.Fatal("Parse() accepted invalid endpoint")
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Errorf("error %v is not a *ParseError", err)
			}
		})
	}
}
