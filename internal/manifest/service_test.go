// Copyright (c) 2025 Fanline
// Licensed under the MIT License. See LICENSE file in the project root for details.

package manifest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestGetFetchesAndCaches(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"version":1,"http":{"api":"https://fanline.example.com/api/"}}`))
	}))
	defer srv.Close()
	t.Cleanup(ClearCache)

	m, err := Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got := m.APIEndpoint(); got != "https://fanline.example.com/api" {
		t.Errorf("APIEndpoint = %q, want trailing slash trimmed", got)
	}

	if _, err := Get(context.Background(), srv.URL); err != nil {
		t.Fatalf("second Get failed: %v", err)
	}
	if n := atomic.LoadInt64(&calls); n != 1 {
		t.Errorf("server called %d times, want 1 (second call should hit cache)", n)
	}
}

func TestGetErrors(t *testing.T) {
	t.Cleanup(ClearCache)

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"version":`))
			},
		},
		{
			name: "missing api endpoint",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"version":1,"http":{}}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			if _, err := Get(context.Background(), srv.URL); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestResolver(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"version":1,"http":{"api":"https://api.fanline.dev/api"}}`))
	}))
	defer srv.Close()
	t.Cleanup(ClearCache)

	resolve := Resolver(srv.URL)
	addr, err := resolve()
	if err != nil {
		t.Fatalf("resolver failed: %v", err)
	}
	if addr != "https://api.fanline.dev/api" {
		t.Errorf("resolved %q", addr)
	}
}

func TestResolverFailure(t *testing.T) {
	t.Cleanup(ClearCache)

	resolve := Resolver("http://127.0.0.1:1/manifest.json")
	if _, err := resolve(); err == nil {
		t.Error("expected error for unreachable discovery URL")
	}
}
