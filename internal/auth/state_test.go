// Copyright (c) 2025 Fanline
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"runtime"
	"testing"
)

func TestStateRoundTrip(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("uses the OS keychain on this platform")
	}
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	if st, err := Load(); err != nil || st.LoggedIn {
		t.Fatalf("initial Load = %+v, %v, want zero state", st, err)
	}

	want := State{LoggedIn: true, Endpoint: "https://fanline.example.com/api"}
	if err := Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != want {
		t.Errorf("Load = %+v, want %+v", got, want)
	}

	if err := Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if st, _ := Load(); st.LoggedIn {
		t.Error("state still present after Clear")
	}

	// Clearing twice must not fail
	if err := Clear(); err != nil {
		t.Errorf("second Clear failed: %v", err)
	}
}
