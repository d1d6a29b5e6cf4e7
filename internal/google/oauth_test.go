package google

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTokenFileForAccount(t *testing.T) {
	cache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cache)

	tests := []struct {
		account string
		want    string
	}{
		{"", "google.token"},
		{"default", "google.token"},
		{"work", "google-work.token"},
	}

	for _, tt := range tests {
		got := tokenFileForAccount(tt.account)
		want := filepath.Join(cache, "workdeck", tt.want)
		if got != want {
			t.Errorf("tokenFileForAccount(%q) = %s, want %s", tt.account, got, want)
		}
	}
}

func TestHasTokenForAccount(t *testing.T) {
	cache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cache)

	if HasTokenForAccount("work") {
		t.Error("expected no token for fresh cache dir")
	}

	dir := filepath.Join(cache, "workdeck")
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "google-work.token"), []byte("access refresh"), 0600); err != nil {
		t.Fatal(err)
	}

	if !HasTokenForAccount("work") {
		t.Error("expected token to be found for account work")
	}
	if HasToken() {
		t.Error("default account should still have no token")
	}
}
