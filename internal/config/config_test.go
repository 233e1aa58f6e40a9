package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureCreatesDefaultFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "treest", "config")

	got, err := Ensure(path)
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if got != path {
		t.Fatalf("Ensure returned %q, want %q", got, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")
	content := "# comment\nprovider=fs\nmouse=false\n\nonlychild=0\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider != "fs" {
		t.Fatalf("Provider = %q, want fs", cfg.Provider)
	}
	if cfg.Mouse {
		t.Fatalf("Mouse should be false")
	}
	if cfg.OnlyChild {
		t.Fatalf("OnlyChild should be false")
	}
	if !cfg.AltScreen || !cfg.Pretty {
		t.Fatalf("unset keys should keep defaults: %+v", cfg)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("Load on missing file should not error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("cfg = %+v, want Default()", cfg)
	}
}

func TestLoadIgnoresUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")
	os.WriteFile(path, []byte("bogus=whatever\npretty=true\n"), 0o600)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Pretty {
		t.Fatalf("known key should still apply despite unknown key present")
	}
}

func TestExpandTilde(t *testing.T) {
	home, _ := os.UserHomeDir()
	got, err := ExpandTilde("~/notes")
	if err != nil {
		t.Fatalf("ExpandTilde: %v", err)
	}
	want := filepath.Join(home, "notes")
	if got != want {
		t.Fatalf("got = %q, want %q", got, want)
	}
}
