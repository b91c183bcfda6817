package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPGConfigTrimsPassfileNewline(t *testing.T) {
	dir := t.TempDir()
	passfile := filepath.Join(dir, "pgpass")
	if err := os.WriteFile(passfile, []byte("s3cret\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PGHOST", "db.example.com")
	t.Setenv("PGPORT", "5433")
	t.Setenv("PGUSER", "aisdb")
	t.Setenv("PGPASSFILE", passfile)
	t.Setenv("AISDBHOSTALLOW", "10.0.0.0/8")
	t.Setenv("AISDBPORT", "9920")

	cfg, err := LoadPGConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Password != "s3cret" {
		t.Fatalf("Password = %q, want %q", cfg.Password, "s3cret")
	}
	if cfg.Host != "db.example.com" || cfg.Port != 5433 || cfg.User != "aisdb" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.DBPort != 9920 {
		t.Fatalf("DBPort = %d, want 9920", cfg.DBPort)
	}
}

func TestRepeatedFlag(t *testing.T) {
	var r RepeatedFlag
	if err := r.Set("a:1"); err != nil {
		t.Fatal(err)
	}
	if err := r.Set("b:2"); err != nil {
		t.Fatal(err)
	}
	if len(r) != 2 || r[0] != "a:1" || r[1] != "b:2" {
		t.Fatalf("unexpected: %v", r)
	}
}
