package aisutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aisdb/aisdb-go/internal/aiserr"
)

func TestGlobByExtension(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.NMEA", "b.nm4", "c.rx", "d.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	files, err := GlobByExtension(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 4 {
		t.Fatalf("got %d files, want 4", len(files))
	}
}

func TestGlobByExtensionRejectsUnknown(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.csv"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := GlobByExtension(dir)
	if err == nil {
		t.Fatal("expected UnknownExtension error")
	}
	if !errors.Is(err, aiserr.UnknownExtension) {
		t.Fatalf("expected UnknownExtension, got %v", err)
	}
}
