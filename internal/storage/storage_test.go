package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/aisdb/aisdb-go/internal/aiserr"
)

func TestConnectEmbeddedAndDDLIdempotent(t *testing.T) {
	backend, err := ConnectEmbedded(":memory:")
	if err != nil {
		t.Fatalf("ConnectEmbedded: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		tx, err := backend.Begin(ctx)
		if err != nil {
			t.Fatalf("Begin: %v", err)
		}
		if err := tx.ExecDDL(ctx, `CREATE TABLE IF NOT EXISTS ais_202112_dynamic (mmsi INTEGER, epoch INTEGER)`); err != nil {
			t.Fatalf("ExecDDL (attempt %d): %v", i, err)
		}
		if err := tx.Commit(); err != nil {
			t.Fatalf("Commit: %v", err)
		}
	}
}

func TestTransactionalInsertAndCommit(t *testing.T) {
	backend, err := ConnectEmbedded(":memory:")
	if err != nil {
		t.Fatalf("ConnectEmbedded: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()
	tx, err := backend.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := tx.ExecDDL(ctx, `CREATE TABLE IF NOT EXISTS ais_202112_dynamic (mmsi INTEGER, epoch INTEGER)`); err != nil {
		t.Fatalf("ExecDDL: %v", err)
	}
	stmt, err := tx.Prepare(ctx, `INSERT INTO ais_202112_dynamic (mmsi, epoch) VALUES (?, ?)`)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if err := stmt.BindAndRun(ctx, 432448000, 1638396255); err != nil {
		t.Fatalf("BindAndRun: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	var count int
	if err := backend.DB().Get(&count, `SELECT COUNT(*) FROM ais_202112_dynamic`); err != nil {
		t.Fatalf("count query: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
}

func TestParseMajorVersionParsesLeadingDigits(t *testing.T) {
	tests := []struct {
		version string
		want    int
	}{
		{"3.43.2", 3},
		{"16.1 (Debian 16.1-1)", 16},
		{"9.6.3", 9},
	}
	for _, tt := range tests {
		got, err := parseMajorVersion(tt.version)
		if err != nil {
			t.Fatalf("parseMajorVersion(%q): %v", tt.version, err)
		}
		if got != tt.want {
			t.Fatalf("parseMajorVersion(%q) = %d, want %d", tt.version, got, tt.want)
		}
	}
}

func TestCheckVersionRejectsBelowMinimum(t *testing.T) {
	backend, err := ConnectEmbedded(":memory:")
	if err != nil {
		t.Fatalf("ConnectEmbedded: %v", err)
	}
	defer backend.Close()

	err = checkVersion(backend.DB().DB, `SELECT '2.8.0'`)
	if err == nil {
		t.Fatal("expected an error for an engine version below the minimum major version")
	}
	var storageErr *aiserr.StorageError
	if !errors.As(err, &storageErr) || storageErr.Kind != aiserr.StoragePermanent {
		t.Fatalf("expected a StoragePermanent StorageError, got %v", err)
	}
}
