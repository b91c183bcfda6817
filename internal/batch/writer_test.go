package batch

import (
	"context"
	"testing"

	"github.com/aisdb/aisdb-go/internal/storage"
	"github.com/aisdb/aisdb-go/pkg/report"
)

func TestFlushDynamicPersistsRows(t *testing.T) {
	backend, err := storage.ConnectEmbedded(":memory:")
	if err != nil {
		t.Fatalf("ConnectEmbedded: %v", err)
	}
	defer backend.Close()

	w := NewWriter(backend)
	entries := []report.Dynamic{
		{MMSI: 432448000, Epoch: 1638396255, Longitude: -123.1, Latitude: 49.2, NavStatus: 0, Class: report.ClassA, Source: "test"},
		{MMSI: 432448001, Epoch: 1638396256, Longitude: -123.2, Latitude: 49.3, NavStatus: 0, Class: report.ClassB, Source: "test"},
	}
	if err := w.FlushDynamic(context.Background(), entries); err != nil {
		t.Fatalf("FlushDynamic: %v", err)
	}

	var count int
	if err := backend.DB().Get(&count, `SELECT COUNT(*) FROM ais_202112_dynamic`); err != nil {
		t.Fatalf("count query: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
}

func TestFlushStaticPersistsRows(t *testing.T) {
	backend, err := storage.ConnectEmbedded(":memory:")
	if err != nil {
		t.Fatalf("ConnectEmbedded: %v", err)
	}
	defer backend.Close()

	w := NewWriter(backend)
	entries := []report.Static{
		{MMSI: 432448000, Epoch: 1638396255, Name: "TEST VESSEL", Source: "test"},
	}
	if err := w.FlushStatic(context.Background(), entries); err != nil {
		t.Fatalf("FlushStatic: %v", err)
	}

	var count int
	if err := backend.DB().Get(&count, `SELECT COUNT(*) FROM ais_202112_static`); err != nil {
		t.Fatalf("count query: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
}

func TestFlushEmptyIsNoop(t *testing.T) {
	backend, err := storage.ConnectEmbedded(":memory:")
	if err != nil {
		t.Fatalf("ConnectEmbedded: %v", err)
	}
	defer backend.Close()

	w := NewWriter(backend)
	if err := w.FlushDynamic(context.Background(), nil); err != nil {
		t.Fatalf("FlushDynamic(nil): %v", err)
	}
}
