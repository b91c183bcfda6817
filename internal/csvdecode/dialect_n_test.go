package csvdecode

import (
	"errors"
	"testing"

	"github.com/aisdb/aisdb-go/pkg/report"
)

func dialectNRow(mmsi, t, class string) []string {
	row := make([]string, 17)
	row[colNMMSI] = mmsi
	row[colNTime] = t
	row[colNLatitude] = "49.2"
	row[colNLongitude] = "-123.1"
	row[colNClass] = class
	return row
}

func TestDialectNFirstOccurrenceEmitsStatic(t *testing.T) {
	d := NewDialectNDecoder()
	dyn, stat, err := d.DecodeRow(dialectNRow("432448000", "2021-12-01T22:04:15", "A"), "noaa")
	if err != nil {
		t.Fatalf("DecodeRow: %v", err)
	}
	if dyn == nil {
		t.Fatal("expected dynamic report")
	}
	if stat == nil {
		t.Fatal("expected static report on first occurrence")
	}
}

func TestDialectNSecondOccurrenceSuppressesStatic(t *testing.T) {
	d := NewDialectNDecoder()
	_, _, err := d.DecodeRow(dialectNRow("432448000", "2021-12-01T22:04:15", "A"), "noaa")
	if err != nil {
		t.Fatalf("DecodeRow: %v", err)
	}
	_, stat, err := d.DecodeRow(dialectNRow("432448000", "2021-12-01T22:05:00", "A"), "noaa")
	if err != nil {
		t.Fatalf("DecodeRow: %v", err)
	}
	if stat != nil {
		t.Fatal("second occurrence of the same mmsi should not re-emit static")
	}
}

func TestDialectNInvalidTimestampAborts(t *testing.T) {
	d := NewDialectNDecoder()
	_, _, err := d.DecodeRow(dialectNRow("432448000", "not-a-date-at-all-xyz", "A"), "noaa")
	if !errors.Is(err, ErrAbortFile) {
		t.Fatalf("expected ErrAbortFile, got %v", err)
	}
}

func TestDialectNInvalidMMSISkipped(t *testing.T) {
	d := NewDialectNDecoder()
	dyn, stat, err := d.DecodeRow(dialectNRow("", "2021-12-01T22:04:15", "A"), "noaa")
	if err != nil {
		t.Fatalf("DecodeRow: %v", err)
	}
	if dyn != nil || stat != nil {
		t.Fatal("row with invalid mmsi should be skipped entirely")
	}
}

func TestDialectNClassLetters(t *testing.T) {
	d := NewDialectNDecoder()
	dyn, _, err := d.DecodeRow(dialectNRow("1", "2021-12-01T22:04:15", "Z"), "noaa")
	if err != nil {
		t.Fatalf("DecodeRow: %v", err)
	}
	if dyn.Class != report.ClassUnknown {
		t.Fatalf("class = %v, want ClassUnknown for letter Z", dyn.Class)
	}
}
