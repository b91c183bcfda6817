package csvdecode

import (
	"io"

	"github.com/gocarina/gocsv"

	"github.com/aisdb/aisdb-go/pkg/report"
)

// dumpDynamicRow is the flat, debug-only CSV shape gocsv marshals
// report.Dynamic entries into. It exists only for the round-trip
// exporter — the ingestion path never uses struct tags for decoding.
type dumpDynamicRow struct {
	MMSI      uint32  `csv:"mmsi"`
	Epoch     int32   `csv:"epoch"`
	Longitude float64 `csv:"longitude"`
	Latitude  float64 `csv:"latitude"`
	NavStatus uint8   `csv:"nav_status"`
	Class     uint8   `csv:"class"`
	Source    string  `csv:"source"`
}

// DumpDynamic writes entries to w as CSV, for debugging and diffing
// decoded output against a provider's original export.
func DumpDynamic(w io.Writer, entries []report.Dynamic) error {
	rows := make([]dumpDynamicRow, len(entries))
	for i, e := range entries {
		rows[i] = dumpDynamicRow{
			MMSI:      e.MMSI,
			Epoch:     e.Epoch,
			Longitude: e.Longitude,
			Latitude:  e.Latitude,
			NavStatus: uint8(e.NavStatus),
			Class:     uint8(e.Class),
			Source:    e.Source,
		}
	}
	return gocsv.Marshal(rows, w)
}
