package csvdecode

import (
	"errors"

	"github.com/araddon/dateparse"

	"github.com/aisdb/aisdb-go/internal/aislog"
	"github.com/aisdb/aisdb-go/pkg/report"
)

// ErrAbortFile signals that dialect N hit an invalid timestamp and the
// rest of the file should be abandoned. Per spec §4.11 this is not an
// ingestion failure — the caller treats it as a clean end of file.
var ErrAbortFile = errors.New("csvdecode: aborting file on invalid timestamp")

// DialectNDecoder tracks which MMSIs have already produced a static report
// within the current file, since dialect N emits at most one static row
// per vessel (first-seen rule, spec's invariant).
type DialectNDecoder struct {
	seen map[uint32]bool
}

// NewDialectNDecoder returns a decoder with an empty per-file seen set.
func NewDialectNDecoder() *DialectNDecoder {
	return &DialectNDecoder{seen: make(map[uint32]bool)}
}

func classFromLetter(s string) report.AISClass {
	switch s {
	case "A":
		return report.ClassA
	case "B":
		return report.ClassB
	default:
		return report.ClassUnknown
	}
}

// DecodeRow decodes one dialect-N row. It always returns a dynamic report
// on success; stat is non-nil only the first time mmsi is seen. Returning
// ErrAbortFile means the caller must stop reading further rows from this
// file but should not treat ingestion as having failed.
func (d *DialectNDecoder) DecodeRow(row []string, source string) (dyn *report.Dynamic, stat *report.Static, err error) {
	mmsi, ok := colUint32(row, colNMMSI)
	if !ok {
		aislog.Warnf("csv dialect N: row missing or malformed mmsi, skipping")
		return nil, nil, nil
	}

	t, parseErr := dateparse.ParseAny(col(row, colNTime))
	if parseErr != nil {
		aislog.Warnf("csv dialect N: invalid timestamp %q, aborting file", col(row, colNTime))
		return nil, nil, ErrAbortFile
	}
	epoch := int32(t.Unix())

	class := classFromLetter(col(row, colNClass))

	dyn = &report.Dynamic{
		MMSI:    mmsi,
		Epoch:   epoch,
		Source:  source,
		SOG:     colFloat32Ptr(row, colNSOG),
		COG:     colFloat32Ptr(row, colNCOG),
		Heading: colFloat32Ptr(row, colNHeading),
		Class:   class,
		NavStatus: report.NavStatus(func() uint8 {
			if v := colUint8Ptr(row, colNNavStatus); v != nil {
				return *v
			}
			return 0
		}()),
	}
	if lon, okLon := colFloat64(row, colNLongitude); okLon {
		dyn.Longitude = lon
	}
	if lat, okLat := colFloat64(row, colNLatitude); okLat {
		dyn.Latitude = lat
	}

	if !d.seen[mmsi] {
		d.seen[mmsi] = true
		stat = &report.Static{
			MMSI:       mmsi,
			Epoch:      epoch,
			Source:     source,
			Name:       col(row, colNName),
			CallSign:   col(row, colNCallSign),
			IMO:        colUint32Ptr(row, colNIMO),
			ShipType:   colUint8Ptr(row, colNShipType),
			DraughtX10: colInt32Ptr(row, colNDraught),
			CargoType:  colUint8Ptr(row, colNCargoType),
		}
	}

	return dyn, stat, nil
}
