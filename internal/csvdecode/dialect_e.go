package csvdecode

import (
	"time"

	"github.com/aisdb/aisdb-go/internal/aislog"
	"github.com/aisdb/aisdb-go/pkg/report"
)

var dialectETimeLayouts = []string{
	"20060102_150405",
	"20060102T150405Z",
}

// parseDialectETime tries each accepted layout in turn. A failure to match
// either is not fatal — the row is still accepted with epoch 0, per spec.
func parseDialectETime(s string) (int32, bool) {
	for _, layout := range dialectETimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return int32(t.Unix()), true
		}
	}
	return 0, false
}

// etaField validates a reconstructed ETA column against its range and
// returns nil when out of bounds rather than rejecting the row.
func etaField(v *uint8, lo, hi uint8) *uint8 {
	if v == nil {
		return nil
	}
	if *v < lo || *v > hi {
		return nil
	}
	return v
}

// DecodeRowE decodes one dialect-E CSV row (spec §4.11, §6 column table).
// The message-type column selects dynamic vs. static vs. drop; a dropped
// row returns ok=false with no error.
func DecodeRowE(row []string, source string) (dyn *report.Dynamic, stat *report.Static, isDynamic bool, ok bool) {
	mmsi, mmsiOK := colUint32(row, colEMMSI)
	if !mmsiOK {
		aislog.Warnf("csv dialect E: row missing or malformed mmsi, skipping")
		return nil, nil, false, false
	}

	msgType := col(row, colEMsgType)
	epoch, timeOK := parseDialectETime(col(row, colETime))
	if !timeOK {
		aislog.Warnf("csv dialect E: malformed timestamp %q for mmsi %d, using epoch 0", col(row, colETime), mmsi)
	}

	switch msgType {
	case "1", "2", "3", "18", "19", "27":
		d := &report.Dynamic{
			MMSI:      mmsi,
			Epoch:     epoch,
			Source:    source,
			ROT:       colFloat32Ptr(row, colEROT),
			SOG:       colFloat32Ptr(row, colESOG),
			COG:       colFloat32Ptr(row, colECOG),
			Heading:   colFloat32Ptr(row, colEHeading),
			UTCSecond: colUint8Ptr(row, colEUTCSecond),
		}
		if lon, okLon := colFloat64(row, colELongitude); okLon {
			d.Longitude = lon
		}
		if lat, okLat := colFloat64(row, colELatitude); okLat {
			d.Latitude = lat
		}
		return d, nil, true, true

	case "5", "24":
		s := &report.Static{
			MMSI:        mmsi,
			Epoch:       epoch,
			Source:      source,
			Name:        col(row, colEName),
			CallSign:    col(row, colECallSign),
			Destination: col(row, colEDestination),
			IMO:         colUint32Ptr(row, colEIMO),
			ShipType:    colUint8Ptr(row, colEShipType),
			BowMeters:   colInt32Ptr(row, colEBow),
			SternMeters: colInt32Ptr(row, colEStern),
			PortMeters:  colInt32Ptr(row, colEPort),
			StbdMeters:  colInt32Ptr(row, colEStbd),
			DraughtX10:  colInt32Ptr(row, colEDraught),
			AISVersion:  colUint8Ptr(row, colEAISVersion),
			Mothership:  colUint32Ptr(row, colEMothership),
			ETAMonth:    etaField(colUint8Ptr(row, colEETAMonth), 1, 12),
			ETADay:      etaField(colUint8Ptr(row, colEETADay), 1, 31),
			ETAHour:     etaField(colUint8Ptr(row, colEETAHour), 0, 23),
			ETAMinute:   etaField(colUint8Ptr(row, colEETAMinute), 0, 59),
		}
		return nil, s, false, true

	default:
		return nil, nil, false, false
	}
}
