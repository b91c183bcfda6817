// Package receiver implements the live receiver: it binds the NMEA
// decode pipeline to the UDP socket-dispatch fabric, maintains bounded
// per-class batch buffers, and fans decoded position pings out over
// WebSocket (spec §4.14).
package receiver

import (
	"math"

	"github.com/aisdb/aisdb-go/pkg/report"
)

// absentCoordinate is the sentinel spec §4.14/§6 uses for rot/sog/heading
// when the source report carries no value.
const absentCoordinate = -1

// PositionPing is the JSON payload broadcast to the internal multicast
// group for every decoded dynamic report (spec §6).
type PositionPing struct {
	MMSI    uint32  `json:"mmsi"`
	Lon     float64 `json:"lon"`
	Lat     float64 `json:"lat"`
	Time    int64   `json:"time"`
	ROT     float64 `json:"rot"`
	SOG     float64 `json:"sog"`
	Heading float64 `json:"heading"`
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow10(decimals)
	return math.Round(v*scale) / scale
}

// NewPositionPing builds a PositionPing from dyn, rounding coordinates to
// six decimals and rot/sog/heading to three, substituting absentCoordinate
// for missing optional fields. now is the current wall-clock second.
func NewPositionPing(dyn *report.Dynamic, now int64) PositionPing {
	ping := PositionPing{
		MMSI:    dyn.MMSI,
		Lon:     roundTo(dyn.Longitude, 6),
		Lat:     roundTo(dyn.Latitude, 6),
		Time:    now,
		ROT:     absentCoordinate,
		SOG:     absentCoordinate,
		Heading: absentCoordinate,
	}
	if dyn.ROT != nil {
		ping.ROT = roundTo(float64(*dyn.ROT), 3)
	}
	if dyn.SOG != nil {
		ping.SOG = roundTo(float64(*dyn.SOG), 3)
	}
	if dyn.Heading != nil {
		ping.Heading = roundTo(float64(*dyn.Heading), 3)
	}
	return ping
}

// HasCoordinates reports whether dyn carries a non-zero position, per
// spec §4.14's "missing or zero coordinates are dropped" rule.
func HasCoordinates(dyn *report.Dynamic) bool {
	return dyn.Longitude != 0 || dyn.Latitude != 0
}
