// Package csvdecode decodes the two CSV provider dialects spec §4.11
// describes into typed vessel reports, sharing the same batching contract
// the NMEA pipeline uses.
package csvdecode

// Dialect selects which provider's column layout a Decoder reads.
type Dialect int

const (
	// DialectE is the commercial provider's wide per-message-type export
	// (spec §6 column table, message type at index 1).
	DialectE Dialect = iota
	// DialectN is the NOAA-style narrow export (one dynamic row per line,
	// static rows emitted on first occurrence of an mmsi).
	DialectN
)

// column indices, spec §6.
const (
	colEMMSI        = 0
	colEMsgType     = 1
	colETime        = 3
	colEName        = 13
	colECallSign    = 14
	colEIMO         = 15
	colEShipType    = 16
	colEBow         = 17
	colEStern       = 18
	colEPort        = 19
	colEStbd        = 20
	colEDraught     = 21
	colEDestination = 22
	colEAISVersion  = 23
	colEROT         = 25
	colESOG         = 26
	colELongitude   = 28
	colELatitude    = 29
	colECOG         = 30
	colEHeading     = 31
	colEUTCSecond   = 42
	colEETAMonth    = 45
	colEETADay      = 46
	colEETAHour     = 47
	colEETAMinute   = 48
	colEMothership  = 131

	colNMMSI      = 0
	colNTime      = 1
	colNLatitude  = 2
	colNLongitude = 3
	colNSOG       = 4
	colNCOG       = 5
	colNHeading   = 6
	colNName      = 7
	colNIMO       = 8
	colNCallSign  = 9
	colNShipType  = 10
	colNNavStatus = 11
	colNDraught   = 14
	colNCargoType = 15
	colNClass     = 16
)
