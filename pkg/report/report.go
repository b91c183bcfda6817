// Package report holds the typed vessel reports the ingestion pipeline
// decodes and the batch writer persists. Types here are exported so
// external callers (e.g. a scripting-language distance helper) can depend
// on stable shapes without reaching into internal packages.
package report

// NavStatus is the AIS navigational-status enum (message types 1/2/3).
type NavStatus uint8

// AISClass distinguishes Class A transceivers from Class B and unknown
// sources.
type AISClass uint8

const (
	ClassUnknown AISClass = iota
	ClassA
	ClassB
)

// Dynamic is a position/kinematic report (AIS types 1, 2, 3, 18, 19, 27).
//
// Optional numeric fields are represented as pointers so the pipeline can
// distinguish "absent" from "conventional sentinel" until the persistence
// boundary, per the sentinel-vs-optional design note.
type Dynamic struct {
	MMSI      uint32
	Epoch     int32
	Longitude float64
	Latitude  float64
	COG       *float32 // course over ground, degrees 0..360
	SOG       *float32 // speed over ground, knots
	Heading   *float32 // true heading, degrees
	ROT       *float32 // rate of turn
	Maneuver  *uint8   // special manoeuvre flag
	UTCSecond *uint8   // 0..59
	NavStatus NavStatus
	Class     AISClass
	Source    string
}

// Static is a vessel descriptor report (AIS types 5, 24).
type Static struct {
	MMSI        uint32
	Epoch       int32
	Name        string
	CallSign    string
	IMO         *uint32
	ShipType    *uint8
	CargoType   *uint8
	BowMeters   *int32
	SternMeters *int32
	PortMeters  *int32
	StbdMeters  *int32
	DraughtX10  *int32
	Destination string
	AISVersion  *uint8
	VendorID    *uint16
	ETAMonth    *uint8
	ETADay      *uint8
	ETAHour     *uint8
	ETAMinute   *uint8
	Mothership  *uint32
	Source      string
}

// Persistence sentinels. The pipeline keeps optional fields as nil until
// these conversions run at the batch-writer boundary, so the schema
// compatibility they exist for doesn't leak into decode/classify logic.
const (
	SentinelFloat  = -1
	SentinelInt    = -1
	SentinelUint8  = 0
	SentinelUint16 = 0
)

// PersistFloat32 returns the sentinel-substituted value of an optional
// float32 field for binding into a prepared statement.
func PersistFloat32(v *float32) float32 {
	if v == nil {
		return SentinelFloat
	}
	return *v
}

// PersistInt32 returns the sentinel-substituted value of an optional int32
// field.
func PersistInt32(v *int32) int32 {
	if v == nil {
		return SentinelInt
	}
	return *v
}

// PersistUint8 returns the sentinel-substituted value of an optional uint8
// field.
func PersistUint8(v *uint8) uint8 {
	if v == nil {
		return SentinelUint8
	}
	return *v
}

// PersistUint16 returns the sentinel-substituted value of an optional
// uint16 field.
func PersistUint16(v *uint16) uint16 {
	if v == nil {
		return SentinelUint16
	}
	return *v
}

// PersistUint32 returns the sentinel-substituted value of an optional
// uint32 field (mothership MMSI, IMO number).
func PersistUint32(v *uint32) uint32 {
	if v == nil {
		return 0
	}
	return *v
}
