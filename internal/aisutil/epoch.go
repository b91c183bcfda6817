// Package aisutil holds small shared utilities used across the ingestion
// pipeline and query server: epoch/civil-date conversion, the monthly
// partition key, and directory globbing by extension.
package aisutil

import (
	"fmt"
	"time"
)

// MinEpoch is 2000-01-01 00:00:00 UTC. No decoder in the pipeline checks
// timestamps against it; the NMEA header parser uses HeaderMinEpoch.
const MinEpoch int64 = 946684800

// Epoch-bound check used by the NMEA header parser differs slightly from
// MinEpoch (946731600, a few hours later) to match the source's own
// constant; keep both named so the
// distinction is visible at call sites instead of silently drifting.
const HeaderMinEpoch int64 = 946731600

// ValidEpoch reports whether t falls within [min, now], inclusive on both
// ends.
func ValidEpoch(t int64, min int64, now int64) bool {
	return t >= min && t <= now
}

// EpochToCivil converts a UNIX epoch-seconds value to its UTC calendar
// date.
func EpochToCivil(epoch int32) time.Time {
	return time.Unix(int64(epoch), 0).UTC()
}

// CivilToEpoch converts a UTC calendar date back to UNIX epoch seconds.
func CivilToEpoch(t time.Time) int32 {
	return int32(t.UTC().Unix())
}

// PartitionKey returns the YYYYMM string for the given epoch, the sole
// dynamic element of a partitioned table's identity.
func PartitionKey(epoch int32) string {
	t := EpochToCivil(epoch)
	return fmt.Sprintf("%04d%02d", t.Year(), t.Month())
}

// PartitionKeysInRange enumerates YYYYMM partition keys covering [start,
// end] by stepping through the range in 21-day increments, plus the end
// month itself — the query server's partition-resolution rule. Duplicate
// keys (short ranges, or ranges that land twice in one month) are
// collapsed while preserving first-seen order.
func PartitionKeysInRange(start, end int32) []string {
	const step = 21 * 24 * time.Hour

	seen := make(map[string]bool)
	var keys []string

	add := func(epoch int32) {
		k := PartitionKey(epoch)
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}

	cur := EpochToCivil(start)
	endT := EpochToCivil(end)
	for !cur.After(endT) {
		add(CivilToEpoch(cur))
		cur = cur.Add(step)
	}
	add(end)
	return keys
}
