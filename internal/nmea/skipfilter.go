package nmea

import "strings"

// minCommaFields and minPayloadLen implement the workaround for upstream
// decoder crashes on certain submessage types (spec §4.9).
const minCommaFields = 6
const minPayloadLen = 2

// Skip reports whether sentence should be dropped before reaching the
// decoder: it has fewer than 6 comma-separated fields, or it is a
// single-fragment multipart whose payload begins with ';', 'I', or 'J'
// (UTC-date responses and binary application payloads), or its payload is
// two characters or shorter.
func Skip(sentence string) bool {
	fields := strings.Split(sentence, ",")
	if len(fields) < minCommaFields {
		return true
	}

	// NMEA AIVDM/AIVDO layout: 0=talker+type, 1=count, 2=fragment,
	// 3=seq, 4=channel, 5=payload, 6=pad*checksum.
	count, fragment, payload := fields[1], fields[2], fields[5]
	if count == "1" && fragment == "1" && len(payload) > 0 {
		switch payload[0] {
		case ';', 'I', 'J':
			return true
		}
	}

	if len(payload) <= minPayloadLen {
		return true
	}

	return false
}
