package nmea

import "strings"

// payloadFieldIndex is the AIVDM/AIVDO sentence's six-bit payload field,
// per the comma-separated layout skipfilter.go documents.
const payloadFieldIndex = 5

// PayloadField extracts the six-bit ASCII payload field from a full
// AIVDM/AIVDO sentence (the value ParseHeader returns), for handing to
// Decoder.Decode. ok is false if the sentence has too few fields.
func PayloadField(sentence string) (string, bool) {
	fields := strings.Split(sentence, ",")
	if len(fields) <= payloadFieldIndex {
		return "", false
	}
	return fields[payloadFieldIndex], true
}
