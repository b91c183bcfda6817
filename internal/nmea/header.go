// Package nmea implements the proprietary tag-block header parser, the
// sentence skip filter, and the decoder adaptor that together turn raw
// NMEA-0183 lines into classified vessel reports (spec §4.8–§4.10).
package nmea

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aisdb/aisdb-go/internal/aiserr"
	"github.com/aisdb/aisdb-go/internal/aisutil"
)

// ParseHeader extracts the payload and epoch timestamp from one textual
// line. Lines carry a tag block before the payload, separated by '\':
// `\<tag1>,<tag2>,...\<payload>`.
//
// Three header encodings are recognized, tried in this order:
//
//  1. A comma-separated tag block containing a "c:<digits>" field: the
//     epoch is those digits, parsed as int32.
//  2. A tag containing "c:" followed by one prefix character and digits:
//     the epoch is the digits after the prefix character.
//  3. A tag beginning with digits followed by a space: the digits,
//     parsed as uint64, are accepted only when they fall within
//     [946731600, now].
//
// A line without a backslash, or whose tag block matches none of the
// three encodings, is rejected with MalformedInput. The payload is
// forwarded with whitespace preserved.
func ParseHeader(line string) (payload string, epoch int32, err error) {
	if !strings.HasPrefix(line, `\`) {
		return "", 0, fmt.Errorf("%w: no leading tag-block delimiter", aiserr.MalformedInput)
	}
	rest := line[1:]
	idx := strings.Index(rest, `\`)
	if idx < 0 {
		return "", 0, fmt.Errorf("%w: no tag-block/payload delimiter", aiserr.MalformedInput)
	}
	tagBlock := rest[:idx]
	payload = rest[idx+1:]

	epoch, err = parseTagBlockEpoch(tagBlock)
	if err != nil {
		return "", 0, err
	}
	return payload, epoch, nil
}

func parseTagBlockEpoch(tagBlock string) (int32, error) {
	fields := strings.Split(tagBlock, ",")

	// Encoding 1: a field "c:<digits>" with nothing but digits after the
	// colon.
	for _, f := range fields {
		if rest, ok := strings.CutPrefix(f, "c:"); ok && allDigits(rest) && rest != "" {
			v, err := strconv.ParseInt(rest, 10, 32)
			if err == nil {
				return int32(v), nil
			}
		}
	}

	// Encoding 2: a field "c:" followed by one non-digit prefix
	// character and then digits; epoch is characters [3..] of the field.
	for _, f := range fields {
		if strings.HasPrefix(f, "c:") && len(f) > 3 && !isDigit(f[2]) && allDigits(f[3:]) {
			v, err := strconv.ParseInt(f[3:], 10, 32)
			if err == nil {
				return int32(v), nil
			}
		}
	}

	// Encoding 3: a field beginning with digits followed by a space,
	// accepted only within the valid epoch range.
	now := time.Now().Unix()
	for _, f := range fields {
		sp := strings.IndexByte(f, ' ')
		if sp <= 0 {
			continue
		}
		digits := f[:sp]
		if !allDigits(digits) {
			continue
		}
		v, err := strconv.ParseUint(digits, 10, 64)
		if err != nil {
			continue
		}
		if aisutil.ValidEpoch(int64(v), aisutil.HeaderMinEpoch, now) {
			return int32(v), nil
		}
	}

	return 0, fmt.Errorf("%w: no recognized c: field in tag block %q", aiserr.MalformedInput, tagBlock)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
