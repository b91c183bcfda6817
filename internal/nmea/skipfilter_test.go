package nmea

import "testing"

func TestSkipFewFields(t *testing.T) {
	if !Skip("!AIVDM,1,1,,abc") {
		t.Fatal("sentence with fewer than 6 fields must be skipped")
	}
}

func TestSkipSingleFragmentSemicolonPayload(t *testing.T) {
	if !Skip("!AIVDM,1,1,,,;abc,0*00") {
		t.Fatal("single-fragment ';' payload must be skipped")
	}
}

func TestSkipShortPayload(t *testing.T) {
	if !Skip("!AIVDM,1,1,,,a,0*00") {
		t.Fatal("payload of length 1 must be skipped")
	}
}

func TestSkipPassesNormalSentence(t *testing.T) {
	if Skip("!AIVDM,1,1,,,144fiV0P00WT:8POChN4?v4281b,0*64") {
		t.Fatal("normal sentence must not be skipped")
	}
}

func TestSkipMultipartNotFiltered(t *testing.T) {
	// Not single-fragment (count=2), so the ';'/'I'/'J' rule doesn't
	// apply even though the payload starts with ';'.
	if Skip("!AIVDM,2,1,3,,;abcdef,0*00") {
		t.Fatal("multipart sentence must not be dropped by the fragment rule")
	}
}
