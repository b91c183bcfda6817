package nmea

import "testing"

func TestPayloadFieldExtractsSixthField(t *testing.T) {
	got, ok := PayloadField("!AIVDM,1,1,,,144fiV0P00WT:8POChN4?v4281b,0*64")
	if !ok {
		t.Fatal("expected ok")
	}
	if got != "144fiV0P00WT:8POChN4?v4281b" {
		t.Fatalf("payload = %q", got)
	}
}

func TestPayloadFieldRejectsShortSentence(t *testing.T) {
	_, ok := PayloadField("!AIVDM,1,1")
	if ok {
		t.Fatal("expected rejection of too-short sentence")
	}
}
