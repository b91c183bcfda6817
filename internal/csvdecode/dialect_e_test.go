package csvdecode

import "testing"

func dialectERow() []string {
	row := make([]string, 132)
	row[colEMMSI] = "432448000"
	row[colEMsgType] = "1"
	row[colETime] = "20211201_220415"
	row[colELatitude] = "14.69666"
	row[colELongitude] = "-34.0796816667"
	return row
}

func TestDecodeRowEDynamicExample(t *testing.T) {
	dyn, stat, isDynamic, ok := DecodeRowE(dialectERow(), "provider-e")
	if !ok {
		t.Fatal("expected row to decode")
	}
	if !isDynamic {
		t.Fatal("expected dynamic classification")
	}
	if stat != nil {
		t.Fatal("static should be nil for a dynamic row")
	}
	if dyn.MMSI != 432448000 {
		t.Fatalf("mmsi = %d, want 432448000", dyn.MMSI)
	}
	if dyn.Epoch != 1638396255 {
		t.Fatalf("epoch = %d, want 1638396255", dyn.Epoch)
	}
}

func TestDecodeRowEDropsUnknownMessageType(t *testing.T) {
	row := dialectERow()
	row[colEMsgType] = "99"
	_, _, _, ok := DecodeRowE(row, "provider-e")
	if ok {
		t.Fatal("unknown message type should be dropped")
	}
}

func TestDecodeRowEMalformedTimestampAcceptsZeroEpoch(t *testing.T) {
	row := dialectERow()
	row[colETime] = "not-a-timestamp"
	dyn, _, _, ok := DecodeRowE(row, "provider-e")
	if !ok {
		t.Fatal("malformed timestamp should not reject the row")
	}
	if dyn.Epoch != 0 {
		t.Fatalf("epoch = %d, want 0", dyn.Epoch)
	}
}

func TestDecodeRowEStaticETARange(t *testing.T) {
	row := dialectERow()
	row[colEMsgType] = "5"
	row[colEETAMonth] = "13" // out of range, should be discarded
	row[colEETADay] = "15"
	_, stat, isDynamic, ok := DecodeRowE(row, "provider-e")
	if !ok || isDynamic {
		t.Fatal("expected static classification")
	}
	if stat.ETAMonth != nil {
		t.Fatal("out-of-range ETA month should be nil")
	}
	if stat.ETADay == nil || *stat.ETADay != 15 {
		t.Fatal("in-range ETA day should be preserved")
	}
}

func TestDecodeRowEMissingMMSISkipped(t *testing.T) {
	row := dialectERow()
	row[colEMMSI] = ""
	_, _, _, ok := DecodeRowE(row, "provider-e")
	if ok {
		t.Fatal("row without mmsi should be skipped")
	}
}
