package aisutil

import (
	"testing"
	"time"
)

func TestValidEpochBoundary(t *testing.T) {
	now := int64(2000000000)
	if !ValidEpoch(HeaderMinEpoch, HeaderMinEpoch, now) {
		t.Fatal("epoch exactly at HeaderMinEpoch must be accepted")
	}
	if ValidEpoch(HeaderMinEpoch-1, HeaderMinEpoch, now) {
		t.Fatal("epoch one second earlier must be rejected")
	}
}

func TestEpochCivilRoundTrip(t *testing.T) {
	epoch := int32(1638396255)
	civil := EpochToCivil(epoch)
	if got := CivilToEpoch(civil); got != epoch {
		t.Fatalf("round trip = %d, want %d", got, epoch)
	}
}

func TestPartitionKey(t *testing.T) {
	if got := PartitionKey(1638396255); got != "202112" {
		t.Fatalf("PartitionKey = %s, want 202112", got)
	}
}

func TestPartitionKeysInRangeSingleMonth(t *testing.T) {
	start := CivilToEpoch(time.Date(2021, 12, 1, 0, 0, 0, 0, time.UTC))
	end := CivilToEpoch(time.Date(2021, 12, 10, 0, 0, 0, 0, time.UTC))
	keys := PartitionKeysInRange(start, end)
	if len(keys) != 1 || keys[0] != "202112" {
		t.Fatalf("keys = %v, want single 202112", keys)
	}
}
