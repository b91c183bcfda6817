package receiver

import (
	"context"
	"os"
	"testing"

	"github.com/aisdb/aisdb-go/pkg/report"
)

type fakeSink struct {
	dynamicFlushes int
	staticFlushes  int
}

func (f *fakeSink) FlushDynamic(_ context.Context, entries []report.Dynamic) error {
	f.dynamicFlushes++
	return nil
}

func (f *fakeSink) FlushStatic(_ context.Context, entries []report.Static) error {
	f.staticFlushes++
	return nil
}

func TestReplayFileToleratesUndecodableLines(t *testing.T) {
	path := t.TempDir() + "/capture.nm4"
	contents := "\\s:1,c:1638396255\\!AIVDM,1,1,,,garbage,0*00\nnot a sentence at all\n"
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	sink := &fakeSink{}
	r := &Receiver{Storage: sink, Source: "replay-test"}
	if err := r.ReplayFile(context.Background(), path); err != nil {
		t.Fatalf("ReplayFile: %v", err)
	}
	if sink.dynamicFlushes != 0 || sink.staticFlushes != 0 {
		t.Fatalf("expected no flushes for undecodable input, got dyn=%d stat=%d", sink.dynamicFlushes, sink.staticFlushes)
	}
}

func TestReceiverInitAppliesDefaultThresholds(t *testing.T) {
	r := &Receiver{Source: "test"}
	r.init()
	if r.DynamicThreshold != DefaultDynamicThreshold {
		t.Fatalf("DynamicThreshold = %d, want %d", r.DynamicThreshold, DefaultDynamicThreshold)
	}
	if r.StaticThreshold != DefaultStaticThreshold {
		t.Fatalf("StaticThreshold = %d, want %d", r.StaticThreshold, DefaultStaticThreshold)
	}
}
