package csvdecode

import (
	"context"
	"encoding/csv"
	"errors"
	"io"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aisdb/aisdb-go/internal/aislog"
	"github.com/aisdb/aisdb-go/internal/batch"
	"github.com/aisdb/aisdb-go/internal/metrics"
	"github.com/aisdb/aisdb-go/pkg/report"
)

// Sink receives full buffers of decoded reports for persistence. It
// mirrors the batch.Writer methods so callers can swap in a test double.
type Sink interface {
	FlushDynamic(ctx context.Context, entries []report.Dynamic) error
	FlushStatic(ctx context.Context, entries []report.Static) error
}

// ReadFile decodes r as dialect and drives sink with full buffers,
// flushing residual buffers on EOF (spec §4.11's batch-assembly rule).
// source tags every decoded report.
func ReadFile(ctx context.Context, r io.Reader, dialect Dialect, source string, sink Sink) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	dynBuf := batch.NewBuffer[report.Dynamic](batch.DefaultCapacity)
	statBuf := batch.NewBuffer[report.Static](batch.DefaultCapacity)
	nDecoder := NewDialectNDecoder()

	flushDyn := func() error {
		if dynBuf.Len() == 0 {
			return nil
		}
		return sink.FlushDynamic(ctx, dynBuf.Drain())
	}
	flushStat := func() error {
		if statBuf.Len() == 0 {
			return nil
		}
		return sink.FlushStatic(ctx, statBuf.Drain())
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			aislog.Warnf("csvdecode: malformed row, skipping: %v", err)
			metrics.DecodeFailures.With(prometheus.Labels{"stage": "csv"}).Inc()
			continue
		}

		switch dialect {
		case DialectE:
			dyn, stat, isDynamic, ok := DecodeRowE(row, source)
			if !ok {
				metrics.DecodeFailures.With(prometheus.Labels{"stage": "csv_e"}).Inc()
				continue
			}
			if isDynamic {
				if dynBuf.Add(*dyn) {
					if err := flushDyn(); err != nil {
						return err
					}
				}
			} else {
				if statBuf.Add(*stat) {
					if err := flushStat(); err != nil {
						return err
					}
				}
			}

		case DialectN:
			dyn, stat, err := nDecoder.DecodeRow(row, source)
			if errors.Is(err, ErrAbortFile) {
				aislog.Warnf("csvdecode: aborting remainder of file for %s", source)
				goto drain
			}
			if dyn != nil {
				if dynBuf.Add(*dyn) {
					if err := flushDyn(); err != nil {
						return err
					}
				}
			}
			if stat != nil {
				if statBuf.Add(*stat) {
					if err := flushStat(); err != nil {
						return err
					}
				}
			}
		}
	}

drain:
	if err := flushDyn(); err != nil {
		return err
	}
	if err := flushStat(); err != nil {
		return err
	}
	return nil
}
