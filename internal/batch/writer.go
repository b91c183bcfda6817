package batch

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aisdb/aisdb-go/internal/aiserr"
	"github.com/aisdb/aisdb-go/internal/aisutil"
	"github.com/aisdb/aisdb-go/internal/metrics"
	"github.com/aisdb/aisdb-go/internal/sqltemplate"
	"github.com/aisdb/aisdb-go/internal/storage"
	"github.com/aisdb/aisdb-go/pkg/report"
)

// Writer flushes full Buffers to a storage.Backend as one idempotent-DDL
// plus bulk-insert transaction per flushed buffer, per spec §4.12.
type Writer struct {
	backend storage.Backend
	dialect sqltemplate.Dialect
}

// NewWriter returns a Writer bound to backend, selecting the SQL dialect
// from backend.Dialect().
func NewWriter(backend storage.Backend) *Writer {
	return &Writer{
		backend: backend,
		dialect: sqltemplate.Dialect(backend.Dialect()),
	}
}

// FlushDynamic writes all of entries in one transaction into a single
// monthly partition. The partition key comes from the epoch of the last
// entry (not wall-clock time) per spec's batching rule, so a batch that
// spans a month boundary is written entirely into the last entry's month.
func (w *Writer) FlushDynamic(ctx context.Context, entries []report.Dynamic) error {
	if len(entries) == 0 {
		return nil
	}
	partitionKey := aisutil.PartitionKey(entries[len(entries)-1].Epoch)
	err := w.flush(ctx, partitionKey, sqltemplate.KindDynamic, func(tx storage.Tx) error {
		stmt, err := prepareInsert(ctx, tx, w.dialect, sqltemplate.KindDynamic, partitionKey)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if err := stmt.BindAndRun(ctx,
				e.MMSI, e.Epoch, e.Longitude, e.Latitude,
				report.PersistFloat32(e.COG), report.PersistFloat32(e.SOG),
				report.PersistFloat32(e.Heading), report.PersistFloat32(e.ROT),
				report.PersistUint8(e.Maneuver), report.PersistUint8(e.UTCSecond),
				e.NavStatus, e.Class, e.Source,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err == nil {
		metrics.BatchesFlushed.With(prometheus.Labels{"kind": "dynamic"}).Inc()
		metrics.RowsPersisted.With(prometheus.Labels{"kind": "dynamic"}).Add(float64(len(entries)))
	}
	return err
}

// FlushStatic is FlushDynamic's static-report counterpart.
func (w *Writer) FlushStatic(ctx context.Context, entries []report.Static) error {
	if len(entries) == 0 {
		return nil
	}
	partitionKey := aisutil.PartitionKey(entries[len(entries)-1].Epoch)
	err := w.flush(ctx, partitionKey, sqltemplate.KindStatic, func(tx storage.Tx) error {
		stmt, err := prepareInsert(ctx, tx, w.dialect, sqltemplate.KindStatic, partitionKey)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if err := stmt.BindAndRun(ctx,
				e.MMSI, e.Epoch, e.Name, e.CallSign, report.PersistUint32(e.IMO),
				report.PersistUint8(e.ShipType), report.PersistUint8(e.CargoType),
				report.PersistInt32(e.BowMeters), report.PersistInt32(e.SternMeters),
				report.PersistInt32(e.PortMeters), report.PersistInt32(e.StbdMeters),
				report.PersistInt32(e.DraughtX10), e.Destination,
				report.PersistUint8(e.AISVersion), report.PersistUint16(e.VendorID),
				report.PersistUint8(e.ETAMonth), report.PersistUint8(e.ETADay),
				report.PersistUint8(e.ETAHour), report.PersistUint8(e.ETAMinute),
				report.PersistUint32(e.Mothership), e.Source,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err == nil {
		metrics.BatchesFlushed.With(prometheus.Labels{"kind": "static"}).Inc()
		metrics.RowsPersisted.With(prometheus.Labels{"kind": "static"}).Add(float64(len(entries)))
	}
	return err
}

func prepareInsert(ctx context.Context, tx storage.Tx, dialect sqltemplate.Dialect, kind sqltemplate.Kind, partitionKey string) (storage.Stmt, error) {
	query, err := sqltemplate.InsertRow(dialect, kind, partitionKey)
	if err != nil {
		return nil, err
	}
	return tx.Prepare(ctx, query)
}

func (w *Writer) flush(ctx context.Context, partitionKey string, kind sqltemplate.Kind, insert func(storage.Tx) error) error {
	ddl, err := sqltemplate.CreateTable(w.dialect, kind, partitionKey)
	if err != nil {
		return &aiserr.StorageError{Kind: aiserr.StoragePermanent, Partition: partitionKey, Err: err}
	}

	tx, err := w.backend.Begin(ctx)
	if err != nil {
		return &aiserr.StorageError{Kind: aiserr.StorageTransient, Partition: partitionKey, Err: err}
	}

	if err := tx.ExecDDL(ctx, ddl); err != nil {
		tx.Rollback()
		return &aiserr.StorageError{Kind: aiserr.StoragePermanent, Partition: partitionKey, Err: err}
	}

	if err := insert(tx); err != nil {
		tx.Rollback()
		return &aiserr.StorageError{Kind: aiserr.StorageTransient, Partition: partitionKey, Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &aiserr.StorageError{Kind: aiserr.StorageTransient, Partition: partitionKey, Err: err}
	}
	return nil
}
