package query

import (
	"database/sql"
)

// chunkSize is the row-fetch granularity spec §4.15 describes as "a
// server-side cursor yielding rows in 50,000-row chunks." database/sql
// already streams rows lazily from the driver, so this constant governs
// only how many rows dbRowSource buffers ahead at a time.
const chunkSize = 50000

// dbRowSource adapts a *sql.Rows cursor to RowSource, scanning ahead in
// chunkSize-row batches rather than one Scan call per Next.
type dbRowSource struct {
	rows *sql.Rows
	buf  []Row
	pos  int
}

// NewDBRowSource wraps rows, which must already be ordered by (mmsi, time)
// — e.g. the query BuildUnionQuery produces.
func NewDBRowSource(rows *sql.Rows) RowSource {
	return &dbRowSource{rows: rows}
}

func (s *dbRowSource) Next() (Row, bool, error) {
	if s.pos >= len(s.buf) {
		if err := s.fill(); err != nil {
			return Row{}, false, err
		}
		if len(s.buf) == 0 {
			return Row{}, false, nil
		}
	}
	r := s.buf[s.pos]
	s.pos++
	return r, true, nil
}

// fill scans up to chunkSize rows ahead of the caller.
func (s *dbRowSource) fill() error {
	s.buf = s.buf[:0]
	s.pos = 0
	for len(s.buf) < chunkSize {
		if !s.rows.Next() {
			return s.rows.Err()
		}
		var r Row
		if err := s.rows.Scan(&r.MMSI, &r.Time, &r.X, &r.Y, &r.SOG, &r.COG); err != nil {
			return err
		}
		s.buf = append(s.buf, r)
	}
	return nil
}
