package query

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/aisdb/aisdb-go/internal/sqltemplate"
)

// ListPartitionTables introspects the backend's catalog for every table
// of kind, used by "validrange" to find which monthly partitions exist
// without the caller tracking them separately.
func ListPartitionTables(db *sqlx.DB, dialect sqltemplate.Dialect, kind sqltemplate.Kind) ([]string, error) {
	var query string
	switch dialect {
	case sqltemplate.DialectSQLite:
		query = `SELECT name FROM sqlite_master WHERE type='table' AND name LIKE ?`
	case sqltemplate.DialectPostgres:
		query = `SELECT table_name FROM information_schema.tables WHERE table_schema='public' AND table_name LIKE $1`
	default:
		return nil, fmt.Errorf("query: unknown dialect %q", dialect)
	}

	var names []string
	if err := db.Select(&names, query, fmt.Sprintf("ais_%%_%s", kind)); err != nil {
		return nil, err
	}
	return names, nil
}

// ValidRange returns the first and last epoch observed across every
// dynamic partition table (spec §4.15's "validrange" response).
func ValidRange(db *sqlx.DB, dialect sqltemplate.Dialect) (start, end int32, err error) {
	tables, err := ListPartitionTables(db, dialect, sqltemplate.KindDynamic)
	if err != nil {
		return 0, 0, err
	}
	if len(tables) == 0 {
		return 0, 0, nil
	}

	haveRange := false
	for _, table := range tables {
		var lo, hi int32
		query := fmt.Sprintf(`SELECT MIN(epoch), MAX(epoch) FROM %s`, table)
		if err := db.QueryRowx(query).Scan(&lo, &hi); err != nil {
			return 0, 0, err
		}
		if !haveRange {
			start, end = lo, hi
			haveRange = true
			continue
		}
		if lo < start {
			start = lo
		}
		if hi > end {
			end = hi
		}
	}
	return start, end, nil
}
