package query

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/aisdb/aisdb-go/internal/sqltemplate"
)

// VesselMeta is one per-vessel info object the "meta" request streams.
type VesselMeta struct {
	MMSI     uint32 `json:"mmsi"`
	Name     string `json:"name"`
	CallSign string `json:"call_sign"`
}

// QueryMeta returns one VesselMeta per distinct mmsi observed in the
// static partition tables covering keys, first-occurrence wins when the
// same mmsi appears in more than one partition.
func QueryMeta(db *sqlx.DB, dialect sqltemplate.Dialect, keys []string) ([]VesselMeta, error) {
	var parts []string
	var args []any
	for _, key := range keys {
		table := sqltemplate.TableName(sqltemplate.KindStatic, key)
		sub := sq.Select("mmsi", "name", "call_sign").From(table).PlaceholderFormat(sq.Question)
		s, a, err := sub.ToSql()
		if err != nil {
			return nil, err
		}
		parts = append(parts, s)
		args = append(args, a...)
	}
	if len(parts) == 0 {
		return nil, nil
	}
	query := strings.Join(parts, " UNION ALL ")
	if dialect == sqltemplate.DialectPostgres {
		query = renumberDollar(query)
	}

	rows, err := db.Queryx(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seen := make(map[uint32]bool)
	var out []VesselMeta
	for rows.Next() {
		var m VesselMeta
		if err := rows.Scan(&m.MMSI, &m.Name, &m.CallSign); err != nil {
			return nil, err
		}
		if seen[m.MMSI] {
			continue
		}
		seen[m.MMSI] = true
		out = append(out, m)
	}
	return out, rows.Err()
}
