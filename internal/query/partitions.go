package query

import (
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/aisdb/aisdb-go/internal/aisutil"
	"github.com/aisdb/aisdb-go/internal/sqltemplate"
)

// ResolvePartitions enumerates the YYYYMM partition keys a [start, end]
// query must scan, per spec §4.15's 21-day-stepping rule.
func ResolvePartitions(start, end int32) []string {
	return aisutil.PartitionKeysInRange(start, end)
}

// BuildUnionQuery builds a UNION ALL across every partition table in
// keys, parameterized by req's time and area bounds, with a trailing
// global ORDER BY mmsi, time (spec §4.15). Each partition contributes
// identical columns: mmsi, time, x (longitude), y (latitude), sog, cog.
func BuildUnionQuery(dialect sqltemplate.Dialect, keys []string, req Request) (string, []any, error) {
	var parts []string
	var args []any

	for _, key := range keys {
		table := sqltemplate.TableName(sqltemplate.KindDynamic, key)
		sub := sq.Select("mmsi", "epoch AS time", "longitude AS x", "latitude AS y", "sog", "cog").
			From(table).
			Where(sq.And{
				sq.GtOrEq{"epoch": req.Start},
				sq.LtOrEq{"epoch": req.End},
				sq.GtOrEq{"longitude": req.Area.X0},
				sq.LtOrEq{"longitude": req.Area.X1},
				sq.GtOrEq{"latitude": req.Area.Y0},
				sq.LtOrEq{"latitude": req.Area.Y1},
			}).
			PlaceholderFormat(sq.Question)

		s, a, err := sub.ToSql()
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, s)
		args = append(args, a...)
	}

	query := strings.Join(parts, " UNION ALL ") + " ORDER BY mmsi, time"
	if dialect == sqltemplate.DialectPostgres {
		query = renumberDollar(query)
	}
	return query, args, nil
}

// renumberDollar rewrites sequential ? placeholders to Postgres-style
// $1, $2, ... after the per-partition subqueries (each independently
// placeholder'd with ?) have been concatenated.
func renumberDollar(query string) string {
	var b strings.Builder
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
