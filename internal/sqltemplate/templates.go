// Package sqltemplate holds the DDL and DML text used by the batch writer
// and query server, keyed by dialect and table kind (spec Design Notes
// §9's "global static SQL directory"). Templates are opaque strings with
// %s partition-suffix substitution. The batch writer takes all of its SQL
// from here; the query package builds its SELECT statements itself.
package sqltemplate

import "fmt"

// Kind names a table role within a monthly partition.
type Kind string

const (
	KindDynamic Kind = "dynamic"
	KindStatic  Kind = "static"
)

// Dialect names a storage.Backend.Dialect() value.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

var createDynamic = map[Dialect]string{
	DialectSQLite: `CREATE TABLE IF NOT EXISTS ais_%s_dynamic (
		mmsi INTEGER NOT NULL,
		epoch INTEGER NOT NULL,
		longitude REAL NOT NULL,
		latitude REAL NOT NULL,
		cog REAL,
		sog REAL,
		heading REAL,
		rot REAL,
		maneuver INTEGER,
		utc_second INTEGER,
		nav_status INTEGER NOT NULL,
		class INTEGER NOT NULL,
		source TEXT NOT NULL
	)`,
	DialectPostgres: `CREATE TABLE IF NOT EXISTS ais_%s_dynamic (
		mmsi INTEGER NOT NULL,
		epoch BIGINT NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		latitude DOUBLE PRECISION NOT NULL,
		cog REAL,
		sog REAL,
		heading REAL,
		rot REAL,
		maneuver SMALLINT,
		utc_second SMALLINT,
		nav_status SMALLINT NOT NULL,
		class SMALLINT NOT NULL,
		source TEXT NOT NULL
	)`,
}

var createStatic = map[Dialect]string{
	DialectSQLite: `CREATE TABLE IF NOT EXISTS ais_%s_static (
		mmsi INTEGER NOT NULL,
		epoch INTEGER NOT NULL,
		name TEXT,
		call_sign TEXT,
		imo INTEGER,
		ship_type INTEGER,
		cargo_type INTEGER,
		bow_meters REAL,
		stern_meters REAL,
		port_meters REAL,
		stbd_meters REAL,
		draught_x10 INTEGER,
		destination TEXT,
		ais_version INTEGER,
		vendor_id TEXT,
		eta_month INTEGER,
		eta_day INTEGER,
		eta_hour INTEGER,
		eta_minute INTEGER,
		mothership_mmsi INTEGER,
		source TEXT NOT NULL
	)`,
	DialectPostgres: `CREATE TABLE IF NOT EXISTS ais_%s_static (
		mmsi INTEGER NOT NULL,
		epoch BIGINT NOT NULL,
		name TEXT,
		call_sign TEXT,
		imo INTEGER,
		ship_type SMALLINT,
		cargo_type SMALLINT,
		bow_meters REAL,
		stern_meters REAL,
		port_meters REAL,
		stbd_meters REAL,
		draught_x10 SMALLINT,
		destination TEXT,
		ais_version SMALLINT,
		vendor_id TEXT,
		eta_month SMALLINT,
		eta_day SMALLINT,
		eta_hour SMALLINT,
		eta_minute SMALLINT,
		mothership_mmsi INTEGER,
		source TEXT NOT NULL
	)`,
}

var insertDynamic = `INSERT INTO ais_%s_dynamic
	(mmsi, epoch, longitude, latitude, cog, sog, heading, rot, maneuver, utc_second, nav_status, class, source)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

var insertStatic = `INSERT INTO ais_%s_static
	(mmsi, epoch, name, call_sign, imo, ship_type, cargo_type, bow_meters, stern_meters, port_meters, stbd_meters,
	 draught_x10, destination, ais_version, vendor_id, eta_month, eta_day, eta_hour, eta_minute, mothership_mmsi, source)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// postgresPositional rewrites ? placeholders to Postgres-style $1, $2, ...
func postgresPositional(query string) string {
	out := make([]byte, 0, len(query)+16)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			out = append(out, []byte(fmt.Sprintf("$%d", n))...)
			continue
		}
		out = append(out, query[i])
	}
	return string(out)
}

// CreateTable returns the idempotent DDL for partitionKey's table of kind,
// in dialect's syntax.
func CreateTable(dialect Dialect, kind Kind, partitionKey string) (string, error) {
	var table map[Dialect]string
	switch kind {
	case KindDynamic:
		table = createDynamic
	case KindStatic:
		table = createStatic
	default:
		return "", fmt.Errorf("sqltemplate: unknown kind %q", kind)
	}
	tmpl, ok := table[dialect]
	if !ok {
		return "", fmt.Errorf("sqltemplate: unknown dialect %q", dialect)
	}
	return fmt.Sprintf(tmpl, partitionKey), nil
}

// InsertRow returns the bulk-insert DML for partitionKey's table of kind,
// in dialect's placeholder syntax.
func InsertRow(dialect Dialect, kind Kind, partitionKey string) (string, error) {
	var tmpl string
	switch kind {
	case KindDynamic:
		tmpl = insertDynamic
	case KindStatic:
		tmpl = insertStatic
	default:
		return "", fmt.Errorf("sqltemplate: unknown kind %q", kind)
	}
	query := fmt.Sprintf(tmpl, partitionKey)
	if dialect == DialectPostgres {
		query = postgresPositional(query)
	}
	return query, nil
}

// TableName returns the bare table name for kind/partitionKey, used when
// building UNION queries over monthly partitions.
func TableName(kind Kind, partitionKey string) string {
	return fmt.Sprintf("ais_%s_%s", partitionKey, kind)
}
