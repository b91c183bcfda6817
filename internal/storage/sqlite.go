package storage

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// ConnectEmbedded opens the embedded SQLite backend. dsn supports the
// path, ":memory:", and "file:" URI forms. A single pooled connection is
// kept — SQLite doesn't benefit from more, and the prototype this
// replaces had the same one-connection-pool shape (see DESIGN NOTES
// §9's cyclic-back-reference note: a plain owning handle, not a real
// pool).
func ConnectEmbedded(dsn string) (Backend, error) {
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite %q: %w", dsn, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA temp_store = MEMORY`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting temp_store pragma: %w", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL`); err != nil {
		// best-effort: WAL isn't available on all filesystems (e.g.
		// network mounts), so this isn't fatal.
		_ = err
	}

	if err := checkVersion(db.DB, `SELECT sqlite_version()`); err != nil {
		db.Close()
		return nil, err
	}

	return &sqlxBackend{db: db, dialect: "sqlite"}, nil
}
