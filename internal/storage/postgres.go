package storage

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// ConnectServer opens the server PostgreSQL backend. TLS is assumed to
// be terminated by an upstream gateway (spec's Non-goals), so dsn is
// expected to carry sslmode=disable.
func ConnectServer(dsn string) (Backend, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)

	if err := checkVersion(db.DB, `SHOW server_version`); err != nil {
		db.Close()
		return nil, err
	}

	return &sqlxBackend{db: db, dialect: "postgres"}, nil
}
