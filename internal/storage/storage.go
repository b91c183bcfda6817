// Package storage abstracts the two backends the batch writer persists
// through: an embedded SQLite engine and a server PostgreSQL engine
// (spec §4.13). Both are reached through the same narrow contract so the
// batch writer never branches on backend kind.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/aisdb/aisdb-go/internal/aiserr"
)

// MinEngineVersionMajor is the floor this package enforces on Connect;
// below it, session pragmas used elsewhere in the pipeline (WAL, in-
// memory temp store) aren't guaranteed available.
const MinEngineVersionMajor = 3

// Backend is the live-connection contract a batch writer or query server
// holds for its lifetime. The query server shares a single Backend across
// the goroutines that handle its clients.
type Backend interface {
	// Begin starts a transaction.
	Begin(ctx context.Context) (Tx, error)
	// Close releases the underlying connection.
	Close() error
	// DB exposes the raw *sqlx.DB for read-only query-server use
	// (partition introspection, UNION SELECT) that doesn't need a
	// write transaction.
	DB() *sqlx.DB
	// Dialect names the SQL dialect this backend speaks, used to pick
	// the right template from internal/sqltemplate.
	Dialect() string
}

// Tx is a single write transaction: idempotent DDL, a cached prepared
// statement, and atomic commit.
type Tx interface {
	// ExecDDL executes SQL expected to be idempotent (CREATE TABLE IF
	// NOT EXISTS and friends).
	ExecDDL(ctx context.Context, query string) error
	// Prepare caches and returns a prepared statement for query.
	Prepare(ctx context.Context, query string) (Stmt, error)
	// Commit commits the transaction atomically.
	Commit() error
	// Rollback aborts the transaction; called when any step fails.
	Rollback() error
}

// Stmt binds positional parameters and executes once.
type Stmt interface {
	BindAndRun(ctx context.Context, args ...any) error
	Close() error
}

type sqlxBackend struct {
	db      *sqlx.DB
	dialect string
}

func (b *sqlxBackend) DB() *sqlx.DB    { return b.db }
func (b *sqlxBackend) Dialect() string { return b.dialect }
func (b *sqlxBackend) Close() error    { return b.db.Close() }

func (b *sqlxBackend) Begin(ctx context.Context) (Tx, error) {
	tx, err := b.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqlxTx{tx: tx, stmts: make(map[string]*sqlx.Stmt)}, nil
}

type sqlxTx struct {
	tx    *sqlx.Tx
	stmts map[string]*sqlx.Stmt
}

func (t *sqlxTx) ExecDDL(ctx context.Context, query string) error {
	_, err := t.tx.ExecContext(ctx, query)
	return err
}

func (t *sqlxTx) Prepare(ctx context.Context, query string) (Stmt, error) {
	if cached, ok := t.stmts[query]; ok {
		return &sqlxStmt{stmt: cached}, nil
	}
	stmt, err := t.tx.PreparexContext(ctx, query)
	if err != nil {
		return nil, err
	}
	t.stmts[query] = stmt
	return &sqlxStmt{stmt: stmt}, nil
}

func (t *sqlxTx) Commit() error   { return t.tx.Commit() }
func (t *sqlxTx) Rollback() error { return t.tx.Rollback() }

type sqlxStmt struct {
	stmt *sqlx.Stmt
}

func (s *sqlxStmt) BindAndRun(ctx context.Context, args ...any) error {
	_, err := s.stmt.ExecContext(ctx, args...)
	return err
}

// Close is a no-op: statements are cached per-transaction and closed
// when the enclosing *sql.Tx is committed or rolled back.
func (s *sqlxStmt) Close() error { return nil }

var leadingVersionDigits = regexp.MustCompile(`^\d+`)

// checkVersion verifies the connected engine reports a version at or
// above MinEngineVersionMajor. query must return a single row with a
// single text column holding the version string (e.g. sqlite's
// "3.43.2" or postgres's "16.1 (Debian 16.1-1)").
func checkVersion(db *sql.DB, query string) error {
	var version string
	if err := db.QueryRow(query).Scan(&version); err != nil {
		return fmt.Errorf("reading engine version: %w", err)
	}

	major, err := parseMajorVersion(version)
	if err != nil {
		return &aiserr.StorageError{Kind: aiserr.StoragePermanent, Err: err}
	}
	if major < MinEngineVersionMajor {
		return &aiserr.StorageError{
			Kind: aiserr.StoragePermanent,
			Err:  fmt.Errorf("engine version %q is below the required major version %d", version, MinEngineVersionMajor),
		}
	}
	return nil
}

func parseMajorVersion(version string) (int, error) {
	digits := leadingVersionDigits.FindString(strings.TrimSpace(version))
	if digits == "" {
		return 0, fmt.Errorf("engine version %q has no leading major version number", version)
	}
	return strconv.Atoi(digits)
}
