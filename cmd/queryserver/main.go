// Command queryserver answers track-vector, validrange, meta, and zones
// requests over WebSocket against either backend (spec §4.15).
package main

import (
	"context"
	"flag"
	"log"
	"net/http"

	"github.com/m-lab/go/flagx"
	"github.com/m-lab/go/prometheusx"
	"github.com/m-lab/go/rtx"

	"github.com/aisdb/aisdb-go/internal/config"
	"github.com/aisdb/aisdb-go/internal/query"
	"github.com/aisdb/aisdb-go/internal/storage"
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

var (
	listenAddr = flag.String("listen_addr", ":8081", "HTTP address serving the query WebSocket endpoint")
	sqlitePath = flag.String("sqlite_path", "", "Path to an embedded SQLite database; mutually exclusive with --pg_dbname")
	pgDBName   = flag.String("pg_dbname", "", "PostgreSQL database name; connection parameters come from the environment")
	epsilon    = flag.Float64("epsilon", query.DefaultEpsilon, "Visvalingam-Whyatt simplification threshold")
	precision  = flag.Float64("precision", query.DefaultPrecision, "Coordinate/measurement rounding precision")

	promPort = flag.String("prom", ":9090", "Prometheus metrics export address and port")
)

func main() {
	flag.Parse()
	flagx.ArgsFromEnv(flag.CommandLine)

	if *sqlitePath == "" && *pgDBName == "" {
		log.Fatal("one of --sqlite_path or --pg_dbname is required")
	}

	ctx := context.Background()
	promSrv := prometheusx.MustStartPrometheus(*promPort)
	defer promSrv.Shutdown(ctx)

	var backend storage.Backend
	if *sqlitePath != "" {
		b, err := storage.ConnectEmbedded(*sqlitePath)
		rtx.Must(err, "Could not open embedded storage at %s", *sqlitePath)
		backend = b
	} else {
		pgCfg, err := config.LoadPGConfig()
		rtx.Must(err, "Could not load PostgreSQL configuration")
		b, err := storage.ConnectServer(pgCfg.DSN(*pgDBName))
		rtx.Must(err, "Could not connect to PostgreSQL database %s", *pgDBName)
		backend = b
	}
	defer backend.Close()

	s := &query.Server{
		Backend:   backend,
		Epsilon:   *epsilon,
		Precision: *precision,
	}

	err := http.ListenAndServe(*listenAddr, s.Handler())
	rtx.Must(err, "Query server failed")
}
