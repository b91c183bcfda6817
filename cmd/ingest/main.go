// Command ingest batch-decodes raw NMEA capture files or provider CSV
// exports into monthly-partitioned storage (spec §4.11, §5). Files are
// processed one goroutine per file; no cross-file synchronization is
// required because partition DDL is idempotent and transactions are
// isolated by the backend.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"sync"

	"github.com/m-lab/go/flagx"
	"github.com/m-lab/go/rtx"

	"github.com/aisdb/aisdb-go/internal/aislog"
	"github.com/aisdb/aisdb-go/internal/aisutil"
	"github.com/aisdb/aisdb-go/internal/batch"
	"github.com/aisdb/aisdb-go/internal/config"
	"github.com/aisdb/aisdb-go/internal/csvdecode"
	"github.com/aisdb/aisdb-go/internal/receiver"
	"github.com/aisdb/aisdb-go/internal/storage"
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

var (
	dir     = flag.String("dir", "", "Directory of raw NMEA capture files (.nm4/.nmea/.rx/.txt), one goroutine per file")
	csvPath = flag.String("csv", "", "Single CSV export file to decode")
	dialect = flag.String("dialect", "e", "Provider CSV dialect for --csv: \"e\" or \"n\"")
	source  = flag.String("source", "", "Source tag recorded against every decoded report")

	sqlitePath = flag.String("sqlite_path", "", "Path to an embedded SQLite database; mutually exclusive with --pg_dbname")
	pgDBName   = flag.String("pg_dbname", "", "PostgreSQL database name; connection parameters come from the environment")
)

func openBackend() storage.Backend {
	if *sqlitePath != "" {
		backend, err := storage.ConnectEmbedded(*sqlitePath)
		rtx.Must(err, "Could not open embedded storage at %s", *sqlitePath)
		return backend
	}
	pgCfg, err := config.LoadPGConfig()
	rtx.Must(err, "Could not load PostgreSQL configuration")
	backend, err := storage.ConnectServer(pgCfg.DSN(*pgDBName))
	rtx.Must(err, "Could not connect to PostgreSQL database %s", *pgDBName)
	return backend
}

func main() {
	flag.Parse()
	flagx.ArgsFromEnv(flag.CommandLine)

	if *sqlitePath == "" && *pgDBName == "" {
		log.Fatal("one of --sqlite_path or --pg_dbname is required")
	}
	if *dir == "" && *csvPath == "" {
		log.Fatal("one of --dir or --csv is required")
	}

	ctx := context.Background()

	if *csvPath != "" {
		var d csvdecode.Dialect
		switch *dialect {
		case "e":
			d = csvdecode.DialectE
		case "n":
			d = csvdecode.DialectN
		default:
			log.Fatalf("unknown --dialect %q, want \"e\" or \"n\"", *dialect)
		}
		backend := openBackend()
		defer backend.Close()
		rtx.Must(ingestCSV(ctx, *csvPath, d, backend), "CSV ingestion failed")
		return
	}

	files, err := aisutil.GlobByExtension(*dir)
	rtx.Must(err, "Listing capture files in %s failed", *dir)
	if len(files) == 0 {
		log.Fatalf("no capture files found in %s", *dir)
	}

	var wg sync.WaitGroup
	for _, path := range files {
		path := path
		backend := openBackend()
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer backend.Close()
			if err := ingestNMEAFile(ctx, path, backend); err != nil {
				aislog.Errorf("ingest: %s: %v", path, err)
			}
		}()
	}
	wg.Wait()
}

func ingestCSV(ctx context.Context, path string, d csvdecode.Dialect, backend storage.Backend) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sink := batch.NewWriter(backend)
	return csvdecode.ReadFile(ctx, f, d, *source, sink)
}

func ingestNMEAFile(ctx context.Context, path string, backend storage.Backend) error {
	sink := batch.NewWriter(backend)
	r := &receiver.Receiver{Storage: sink, Source: *source}
	return r.ReplayFile(ctx, path)
}
