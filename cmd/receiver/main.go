// Command receiver consumes AIVDM sentences from a UDP listen address,
// decodes them, batches them into storage, and republishes decoded
// position pings over an internal multicast group and a WebSocket
// fan-out server (spec §4.14).
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/m-lab/go/flagx"
	"github.com/m-lab/go/prometheusx"
	"github.com/m-lab/go/rtx"

	"github.com/aisdb/aisdb-go/internal/batch"
	"github.com/aisdb/aisdb-go/internal/config"
	"github.com/aisdb/aisdb-go/internal/receiver"
	"github.com/aisdb/aisdb-go/internal/storage"
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

var (
	listenAddr     = flag.String("listen_addr", "", "UDP address to receive AIVDM sentences on")
	multicastAddr  = flag.String("multicast_addr", "", "Internal multicast group to publish decoded position pings to")
	rawRebroadcast = flag.String("raw_rebroadcast_addr", "", "Optional: also republish original datagram bytes here")
	wsAddr         = flag.String("ws_addr", ":8080", "HTTP address serving the WebSocket position-ping fan-out")
	source         = flag.String("source", "", "Source tag recorded against every decoded report")
	replayPath     = flag.String("replay", "", "Replay a recorded line-oriented file instead of listening on a socket")
	tee            = flag.Bool("tee", false, "Also copy received datagrams to standard output")

	sqlitePath = flag.String("sqlite_path", "", "Path to an embedded SQLite database; mutually exclusive with --pg_dbname")
	pgDBName   = flag.String("pg_dbname", "", "PostgreSQL database name; connection parameters come from the environment")

	promPort = flag.String("prom", ":9090", "Prometheus metrics export address and port")
)

func main() {
	flag.Parse()
	flagx.ArgsFromEnv(flag.CommandLine)

	ctx := context.Background()
	promSrv := prometheusx.MustStartPrometheus(*promPort)
	defer promSrv.Shutdown(ctx)

	var sink receiver.Sink
	if *sqlitePath != "" {
		backend, err := storage.ConnectEmbedded(*sqlitePath)
		rtx.Must(err, "Could not open embedded storage at %s", *sqlitePath)
		defer backend.Close()
		sink = batch.NewWriter(backend)
	} else if *pgDBName != "" {
		pgCfg, err := config.LoadPGConfig()
		rtx.Must(err, "Could not load PostgreSQL configuration")
		backend, err := storage.ConnectServer(pgCfg.DSN(*pgDBName))
		rtx.Must(err, "Could not connect to PostgreSQL database %s", *pgDBName)
		defer backend.Close()
		sink = batch.NewWriter(backend)
	}

	r := &receiver.Receiver{
		ListenAddr:     *listenAddr,
		MulticastAddr:  *multicastAddr,
		RawRebroadcast: *rawRebroadcast,
		Storage:        sink,
		Source:         *source,
	}
	if *tee {
		r.Tee = os.Stdout
	}

	if *multicastAddr != "" {
		fanout := &receiver.FanoutServer{MulticastAddr: *multicastAddr}
		go func() {
			err := http.ListenAndServe(*wsAddr, fanout.Handler())
			rtx.Must(err, "WebSocket fan-out server failed")
		}()
	}

	if *replayPath != "" {
		rtx.Must(r.ReplayFile(ctx, *replayPath), "Replay failed")
		return
	}

	if *listenAddr == "" {
		log.Fatal("--listen_addr or --replay is required")
	}
	rtx.Must(r.Run(ctx), "Receiver run failed")
}
