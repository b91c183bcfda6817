// Command server is the UDP log-sink server: it appends received
// datagrams to a file (spec §4.7, §6 CLI surface).
package main

import (
	"context"
	"flag"
	"log"

	"github.com/m-lab/go/flagx"
	"github.com/m-lab/go/rtx"

	"github.com/aisdb/aisdb-go/internal/config"
	"github.com/aisdb/aisdb-go/internal/dispatch"
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

var (
	logPath     = flag.String("path", "", "Log file to append received datagrams to")
	listenAddrs config.RepeatedFlag
	tee         = flag.Bool("tee", false, "Also copy received datagrams to standard output")
)

func main() {
	flag.Var(&listenAddrs, "listen-addr", "Listen HOST:PORT (repeatable)")
	flag.Parse()
	flagx.ArgsFromEnv(flag.CommandLine)

	if *logPath == "" {
		log.Fatal("--path is required")
	}
	if len(listenAddrs) == 0 {
		log.Fatal("at least one --listen-addr is required")
	}

	s := dispatch.NewLogSinkServer(listenAddrs, *logPath, *tee)
	err := s.Run(context.Background())
	rtx.Must(err, "Log-sink server failed")
}
