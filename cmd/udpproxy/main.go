// Command udpproxy forwards datagrams from N listen addresses to M
// downstream addresses (spec §4.5, §6 CLI surface).
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"

	"github.com/m-lab/go/flagx"
	"github.com/m-lab/go/rtx"

	"github.com/aisdb/aisdb-go/internal/config"
	"github.com/aisdb/aisdb-go/internal/dispatch"
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

var (
	listenAddrs     config.RepeatedFlag
	downstreamAddrs config.RepeatedFlag
	tee             = flag.Bool("tee", false, "Also copy forwarded datagrams to standard output")
)

func main() {
	flag.Var(&listenAddrs, "udp_listen_addr", "Listen HOST:PORT (repeatable)")
	flag.Var(&downstreamAddrs, "udp_downstream_addr", "Downstream HOST:PORT (repeatable)")
	flag.Var(&downstreamAddrs, "tcp_connect_addr", "Alias for udp_downstream_addr, for CLI compatibility")
	flag.Parse()
	flagx.ArgsFromEnv(flag.CommandLine)

	if len(listenAddrs) == 0 || len(downstreamAddrs) == 0 {
		log.Fatal("at least one --udp_listen_addr and one --udp_downstream_addr are required")
	}

	var teeOut io.Writer
	if *tee {
		teeOut = os.Stdout
	}
	p, err := dispatch.NewProxy(listenAddrs, downstreamAddrs, teeOut)
	rtx.Must(err, "Could not open downstream sockets")
	defer p.Close()

	err = p.Run(context.Background())
	rtx.Must(err, "Proxy run failed")
}
