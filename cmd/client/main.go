// Command client reads a file or standard input and fans each line out
// to one or more UDP downstreams (spec §4.4, §6 CLI surface).
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
	path        = flag.String("path", "-", "File to read, or - for standard input")
	serverAddrs config.RepeatedFlag
	tee         = flag.Bool("tee", false, "Also copy forwarded lines to standard output")
)

func main() {
	flag.Var(&serverAddrs, "server-addr", "Downstream HOST:PORT (repeatable)")
	flag.Parse()
	flagx.ArgsFromEnv(flag.CommandLine)

	if len(serverAddrs) == 0 {
		log.Fatal("at least one --server-addr is required")
	}

	c, err := dispatch.NewClient(serverAddrs, *tee)
	rtx.Must(err, "Could not open downstream sockets")
	defer c.Close()

	err = c.Run(context.Background(), *path)
	rtx.Must(err, "Client run failed")
}
