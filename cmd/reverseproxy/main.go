// Command reverseproxy bridges UDP and TCP through an internal multicast
// rendezvous address (spec §4.6, §6 CLI surface).
package main

import (
	"context"
	"flag"
	"log"

	"github.com/m-lab/go/flagx"
	"github.com/m-lab/go/prometheusx"
	"github.com/m-lab/go/rtx"

	"github.com/aisdb/aisdb-go/internal/dispatch"
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

var (
	udpListenAddr = flag.String("udp_listen_addr", "", "UDP address to consume and republish to the rendezvous group")
	tcpListenAddr = flag.String("tcp_listen_addr", "", "TCP listen address whose inbound bytes are republished to the rendezvous group")
	multicastAddr = flag.String("multicast_addr", "", "Rendezvous multicast group; defaults to "+dispatch.DefaultRendezvous)
	tcpOutputAddr = flag.String("tcp_output_addr", "", "TCP listen address fanning the rendezvous group out to subscribers")
	udpOutputAddr = flag.String("udp_output_addr", "", "Alias for tcp_listen_addr: TCP listen address republishing to the rendezvous group")

	promPort = flag.String("prom", ":9090", "Prometheus metrics export address and port")
)

func main() {
	flag.Parse()
	flagx.ArgsFromEnv(flag.CommandLine)

	ctx := context.Background()
	promSrv := prometheusx.MustStartPrometheus(*promPort)
	defer promSrv.Shutdown(ctx)

	rp := &dispatch.ReverseProxy{
		Rendezvous:     *multicastAddr,
		UDPListenAddr:  *udpListenAddr,
		TCPFanoutAddr:  *tcpOutputAddr,
		TCPInboundAddr: firstNonEmpty(*tcpListenAddr, *udpOutputAddr),
	}

	if rp.UDPListenAddr == "" && rp.TCPFanoutAddr == "" && rp.TCPInboundAddr == "" {
		log.Fatal("at least one of --udp_listen_addr, --tcp_output_addr, --tcp_listen_addr is required")
	}

	err := rp.Run(ctx)
	rtx.Must(err, "Reverse proxy run failed")
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
