package dispatch

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/aisdb/aisdb-go/internal/aislog"
	"github.com/aisdb/aisdb-go/internal/socket"
)

// Proxy forwards every datagram received on any of its listen addresses
// to every downstream address, one goroutine per listener (spec §4.5).
type Proxy struct {
	listenAddrs []string
	downstreams []downstream
	tee         io.Writer
}

// NewProxy opens send-only sockets for downstreamAddrs; listenAddrs are
// joined lazily by Run (one listener goroutine each).
func NewProxy(listenAddrs, downstreamAddrs []string, tee io.Writer) (*Proxy, error) {
	downstreams, err := openDownstreams(downstreamAddrs)
	if err != nil {
		return nil, err
	}
	return &Proxy{listenAddrs: listenAddrs, downstreams: downstreams, tee: tee}, nil
}

// Close releases the proxy's downstream sockets.
func (p *Proxy) Close() error {
	closeDownstreams(p.downstreams)
	return nil
}

// Run spawns one listener goroutine per listen address and blocks until
// ctx is cancelled or every listener exits. Per spec, listener goroutines
// never terminate normally; a receive error is logged and the listener
// keeps running.
func (p *Proxy) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	for _, addr := range p.listenAddrs {
		addr := addr
		conn, err := socket.Join(addr)
		if err != nil {
			return fmt.Errorf("joining listen address %s: %w", addr, err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer conn.Close()
			go func() {
				<-ctx.Done()
				conn.Close()
			}()

			buf := make([]byte, maxLineBuffer)
			for {
				n, _, err := conn.ReadFromUDP(buf)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					aislog.Errorf("proxy: receive on %s failed: %v", addr, err)
					continue
				}
				sendToAll(p.downstreams, buf[:n])
				if p.tee != nil {
					p.tee.Write(buf[:n])
				}
			}
		}()
	}
	wg.Wait()
	return nil
}
