package dispatch

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/aisdb/aisdb-go/internal/aislog"
	"github.com/aisdb/aisdb-go/internal/connid"
	"github.com/aisdb/aisdb-go/internal/socket"
)

// labelConn returns a connid label for conn, used only in log lines so
// one subscriber's session can be told apart from another's.
func labelConn(conn net.Conn) string {
	if tcpConn, ok := conn.(*net.TCPConn); ok {
		return connid.FromTCPConn(tcpConn)
	}
	return connid.Next()
}

// DefaultRendezvous is the link-local IPv6 multicast group the reverse
// proxy republishes to and subscribes from by default (spec §4.6).
const DefaultRendezvous = "[ff02::1]:9918"

// ReverseProxy bridges UDP and TCP through an internal multicast
// rendezvous address, per spec §4.6. Each direction is independently
// optional; construct with only the listen addresses you want active.
type ReverseProxy struct {
	Rendezvous string

	// UDPListenAddr, when set, is consumed and republished to the
	// rendezvous group (upstream-udp → multicast).
	UDPListenAddr string

	// TCPFanoutAddr, when set, accepts TCP connections and streams the
	// rendezvous group's datagrams to each (multicast → TCP).
	TCPFanoutAddr string

	// TCPInboundAddr, when set, accepts TCP connections and republishes
	// their stream bytes to the rendezvous group (TCP-inbound → multicast).
	TCPInboundAddr string
}

func (rp *ReverseProxy) rendezvous() string {
	if rp.Rendezvous != "" {
		return rp.Rendezvous
	}
	return DefaultRendezvous
}

// Run starts whichever directions are configured and blocks until ctx is
// cancelled.
func (rp *ReverseProxy) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	errs := make(chan error, 3)

	if rp.UDPListenAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := rp.runUDPToMulticast(ctx); err != nil {
				errs <- err
			}
		}()
	}
	if rp.TCPFanoutAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := rp.runMulticastToTCP(ctx); err != nil {
				errs <- err
			}
		}()
	}
	if rp.TCPInboundAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := rp.runTCPInboundToMulticast(ctx); err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	select {
	case err := <-errs:
		return err
	default:
		return nil
	}
}

// runUDPToMulticast consumes UDPListenAddr and republishes every
// datagram to the rendezvous group.
func (rp *ReverseProxy) runUDPToMulticast(ctx context.Context) error {
	in, err := socket.Join(rp.UDPListenAddr)
	if err != nil {
		return fmt.Errorf("joining %s: %w", rp.UDPListenAddr, err)
	}
	defer in.Close()

	out, dst, err := dialRendezvous(rp.rendezvous())
	if err != nil {
		in.Close()
		return err
	}
	defer out.Close()

	go func() {
		<-ctx.Done()
		in.Close()
	}()

	buf := make([]byte, maxLineBuffer)
	for {
		n, _, err := in.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			aislog.Errorf("reverse proxy: receive on %s failed: %v", rp.UDPListenAddr, err)
			continue
		}
		if _, err := out.WriteToUDP(buf[:n], dst); err != nil {
			aislog.Warnf("reverse proxy: republish to rendezvous failed: %v", err)
		}
	}
}

// runMulticastToTCP accepts TCP connections on TCPFanoutAddr; each
// connection gets its own rendezvous-group subscription, writing
// received datagrams to the TCP socket and flushing after each write.
func (rp *ReverseProxy) runMulticastToTCP(ctx context.Context) error {
	ln, err := net.Listen("tcp", rp.TCPFanoutAddr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", rp.TCPFanoutAddr, err)
	}
	defer ln.Close()

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accepting on %s: %w", rp.TCPFanoutAddr, err)
		}
		go rp.serveFanoutConn(ctx, conn)
	}
}

func (rp *ReverseProxy) serveFanoutConn(ctx context.Context, tcpConn net.Conn) {
	defer tcpConn.Close()
	label := labelConn(tcpConn)

	mcConn, err := socket.Join(rp.rendezvous())
	if err != nil {
		aislog.Errorf("reverse proxy: conn %s: joining rendezvous for fanout failed: %v", label, err)
		return
	}
	defer mcConn.Close()

	go func() {
		<-ctx.Done()
		mcConn.Close()
	}()

	aislog.Infof("reverse proxy: conn %s: fanout subscriber attached", label)
	buf := make([]byte, maxLineBuffer)
	for {
		n, _, err := mcConn.ReadFromUDP(buf)
		if err != nil {
			return
		}
		if _, err := tcpConn.Write(buf[:n]); err != nil {
			aislog.Warnf("reverse proxy: conn %s: tcp write failed, closing connection: %v", label, err)
			return
		}
	}
}

// runTCPInboundToMulticast accepts TCP connections on TCPInboundAddr and
// republishes their stream bytes to the rendezvous group.
func (rp *ReverseProxy) runTCPInboundToMulticast(ctx context.Context) error {
	ln, err := net.Listen("tcp", rp.TCPInboundAddr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", rp.TCPInboundAddr, err)
	}
	defer ln.Close()

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accepting on %s: %w", rp.TCPInboundAddr, err)
		}
		go rp.serveInboundConn(conn)
	}
}

func (rp *ReverseProxy) serveInboundConn(tcpConn net.Conn) {
	defer tcpConn.Close()
	label := labelConn(tcpConn)

	out, dst, err := dialRendezvous(rp.rendezvous())
	if err != nil {
		aislog.Errorf("reverse proxy: conn %s: opening rendezvous sender failed: %v", label, err)
		return
	}
	defer out.Close()

	aislog.Infof("reverse proxy: conn %s: inbound producer attached", label)
	buf := make([]byte, maxLineBuffer)
	for {
		n, err := tcpConn.Read(buf)
		if n > 0 {
			if _, werr := out.WriteToUDP(buf[:n], dst); werr != nil {
				aislog.Warnf("reverse proxy: conn %s: republish to rendezvous failed: %v", label, werr)
			}
		}
		if err != nil {
			return
		}
	}
}

func dialRendezvous(rendezvous string) (*net.UDPConn, *net.UDPAddr, error) {
	conn, err := socket.OpenDownstream(rendezvous)
	if err != nil {
		return nil, nil, fmt.Errorf("opening rendezvous sender %s: %w", rendezvous, err)
	}
	network := "udp4"
	if conn.LocalAddr().(*net.UDPAddr).IP.To4() == nil {
		network = "udp6"
	}
	dst, err := net.ResolveUDPAddr(network, rendezvous)
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("resolving rendezvous %s: %w", rendezvous, err)
	}
	return conn, dst, nil
}
