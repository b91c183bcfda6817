// Package socket implements the cross-platform UDP socket-bind layer
// shared by the client, proxy, reverse-proxy, and log-sink server: a
// socket is always created for UDP with its domain inferred from the
// address family, configured with address/port reuse where the platform
// supports it and no read timeout, and bound per the platform's bind
// policy (§4.1 of the spec).
package socket

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/aisdb/aisdb-go/internal/aiserr"
)

// Errors specific to this package, beyond the flat aiserr taxonomy.
var (
	BindError         = errors.New("bind error")
	UnsupportedFamily = errors.New("unsupported address family")
	JoinError         = errors.New("multicast join error")
	NoInterface       = errors.New("no usable outgoing interface")
)

// family is the address family inferred from an address string.
type family int

const (
	familyV4 family = iota
	familyV6
)

func addrFamily(host string) family {
	if strings.Contains(host, ":") {
		return familyV6
	}
	return familyV4
}

func isMulticast(host string) bool {
	ip := net.ParseIP(host)
	return ip != nil && ip.IsMulticast()
}

func hostPort(addr string) (host, port string, err error) {
	host, port, err = net.SplitHostPort(addr)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", aiserr.ConfigError, err)
	}
	return host, port, nil
}

// Bind creates and binds a UDP socket for addr, applying the platform's
// bind policy: on POSIX, bind to the exact address (including multicast
// groups); on Windows, a multicast-group bind is rewritten to the
// wildcard address of the same family on the same port (see
// socket_windows.go). Address/port reuse and freebind are enabled where
// the platform supports it; there is no read timeout.
//
// Fails with BindError on address collision, UnsupportedFamily on
// non-INET families.
func Bind(addr string) (*net.UDPConn, error) {
	host, port, err := hostPort(addr)
	if err != nil {
		return nil, err
	}

	bindHost := host
	if isMulticast(host) && rewriteMulticastBind {
		if addrFamily(host) == familyV6 {
			bindHost = "::"
		} else {
			bindHost = "0.0.0.0"
		}
	}

	network := "udp4"
	if addrFamily(host) == familyV6 {
		network = "udp6"
	}

	lc := newListenConfig()
	pc, err := lc.ListenPacket(context.Background(), network, net.JoinHostPort(bindHost, port))
	if err != nil {
		return nil, fmt.Errorf("%w: bind %s: %v", BindError, addr, err)
	}
	udpConn, ok := pc.(*net.UDPConn)
	if !ok {
		pc.Close()
		return nil, fmt.Errorf("%w: %s is not a UDP socket", UnsupportedFamily, addr)
	}
	return udpConn, nil
}
