package socket

import (
	"fmt"
	"net"

	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

// Join returns a bound, ready-to-receive socket for addr. If addr's host
// is a multicast address, the socket joins the group on all interfaces
// (interface index 0 for IPv6) and IPv6-only mode is enforced to disable
// IPv4-mapped delivery; the socket itself is bound to the wildcard of the
// correct family on the requested port. If unicast, it binds directly.
//
// Fails with JoinError if the multicast join is rejected — the caller
// should treat that as fatal (a bad group address).
func Join(addr string) (*net.UDPConn, error) {
	host, port, err := hostPort(addr)
	if err != nil {
		return nil, err
	}

	// Unlike Bind's raw bind policy (which only rewrites to the wildcard
	// on Windows), a multicast join always binds the wildcard of the
	// matching family, on every platform: the group membership, not the
	// bound address, is what selects the traffic.
	bindAddr := addr
	if isMulticast(host) {
		wildcard := "0.0.0.0"
		if addrFamily(host) == familyV6 {
			wildcard = "::"
		}
		bindAddr = net.JoinHostPort(wildcard, port)
	}

	conn, err := Bind(bindAddr)
	if err != nil {
		return nil, err
	}

	if !isMulticast(host) {
		return conn, nil
	}

	group := net.ParseIP(host)
	if addrFamily(host) == familyV6 {
		pc := ipv6.NewPacketConn(conn)
		if err := pc.SetMulticastLoopback(true); err != nil {
			// best-effort
			_ = err
		}
		if err := pc.JoinGroup(nil, &net.UDPAddr{IP: group}); err != nil {
			conn.Close()
			return nil, fmt.Errorf("%w: join %s: %v", JoinError, addr, err)
		}
		if err := pc.SetControlMessage(ipv6.FlagDst, false); err != nil {
			_ = err
		}
		// Enforce IPv6-only mode so IPv4-mapped delivery is disabled for
		// this multicast group.
		setV6Only(conn)
		return conn, nil
	}

	pc := ipv4.NewPacketConn(conn)
	if err := pc.JoinGroup(nil, &net.UDPAddr{IP: group}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: join %s: %v", JoinError, addr, err)
	}
	return conn, nil
}
