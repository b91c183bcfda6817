package socket

import (
	"fmt"
	"net"

	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

// maxProbedInterfaces bounds the IPv6 outgoing-interface probe at indices
// 0..32 inclusive, per spec.
const maxProbedInterfaces = 32

// OpenDownstream returns a send-only socket for addr. For IPv4, the
// socket is bound to the wildcard port-0 address, and multicast loopback
// is enabled when addr is a multicast target. For IPv6, it probes
// outgoing interface indices 0..32 in order and returns the first
// interface on which a zero-length send to addr succeeds — the contract
// for portability across hosts with multiple or disabled interfaces.
//
// Fails with NoInterface if no IPv6 interface index succeeds.
func OpenDownstream(addr string) (*net.UDPConn, error) {
	host, _, err := hostPort(addr)
	if err != nil {
		return nil, err
	}

	if addrFamily(host) == familyV6 {
		return openIPv6Downstream(addr)
	}
	return openIPv4Downstream(addr, host)
}

func openIPv4Downstream(addr, host string) (*net.UDPConn, error) {
	dst, err := net.ResolveUDPAddr("udp4", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve %s: %v", BindError, addr, err)
	}

	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero, Port: 0})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", BindError, err)
	}

	if isMulticast(host) {
		pc := ipv4.NewPacketConn(conn)
		if err := pc.SetMulticastLoopback(true); err != nil {
			_ = err // best-effort
		}
	}

	_ = dst // resolved only to validate addr up front
	return conn, nil
}

func openIPv6Downstream(addr string) (*net.UDPConn, error) {
	dst, err := net.ResolveUDPAddr("udp6", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve %s: %v", BindError, addr, err)
	}

	for idx := 0; idx <= maxProbedInterfaces; idx++ {
		conn, err := net.ListenUDP("udp6", &net.UDPAddr{IP: net.IPv6zero, Port: 0})
		if err != nil {
			continue
		}
		pc := ipv6.NewPacketConn(conn)
		ifi, _ := net.InterfaceByIndex(idx)
		if idx != 0 && ifi == nil {
			conn.Close()
			continue
		}
		if err := pc.SetMulticastInterface(ifi); err != nil && idx != 0 {
			conn.Close()
			continue
		}
		_ = pc.SetMulticastLoopback(true)

		// Zero-length probe send: the contract is "first interface index
		// on which this succeeds", not "first configured interface" —
		// some interfaces are administratively down or have no route to
		// dst, and only a real send surfaces that.
		if _, err := conn.WriteToUDP(nil, dst); err != nil {
			conn.Close()
			continue
		}
		return conn, nil
	}
	return nil, fmt.Errorf("%w: %s", NoInterface, addr)
}
