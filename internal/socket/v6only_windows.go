//go:build windows

package socket

import "net"

// setV6Only is a no-op stub on Windows builds; Go's net package already
// binds "udp6" sockets IPv6-only there by default.
func setV6Only(conn *net.UDPConn) {}
