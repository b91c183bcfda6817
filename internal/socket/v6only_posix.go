//go:build !windows

package socket

import (
	"net"

	"github.com/aisdb/aisdb-go/internal/aislog"
	"golang.org/x/sys/unix"
)

// setV6Only enforces IPV6_V6ONLY on a UDP6 multicast socket, disabling
// IPv4-mapped delivery for the joined group. Best-effort: logged, not
// fatal, since callers that bound with "udp6" already get this behavior
// on most platforms by default.
func setV6Only(conn *net.UDPConn) {
	raw, err := conn.SyscallConn()
	if err != nil {
		aislog.Debugf("socket: could not get raw conn for IPV6_V6ONLY: %v", err)
		return
	}
	_ = raw.Control(func(fd uintptr) {
		if err := unix.SetsockoptInt(int(fd), unix.IPPROTO_IPV6, unix.IPV6_V6ONLY, 1); err != nil {
			aislog.Debugf("socket: IPV6_V6ONLY unavailable: %v", err)
		}
	})
}
