//go:build windows

package socket

import (
	"net"
	"syscall"

	"golang.org/x/sys/windows"
)

// rewriteMulticastBind is true on Windows: binding directly to a
// multicast group address fails there, so Bind rewrites it to the
// wildcard address of the same family on the same port; group
// membership is still joined separately in Join.
const rewriteMulticastBind = true

// newListenConfig on Windows enables address reuse only; SO_REUSEPORT and
// IP_FREEBIND have no Windows equivalent and are silently unavailable.
func newListenConfig() net.ListenConfig {
	return net.ListenConfig{
		Control: func(network, address string, c syscall.RawConn) error {
			return c.Control(func(fd uintptr) {
				windows.SetsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, windows.SO_REUSEADDR, 1)
			})
		},
	}
}
