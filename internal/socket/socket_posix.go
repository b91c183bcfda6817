//go:build !windows

package socket

import (
	"net"
	"syscall"

	"github.com/aisdb/aisdb-go/internal/aislog"
	"golang.org/x/sys/unix"
)

// rewriteMulticastBind is false on POSIX: the socket binds to the exact
// address requested, including a multicast group address.
const rewriteMulticastBind = false

// setReusePort enables SO_REUSEPORT, available on Linux, Darwin, and the
// BSDs.
func setReusePort(fd int) error {
	return unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)
}

// newListenConfig returns a ListenConfig whose Control callback enables
// address reuse, port reuse where available, and freebind where
// available. Best-effort: a platform that rejects one of these options
// (e.g. SO_REUSEPORT on very old kernels) logs and continues rather than
// failing the bind.
func newListenConfig() net.ListenConfig {
	return net.ListenConfig{
		Control: func(network, address string, c syscall.RawConn) error {
			var ctrlErr error
			err := c.Control(func(fd uintptr) {
				if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
					aislog.Debugf("socket: SO_REUSEADDR unavailable for %s: %v", address, err)
				}
				if err := setReusePort(int(fd)); err != nil {
					aislog.Debugf("socket: SO_REUSEPORT unavailable for %s: %v", address, err)
				}
				if err := setFreebind(int(fd)); err != nil {
					aislog.Debugf("socket: IP_FREEBIND unavailable for %s: %v", address, err)
				}
			})
			if err != nil {
				return err
			}
			return ctrlErr
		},
	}
}
