//go:build linux

package socket

import "golang.org/x/sys/unix"

// setFreebind enables IP_FREEBIND, letting the socket bind to an address
// that isn't yet configured on any local interface. Linux-only.
func setFreebind(fd int) error {
	return unix.SetsockoptInt(fd, unix.IPPROTO_IP, unix.IP_FREEBIND, 1)
}
