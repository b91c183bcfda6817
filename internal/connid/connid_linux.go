//go:build linux

package connid

import (
	"fmt"
	"net"
	"unsafe"

	"golang.org/x/sys/unix"
)

const soCookie = 57 // SO_COOKIE, not exposed as a named constant by x/sys/unix.

// linuxSocketCookie reads the kernel's per-socket cookie directly via
// getsockopt, mirroring the teacher's original approach: GetsockoptInt
// can't carry a 64-bit value, so the syscall is issued manually.
func linuxSocketCookie(conn *net.TCPConn) (uint64, error) {
	file, err := conn.File()
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var cookie uint64
	cookieLen := uint32(unsafe.Sizeof(cookie))
	_, _, errno := unix.Syscall6(
		unix.SYS_GETSOCKOPT,
		file.Fd(),
		unix.SOL_SOCKET,
		uintptr(soCookie),
		uintptr(unsafe.Pointer(&cookie)),
		uintptr(unsafe.Pointer(&cookieLen)),
		0)
	if errno != 0 {
		return 0, fmt.Errorf("getsockopt SO_COOKIE: %w", errno)
	}
	return cookie, nil
}
