//go:build !linux

package connid

import (
	"errors"
	"net"
)

var errNoCookie = errors.New("SO_COOKIE not available on this platform")

func linuxSocketCookie(conn *net.TCPConn) (uint64, error) {
	return 0, errNoCookie
}
