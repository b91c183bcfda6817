// Package connid labels TCP and WebSocket subscriber connections for log
// lines, so a reverse-proxy or query-server operator can tell one
// long-lived client session from another without correlating by address
// alone (two subscribers can share a NAT'd address).
//
// On Linux, the label is derived from the kernel's per-socket SO_COOKIE,
// globally unique for a given boot of a given host. Elsewhere it falls
// back to a process-local counter. Both take the same
// "hostname_starttime_hex" shape, where starttime is the Unix time at
// which this process made its first label.
package connid

import (
	"fmt"
	"net"
	"os"
	"sync/atomic"
	"time"
)

var (
	cachedPrefix string
	fallbackSeq  uint64
)

func bootPrefix() string {
	if cachedPrefix != "" {
		return cachedPrefix
	}
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	// Neither the cookie path nor the fallback reads the host's boot
	// time; both anchor on the time of this process's first label, so
	// uniqueness only needs to hold within one run.
	cachedPrefix = fmt.Sprintf("%s_%d", hostname, time.Now().Unix())
	return cachedPrefix
}

// FromTCPConn returns a label that is unique for the lifetime of this
// process (and, on Linux, for the lifetime of the host's current boot).
func FromTCPConn(conn *net.TCPConn) string {
	if cookie, err := linuxSocketCookie(conn); err == nil {
		return fmt.Sprintf("%s_%X", bootPrefix(), cookie)
	}
	return Next()
}

// Next returns a portable fallback label for connections that aren't
// backed by a raw TCP socket (e.g. an already-upgraded WebSocket), or
// when the Linux cookie syscall is unavailable.
func Next() string {
	n := atomic.AddUint64(&fallbackSeq, 1)
	return fmt.Sprintf("%s_%X", bootPrefix(), n)
}
