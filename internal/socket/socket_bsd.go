//go:build !windows && !linux

package socket

// setFreebind is a no-op outside Linux: IP_FREEBIND has no BSD/Darwin
// equivalent, so freebind is simply unavailable there.
func setFreebind(fd int) error {
	return nil
}
