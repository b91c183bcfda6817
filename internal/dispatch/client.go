// Package dispatch implements the UDP socket-dispatch fabric: the
// file/stream client, the N:M proxy, the UDP/TCP reverse proxy, and the
// log-sink server (spec §4.4–§4.7), all built on internal/socket's
// cross-platform bind layer.
package dispatch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/aisdb/aisdb-go/internal/aislog"
	"github.com/aisdb/aisdb-go/internal/socket"
)

// maxLineBuffer is the 32 KiB chunk size spec §4.4/§4.5 reads into.
const maxLineBuffer = 32 * 1024

type downstream struct {
	conn *net.UDPConn
	dst  *net.UDPAddr
}

func openDownstreams(addrs []string) ([]downstream, error) {
	out := make([]downstream, 0, len(addrs))
	for _, addr := range addrs {
		conn, err := socket.OpenDownstream(addr)
		if err != nil {
			for _, d := range out {
				d.conn.Close()
			}
			return nil, fmt.Errorf("opening downstream %s: %w", addr, err)
		}
		network := "udp4"
		if conn.LocalAddr().(*net.UDPAddr).IP.To4() == nil {
			network = "udp6"
		}
		dst, err := net.ResolveUDPAddr(network, addr)
		if err != nil {
			conn.Close()
			for _, d := range out {
				d.conn.Close()
			}
			return nil, fmt.Errorf("resolving downstream %s: %w", addr, err)
		}
		out = append(out, downstream{conn: conn, dst: dst})
	}
	return out, nil
}

func closeDownstreams(downstreams []downstream) {
	for _, d := range downstreams {
		d.conn.Close()
	}
}

// sendToAll forwards chunk to every downstream, logging (not aborting on)
// a per-downstream send failure — spec §4.4: "fatal for that downstream
// but does not interrupt the other downstreams in the same iteration."
func sendToAll(downstreams []downstream, chunk []byte) {
	for _, d := range downstreams {
		if _, err := d.conn.WriteToUDP(chunk, d.dst); err != nil {
			aislog.Warnf("dispatch: send to %s failed: %v", d.dst, err)
		}
	}
}

// Client reads a file, or standard input when path is "-", and fans each
// non-blank chunk out to every configured downstream, per spec §4.4.
type Client struct {
	downstreams []downstream
	tee         bool
}

// NewClient opens a send-only socket for every address in downstreamAddrs.
func NewClient(downstreamAddrs []string, teeStdout bool) (*Client, error) {
	downstreams, err := openDownstreams(downstreamAddrs)
	if err != nil {
		return nil, err
	}
	return &Client{downstreams: downstreams, tee: teeStdout}, nil
}

// Close releases the client's downstream sockets.
func (c *Client) Close() error {
	closeDownstreams(c.downstreams)
	return nil
}

// Run reads path ("-" for stdin) line by line, forwarding every non-blank
// line to all downstreams. It returns cleanly on EOF.
func (c *Client) Run(ctx context.Context, path string) error {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, maxLineBuffer), maxLineBuffer)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		sendToAll(c.downstreams, line)
		if c.tee {
			os.Stdout.Write(line)
			os.Stdout.Write([]byte("\n"))
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}
