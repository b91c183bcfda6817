package dispatch

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/aisdb/aisdb-go/internal/aislog"
	"github.com/aisdb/aisdb-go/internal/socket"
)

// LogSinkServer appends every datagram received on its listen addresses
// to a configured file, one goroutine per listener (spec §4.7). When
// multiple listen addresses share a server, filenames are suffixed with
// the address so streams don't interleave.
type LogSinkServer struct {
	listenAddrs []string
	pathPrefix  string
	tee         bool
}

// NewLogSinkServer returns a server that will write to pathPrefix when
// there is exactly one listen address, or pathPrefix suffixed with a
// sanitized address when there are several. When teeStdout is set, every
// received datagram is also copied to standard output.
func NewLogSinkServer(listenAddrs []string, pathPrefix string, teeStdout bool) *LogSinkServer {
	return &LogSinkServer{listenAddrs: listenAddrs, pathPrefix: pathPrefix, tee: teeStdout}
}

func sanitizeForFilename(addr string) string {
	return strings.NewReplacer(":", "_", "/", "_").Replace(addr)
}

func (s *LogSinkServer) pathFor(addr string) string {
	if len(s.listenAddrs) == 1 {
		return s.pathPrefix
	}
	return s.pathPrefix + "." + sanitizeForFilename(addr)
}

// Run spawns one listener goroutine per listen address and blocks until
// ctx is cancelled or every listener exits.
func (s *LogSinkServer) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	for _, addr := range s.listenAddrs {
		addr := addr
		conn, err := socket.Join(addr)
		if err != nil {
			return fmt.Errorf("joining listen address %s: %w", addr, err)
		}

		f, err := os.OpenFile(s.pathFor(addr), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			conn.Close()
			return fmt.Errorf("opening sink file for %s: %w", addr, err)
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer conn.Close()
			defer f.Close()
			go func() {
				<-ctx.Done()
				conn.Close()
			}()

			w := bufio.NewWriter(f)
			buf := make([]byte, maxLineBuffer)
			for {
				n, _, err := conn.ReadFromUDP(buf)
				if err != nil {
					if ctx.Err() != nil {
						w.Flush()
						return
					}
					aislog.Errorf("log-sink: receive on %s failed: %v", addr, err)
					continue
				}
				w.Write(buf[:n])
				if err := w.Flush(); err != nil {
					aislog.Errorf("log-sink: write to %s failed: %v", s.pathFor(addr), err)
				}
				if s.tee {
					os.Stdout.Write(buf[:n])
				}
			}
		}()
	}
	wg.Wait()
	return nil
}
