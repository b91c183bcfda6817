package receiver

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

// ReplayFile drives a captured NMEA-0183 file through the same decode and
// batching path Run uses, without binding any UDP socket. It supplements
// the live receiver with an offline replay mode for reprocessing captures
// (--replay PATH).
func (r *Receiver) ReplayFile(ctx context.Context, path string) error {
	r.init()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening replay file %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, maxDatagramSize), maxDatagramSize)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		r.maybeFlush(ctx)
		r.handleSentence(ctx, line, nil, nil)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading replay file %s: %w", path, err)
	}

	return r.flushResidual(ctx)
}
