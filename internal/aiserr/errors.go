// Package aiserr defines the flat error taxonomy shared across the ingestion
// pipeline, the socket fabric, and the query server.
//
// Most of these are recovered locally by the caller (a diagnostic is logged
// and the offending record or connection is dropped); StoragePermanent and
// ConfigError are fatal and propagate up to a cmd/* main that calls
// rtx.Must.
package aiserr

import "errors"

// Sentinel error kinds. Wrap these with fmt.Errorf("...: %w", Kind) to
// attach context while keeping errors.Is(err, Kind) working.
var (
	// MalformedInput covers header-less NMEA lines, missing/unparseable CSV
	// columns, and timestamps outside the accepted range.
	MalformedInput = errors.New("malformed input")

	// DecodeFailure means the bitstream decoder rejected a payload.
	DecodeFailure = errors.New("decode failure")

	// StorageTransient is a transient backend error; the current
	// transaction is abandoned but the pipeline continues with the next
	// batch.
	StorageTransient = errors.New("transient storage error")

	// StoragePermanent is a DDL failure or connection loss; fatal.
	StoragePermanent = errors.New("permanent storage error")

	// NetworkSend means send_to failed for one specific downstream.
	NetworkSend = errors.New("network send failed")

	// NetworkReceive means recv_from returned an error.
	NetworkReceive = errors.New("network receive failed")

	// ClientDisconnect means a TCP write failed on a subscriber.
	ClientDisconnect = errors.New("client disconnected")

	// UnknownExtension is raised during directory globbing.
	UnknownExtension = errors.New("unknown file extension")

	// ConfigError means the CLI arguments could not be parsed; fatal,
	// exit code 1.
	ConfigError = errors.New("configuration error")
)

// StorageError carries the backend error kind plus the partition it
// concerned, per spec: StorageError{kind, partition}.
type StorageError struct {
	Kind      error // StorageTransient or StoragePermanent
	Partition string
	Err       error
}

func (e *StorageError) Error() string {
	if e.Partition == "" {
		return e.Kind.Error() + ": " + e.Err.Error()
	}
	return e.Kind.Error() + " (partition " + e.Partition + "): " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Kind }
