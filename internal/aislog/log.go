// Package aislog provides a small leveled logger in the style this corpus
// favors: fixed severity prefixes, no forced timestamp (the deployment
// environment usually adds its own), writers swappable for tests.
package aislog

import (
	"io"
	"log"
	"os"
)

var (
	DebugWriter io.Writer = os.Stderr
	InfoWriter  io.Writer = os.Stderr
	WarnWriter  io.Writer = os.Stderr
	ErrWriter   io.Writer = os.Stderr
)

var (
	debugPrefix = "[DEBUG] "
	infoPrefix  = "[INFO]  "
	warnPrefix  = "[WARN]  "
	errPrefix   = "[ERROR] "
)

var (
	debugLog = log.New(DebugWriter, debugPrefix, 0)
	infoLog  = log.New(InfoWriter, infoPrefix, 0)
	warnLog  = log.New(WarnWriter, warnPrefix, 0)
	errLog   = log.New(ErrWriter, errPrefix, log.Lshortfile)
)

// Debugf logs a low-volume diagnostic. Not expected on the hot ingestion
// path.
func Debugf(format string, args ...any) { debugLog.Printf(format, args...) }

// Infof logs a routine lifecycle event (listener started, batch flushed).
func Infof(format string, args ...any) { infoLog.Printf(format, args...) }

// Warnf logs a recovered error: the record or connection was dropped but
// the caller continues.
func Warnf(format string, args ...any) { warnLog.Printf(format, args...) }

// Errorf logs a more serious recovered error, typically a storage or
// decode failure that still doesn't abort the pipeline.
func Errorf(format string, args ...any) { errLog.Printf(format, args...) }

// SetOutput redirects all four loggers, for tests that want to capture
// output.
func SetOutput(w io.Writer) {
	debugLog.SetOutput(w)
	infoLog.SetOutput(w)
	warnLog.SetOutput(w)
	errLog.SetOutput(w)
}
