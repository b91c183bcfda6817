// Command csvdump round-trips a dialect-E or dialect-N CSV export
// through the decode pipeline and writes the resulting dynamic reports
// back out as CSV, for debugging and diffing decoded output against a
// provider's original export.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/m-lab/go/flagx"
	"github.com/m-lab/go/rtx"

	"github.com/aisdb/aisdb-go/internal/csvdecode"
	"github.com/aisdb/aisdb-go/pkg/report"
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

var (
	inPath  = flag.String("in", "", "CSV file to decode")
	outPath = flag.String("out", "", "CSV file to write decoded dynamic reports to; default standard output")
	dialect = flag.String("dialect", "e", "Provider CSV dialect: \"e\" or \"n\"")
	source  = flag.String("source", "", "Source tag recorded against every decoded report")
)

type memSink struct {
	dynamic []report.Dynamic
}

func (m *memSink) FlushDynamic(_ context.Context, entries []report.Dynamic) error {
	m.dynamic = append(m.dynamic, entries...)
	return nil
}

func (m *memSink) FlushStatic(_ context.Context, _ []report.Static) error {
	return nil
}

func main() {
	flag.Parse()
	flagx.ArgsFromEnv(flag.CommandLine)

	if *inPath == "" {
		log.Fatal("--in is required")
	}

	var d csvdecode.Dialect
	switch *dialect {
	case "e":
		d = csvdecode.DialectE
	case "n":
		d = csvdecode.DialectN
	default:
		log.Fatalf("unknown --dialect %q, want \"e\" or \"n\"", *dialect)
	}

	in, err := os.Open(*inPath)
	rtx.Must(err, "Could not open %s", *inPath)
	defer in.Close()

	sink := &memSink{}
	rtx.Must(csvdecode.ReadFile(context.Background(), in, d, *source, sink), "Decode failed")

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		rtx.Must(err, "Could not create %s", *outPath)
		defer f.Close()
		out = f
	}
	rtx.Must(csvdecode.DumpDynamic(out, sink.dynamic), "Writing CSV output failed")
}
