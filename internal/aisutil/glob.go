package aisutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aisdb/aisdb-go/internal/aiserr"
)

// allowedExtensions is the one recognized set of raw-capture file
// extensions; anything else is rejected with UnknownExtension.
var allowedExtensions = map[string]bool{
	".nm4":  true,
	".nmea": true,
	".rx":   true,
	".txt":  true,
}

// GlobByExtension lists the regular files directly inside dir whose
// extension (case-insensitive) is one of {nm4, nmea, rx, txt}. A
// directory containing a file with any other extension is rejected
// wholesale with aiserr.UnknownExtension naming the offending file —
// fatal to that directory's ingestion, but the caller is expected to
// continue with other directories/files.
func GlobByExtension(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !allowedExtensions[ext] {
			return nil, fmt.Errorf("%w: %s", aiserr.UnknownExtension, e.Name())
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}
