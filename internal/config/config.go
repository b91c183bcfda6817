// Package config loads the query server's PostgreSQL connection
// parameters from environment variables, per spec, and provides the
// repeated-flag helper the dispatch CLIs use for multi-valued
// --server-addr/--listen-addr/--udp_downstream_addr flags.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aisdb/aisdb-go/internal/aiserr"
)

// PGConfig holds the query server's backend DSN parameters.
type PGConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	HostAllow string
	DBPort    int
}

// LoadPGConfig reads PGHOST, PGPORT, PGUSER, PGPASSFILE, AISDBHOSTALLOW,
// and AISDBPORT from the environment. PGPASSFILE names a file containing
// the single-line password; its trailing newline is trimmed.
func LoadPGConfig() (PGConfig, error) {
	var cfg PGConfig
	cfg.Host = os.Getenv("PGHOST")
	cfg.User = os.Getenv("PGUSER")
	cfg.HostAllow = os.Getenv("AISDBHOSTALLOW")

	if p := os.Getenv("PGPORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return cfg, fmt.Errorf("%w: PGPORT %q: %v", aiserr.ConfigError, p, err)
		}
		cfg.Port = port
	}

	if p := os.Getenv("AISDBPORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return cfg, fmt.Errorf("%w: AISDBPORT %q: %v", aiserr.ConfigError, p, err)
		}
		cfg.DBPort = port
	}

	if path := os.Getenv("PGPASSFILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("%w: reading PGPASSFILE: %v", aiserr.ConfigError, err)
		}
		cfg.Password = trimTrailingNewline(string(raw))
	}

	return cfg, nil
}

// trimTrailingNewline strips at most one trailing "\n" and then at most
// one trailing "\r", so a single LF or CRLF line ending (or a lone final
// "\r") is removed rather than every trailing newline in the file.
func trimTrailingNewline(s string) string {
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return s
}

// DSN builds a lib/pq connection string from the loaded config. sslmode
// is fixed to disable: TLS termination is delegated to an upstream
// gateway, per spec's Non-goals.
func (c PGConfig) DSN(dbname string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "host=%s dbname=%s sslmode=disable", c.Host, dbname)
	if c.Port != 0 {
		fmt.Fprintf(&b, " port=%d", c.Port)
	}
	if c.User != "" {
		fmt.Fprintf(&b, " user=%s", c.User)
	}
	if c.Password != "" {
		fmt.Fprintf(&b, " password=%s", c.Password)
	}
	return b.String()
}

// RepeatedFlag collects repeated occurrences of a flag, e.g.
// --server-addr HOST:PORT --server-addr HOST:PORT.
type RepeatedFlag []string

func (r *RepeatedFlag) String() string {
	if r == nil {
		return ""
	}
	return strings.Join(*r, ",")
}

func (r *RepeatedFlag) Set(v string) error {
	*r = append(*r, v)
	return nil
}
