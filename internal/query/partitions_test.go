package query

import (
	"strings"
	"testing"

	"github.com/aisdb/aisdb-go/internal/sqltemplate"
)

func TestBuildUnionQuerySQLiteUsesQuestionPlaceholders(t *testing.T) {
	req := Request{Start: 1, End: 2, Area: Area{X0: -1, X1: 1, Y0: -1, Y1: 1}}
	query, args, err := BuildUnionQuery(sqltemplate.DialectSQLite, []string{"202112", "202201"}, req)
	if err != nil {
		t.Fatalf("BuildUnionQuery: %v", err)
	}
	if strings.Count(query, "UNION ALL") != 1 {
		t.Fatalf("expected exactly one UNION ALL for two partitions, got query: %s", query)
	}
	if len(args) != 12 {
		t.Fatalf("args len = %d, want 12 (6 per partition)", len(args))
	}
}

func TestBuildUnionQueryPostgresUsesDollarPlaceholders(t *testing.T) {
	req := Request{Start: 1, End: 2, Area: Area{X0: -1, X1: 1, Y0: -1, Y1: 1}}
	query, _, err := BuildUnionQuery(sqltemplate.DialectPostgres, []string{"202112"}, req)
	if err != nil {
		t.Fatalf("BuildUnionQuery: %v", err)
	}
	if strings.Contains(query, "?") {
		t.Fatalf("postgres query should not contain ? placeholders: %s", query)
	}
	if !strings.Contains(query, "$6") {
		t.Fatalf("expected $6 placeholder: %s", query)
	}
}

func TestResolvePartitionsSpansMonths(t *testing.T) {
	keys := ResolvePartitions(1638316800, 1641168000) // Dec 1 2021 -> Jan 3 2022
	if len(keys) < 2 {
		t.Fatalf("expected at least 2 partition keys, got %v", keys)
	}
}
