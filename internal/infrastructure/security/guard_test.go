package security

import (
	"strings"
	"testing"
)

func TestGuardRejectsForbiddenKeywords(t *testing.T) {
	guard := NewGuard()

	queries := []string{
		"DROP TABLE fraud_data",
		"delete from fraud_data where is_fraud = 1",
		"INSERT INTO fraud_data VALUES (1)",
		"update fraud_data set amt = 0",
		"ALTER TABLE fraud_data ADD COLUMN x TEXT",
		"CREATE TABLE x (id INT)",
		"TRUNCATE TABLE fraud_data",
	}
	for _, query := range queries {
		verdict := guard.Evaluate(query)
		if verdict.Allowed {
			t.Fatalf("expected rejection for %q, got %+v", query, verdict)
		}
		if verdict.Reason == "" {
			t.Fatalf("expected reason for %q", query)
		}
	}
}

func TestGuardRejectsStackedStatements(t *testing.T) {
	guard := NewGuard()

	verdict := guard.Evaluate("SELECT * FROM fraud_data; DROP TABLE fraud_data")
	if verdict.Allowed {
		t.Fatalf("expected rejection of stacked statement, got %+v", verdict)
	}
	if !strings.Contains(verdict.Reason, "DROP") {
		t.Fatalf("expected reason to mention DROP, got %q", verdict.Reason)
	}
}

func TestGuardAllowsKeywordSubstrings(t *testing.T) {
	guard := NewGuard()

	// Token-boundary matching, not substring matching: identifiers that
	// merely contain a forbidden keyword must pass.
	queries := []string{
		"SELECT createdBy FROM fraud_data",
		"SELECT updates_count FROM fraud_data",
		"SELECT * FROM fraud_data WHERE job = 'Dropout counselor'",
	}
	for _, query := range queries {
		verdict := guard.Evaluate(query)
		if !verdict.Allowed {
			t.Fatalf("expected %q to be allowed, got %+v", query, verdict)
		}
	}
}

func TestGuardAllowsSelect(t *testing.T) {
	guard := NewGuard()

	verdict := guard.Evaluate("  SELECT category, COUNT(*) FROM fraud_data GROUP BY category")
	if !verdict.Allowed {
		t.Fatalf("expected allow, got %+v", verdict)
	}
	if verdict.Warning != "" {
		t.Fatalf("unexpected warning: %q", verdict.Warning)
	}
}

func TestGuardWarnsOnNonSelectLeading(t *testing.T) {
	guard := NewGuard()

	// CTE: read-only but not SELECT-leading. Must stay allowed with an
	// advisory warning; final enforcement belongs to the store.
	verdict := guard.Evaluate("WITH top AS (SELECT category FROM fraud_data) SELECT * FROM top")
	if !verdict.Allowed {
		t.Fatalf("expected CTE to be allowed, got %+v", verdict)
	}
	if verdict.Warning == "" {
		t.Fatal("expected advisory warning for non-SELECT-leading query")
	}
}

func TestGuardIsIdempotent(t *testing.T) {
	guard := NewGuard()

	query := "SELECT * FROM fraud_data; DROP TABLE fraud_data"
	first := guard.Evaluate(query)
	second := guard.Evaluate(query)
	if first != second {
		t.Fatalf("expected identical verdicts, got %+v and %+v", first, second)
	}
}
