// Package security implements the pre-execution SQL guard.
package security

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hfahrudin/fraud-chatbot/internal/domain"
	"github.com/hfahrudin/fraud-chatbot/internal/ports"
)

// forbiddenKeywords are the write/DDL verbs that must never reach the store.
var forbiddenKeywords = []string{
	"UPDATE", "DELETE", "INSERT", "DROP", "ALTER", "CREATE", "TRUNCATE",
}

// selectLeading matches statements whose first keyword is SELECT.
var selectLeading = regexp.MustCompile(`(?i)^\s*SELECT`)

// Guard implements the ports.QueryGuard port with precompiled
// boundary-aware keyword patterns.
type Guard struct {
	patterns []compiledKeyword
}

type compiledKeyword struct {
	re      *regexp.Regexp
	keyword string
}

// NewGuard compiles one pattern per forbidden keyword. Boundary-aware
// matching is deliberate: a substring scan would false-positive on benign
// identifiers that merely contain a keyword (a column named createdBy must
// not trigger on CREATE).
func NewGuard() *Guard {
	compiled := make([]compiledKeyword, 0, len(forbiddenKeywords))
	for _, keyword := range forbiddenKeywords {
		re := regexp.MustCompile(`(?i)(?:\W|^)` + regexp.QuoteMeta(keyword) + `(?:\W|$)`)
		compiled = append(compiled, compiledKeyword{re: re, keyword: keyword})
	}
	return &Guard{patterns: compiled}
}

// Evaluate implements ports.QueryGuard. It trims the query but never
// rewrites it, and rejects when any forbidden keyword appears as a
// standalone token anywhere in the string, including after a statement
// separator in a stacked query.
func (g *Guard) Evaluate(query string) domain.GuardVerdict {
	normalized := strings.TrimSpace(query)

	for _, pattern := range g.patterns {
		if pattern.re.MatchString(normalized) {
			return domain.GuardVerdict{
				Allowed: false,
				Reason: fmt.Sprintf(
					"disallowed operation: '%s' queries are not permitted, only 'SELECT' is allowed",
					pattern.keyword,
				),
			}
		}
	}

	verdict := domain.GuardVerdict{Allowed: true}
	if !selectLeading.MatchString(normalized) {
		// Advisory only: CTEs and comments are legitimate read-only shapes
		// that do not start with SELECT. The store owns the hard check.
		verdict.Warning = "query does not start with SELECT"
	}
	return verdict
}

var _ ports.QueryGuard = (*Guard)(nil)
