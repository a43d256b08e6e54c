package domain

import "errors"

// ErrRejectedQuery marks a query refused before execution, either by the
// guard (forbidden keyword) or by the store's own start-of-statement check.
// It is surfaced back into the reasoning loop as a tool-error observation,
// never as a process-level failure.
var ErrRejectedQuery = errors.New("rejected query")

// GuardVerdict is the guard's decision on a candidate SQL string. Derived
// purely from the query text; carries no state.
type GuardVerdict struct {
	Allowed bool
	// Reason names the forbidden keyword or shape violation when Allowed
	// is false.
	Reason string
	// Warning is advisory only: set when the leading keyword is not SELECT
	// (CTEs and comments are legitimate read-only shapes). Enforcement of
	// the statement start belongs to the store.
	Warning string
}

// Row is a single result row keyed by column name.
type Row map[string]any

// QueryResult is an ordered sequence of rows. Empty on no-match and on any
// execution failure; never nil-vs-rows ambiguity for callers.
type QueryResult struct {
	Columns []string
	Rows    []Row
}

// Empty reports whether the result carries no rows.
func (r QueryResult) Empty() bool {
	return len(r.Rows) == 0
}
