// Package tabular provides the read-only SQLite store over the fraud_data
// table.
package tabular

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	_ "modernc.org/sqlite"

	"github.com/hfahrudin/fraud-chatbot/internal/domain"
	"github.com/hfahrudin/fraud-chatbot/internal/ports"
)

// TableName is the single structured table served by the store.
const TableName = "fraud_data"

// selectLeading is the store's own start-of-statement check. It is
// independent of the guard by design: the store never trusts the caller to
// have validated.
var selectLeading = regexp.MustCompile(`(?i)^\s*SELECT`)

// Store executes read-only queries against a SQLite database file.
type Store struct {
	db     *sql.DB
	logger ports.Logger
}

// NewStore opens (or creates) the database file at path.
func NewStore(path string, logger ports.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return &Store{db: db, logger: logger}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the handle for the ingestion pipeline.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ExecuteReadQuery implements ports.TabularStore.
//
// A connection is acquired per call and released on every exit path. The
// start-of-statement check fails loud with domain.ErrRejectedQuery; any
// execution-time failure (malformed SQL, missing table, bad column) fails
// soft: an empty result plus a logged diagnostic, so the agent sees "no
// data" rather than a driver error.
func (s *Store) ExecuteReadQuery(ctx context.Context, query string) (domain.QueryResult, error) {
	if !selectLeading.MatchString(query) {
		s.logger.Warn("non-SELECT query refused by store", map[string]interface{}{"query": query})
		return domain.QueryResult{}, fmt.Errorf("%w: only SELECT queries are allowed for read operations", domain.ErrRejectedQuery)
	}

	conn, err := s.db.Conn(ctx)
	if err != nil {
		s.logger.Error("acquire connection", err, nil)
		return domain.QueryResult{}, nil
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		s.logger.Error("execute read query", err, map[string]interface{}{"query": query})
		return domain.QueryResult{}, nil
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		s.logger.Error("read result columns", err, map[string]interface{}{"query": query})
		return domain.QueryResult{}, nil
	}

	result := domain.QueryResult{Columns: columns}
	values := make([]any, len(columns))
	scanTargets := make([]any, len(columns))
	for i := range values {
		scanTargets[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scanTargets...); err != nil {
			s.logger.Error("scan result row", err, map[string]interface{}{"query": query})
			return domain.QueryResult{}, nil
		}
		row := make(domain.Row, len(columns))
		for i, column := range columns {
			row[column] = normalizeValue(values[i])
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		s.logger.Error("iterate result rows", err, map[string]interface{}{"query": query})
		return domain.QueryResult{}, nil
	}
	return result, nil
}

// normalizeValue flattens driver byte slices into strings so rows are
// JSON-encodable as-is.
func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

var _ ports.TabularStore = (*Store)(nil)
