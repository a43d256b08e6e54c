// Package ingest populates the process-wide stores: the fraud_data table
// from source CSVs and the knowledge index from source PDFs. Everything
// here is an ingestion-time concern; nothing on the serving path writes.
package ingest

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hfahrudin/fraud-chatbot/internal/infrastructure/tabular"
	"github.com/hfahrudin/fraud-chatbot/internal/ports"
)

// categoricalColumns receive the text-normalization pass: strip the
// dataset's "fraud_" prefix, replace separators with spaces, title-case.
var categoricalColumns = map[string]bool{
	"merchant": true,
	"category": true,
	"first":    true,
	"last":     true,
	"gender":   true,
	"street":   true,
	"city":     true,
	"state":    true,
	"job":      true,
}

var titleCaser = cases.Title(language.English)

// schemaColumns is the set of legal header names, derived from the
// fraud_data schema.
var schemaColumns = func() map[string]bool {
	set := make(map[string]bool, len(tabular.Schema))
	for _, name := range tabular.ColumnNames() {
		set[name] = true
	}
	return set
}()

// LoadCSVs processes data-directory CSVs one by one: the first file
// replaces the fraud_data table, subsequent files append. Rows with missing
// values are dropped, as is a leading unnamed index column.
func LoadCSVs(ctx context.Context, db *sql.DB, dataDir string, logger ports.Logger) error {
	files, err := filepath.Glob(filepath.Join(dataDir, "*.csv"))
	if err != nil {
		return fmt.Errorf("scan %s: %w", dataDir, err)
	}
	sort.Strings(files)
	if len(files) == 0 {
		logger.Warn("no CSV files found", map[string]interface{}{"dir": dataDir})
		return createTable(ctx, db, true)
	}

	first := true
	for _, file := range files {
		inserted, err := loadCSV(ctx, db, file, first)
		if err != nil {
			logger.Error("failed to process file", err, map[string]interface{}{"file": file})
			continue
		}
		logger.Info("loaded CSV file", map[string]interface{}{"file": file, "rows": inserted})
		first = false
	}
	return nil
}

func createTable(ctx context.Context, db *sql.DB, replace bool) error {
	if replace {
		if _, err := db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", tabular.TableName)); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	defs := make([]string, len(tabular.Schema))
	for i, col := range tabular.Schema {
		defs[i] = fmt.Sprintf("%q %s", col.Name, col.Type)
	}
	create := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", tabular.TableName, strings.Join(defs, ", "))
	if _, err := db.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}

func loadCSV(ctx context.Context, db *sql.DB, path string, replace bool) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	columns, drop := cleanHeader(header)
	if err := validateHeader(columns); err != nil {
		return 0, err
	}

	if err := createTable(ctx, db, replace); err != nil {
		return 0, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertStatement(columns))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return inserted, fmt.Errorf("read record: %w", err)
		}
		values, ok := cleanRecord(record, columns, drop)
		if !ok {
			continue
		}
		if _, err := stmt.ExecContext(ctx, values...); err != nil {
			return inserted, fmt.Errorf("insert record: %w", err)
		}
		inserted++
	}
	if err := tx.Commit(); err != nil {
		return inserted, err
	}
	return inserted, nil
}

// cleanHeader drops the pandas-style unnamed index column and returns the
// remaining column names plus the set of dropped positions.
func cleanHeader(header []string) ([]string, map[int]bool) {
	columns := make([]string, 0, len(header))
	drop := make(map[int]bool)
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" || strings.HasPrefix(name, "Unnamed:") {
			drop[i] = true
			continue
		}
		columns = append(columns, name)
	}
	return columns, drop
}

// validateHeader rejects files whose cleaned header carries columns outside
// the fraud_data schema, so a stray CSV cannot reshape the table.
func validateHeader(columns []string) error {
	for _, name := range columns {
		if !schemaColumns[name] {
			return fmt.Errorf("column %q is not part of the %s schema", name, tabular.TableName)
		}
	}
	return nil
}

// cleanRecord drops the indexed positions, rejects rows with missing
// values, and normalizes categorical text.
func cleanRecord(record []string, columns []string, drop map[int]bool) ([]any, bool) {
	values := make([]any, 0, len(columns))
	kept := 0
	for i, raw := range record {
		if drop[i] {
			continue
		}
		if kept >= len(columns) {
			break
		}
		value := strings.TrimSpace(raw)
		if value == "" {
			return nil, false
		}
		if categoricalColumns[columns[kept]] {
			value = NormalizeCategorical(value)
		}
		values = append(values, value)
		kept++
	}
	if kept != len(columns) {
		return nil, false
	}
	return values, true
}

// NormalizeCategorical applies the dataset cleanup used across categorical
// columns: strip the "fraud_" prefix, separators to spaces, title case.
func NormalizeCategorical(value string) string {
	value = strings.ReplaceAll(value, "fraud_", "")
	value = strings.ReplaceAll(value, "_", " ")
	return titleCaser.String(value)
}

func insertStatement(columns []string) string {
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, name := range columns {
		quoted[i] = fmt.Sprintf("%q", name)
		placeholders[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		tabular.TableName, strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
}
