package tabular

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hfahrudin/fraud-chatbot/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{})        {}
func (nopLogger) Info(string, map[string]interface{})         {}
func (nopLogger) Warn(string, map[string]interface{})         {}
func (nopLogger) Error(string, error, map[string]interface{}) {}

func newFixtureStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "fraud.db"), nopLogger{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, err = store.DB().Exec(`CREATE TABLE fraud_data (
		trans_date_trans_time TEXT,
		merchant TEXT,
		category TEXT,
		amt REAL,
		is_fraud INTEGER
	)`)
	require.NoError(t, err)

	fixtures := [][]any{
		{"2020-06-21 12:14:25", "Kirlin and Sons", "Gas Transport", 42.5, 1},
		{"2020-06-21 12:15:07", "Kutch LLC", "Grocery Pos", 17.2, 0},
		{"2020-06-22 08:01:44", "Schumm PLC", "Gas Transport", 199.99, 1},
	}
	for _, row := range fixtures {
		_, err = store.DB().Exec(
			"INSERT INTO fraud_data VALUES (?, ?, ?, ?, ?)", row...)
		require.NoError(t, err)
	}
	return store
}

func TestExecuteReadQueryPreservesColumnOrderAndRows(t *testing.T) {
	store := newFixtureStore(t)

	result, err := store.ExecuteReadQuery(context.Background(),
		"SELECT trans_date_trans_time, merchant, category, amt, is_fraud FROM fraud_data")
	require.NoError(t, err)
	require.Equal(t,
		[]string{"trans_date_trans_time", "merchant", "category", "amt", "is_fraud"},
		result.Columns)
	require.Len(t, result.Rows, 3)
	require.Equal(t, "Kirlin and Sons", result.Rows[0]["merchant"])
}

func TestExecuteReadQueryRejectsNonSelect(t *testing.T) {
	store := newFixtureStore(t)

	// Contains no forbidden keyword: only the store's own check can stop it.
	_, err := store.ExecuteReadQuery(context.Background(), "PRAGMA table_info(fraud_data)")
	require.Error(t, err)
	require.True(t, errors.Is(err, domain.ErrRejectedQuery))
}

func TestExecuteReadQueryAllowsLeadingWhitespace(t *testing.T) {
	store := newFixtureStore(t)

	result, err := store.ExecuteReadQuery(context.Background(),
		"   select merchant FROM fraud_data WHERE is_fraud = 1")
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)
}

func TestExecuteReadQueryFailsSoftOnBadColumn(t *testing.T) {
	store := newFixtureStore(t)

	result, err := store.ExecuteReadQuery(context.Background(),
		"SELECT no_such_column FROM fraud_data")
	require.NoError(t, err)
	require.True(t, result.Empty())
}

func TestExecuteReadQueryFailsSoftOnMissingTable(t *testing.T) {
	store := newFixtureStore(t)

	result, err := store.ExecuteReadQuery(context.Background(), "SELECT * FROM not_a_table")
	require.NoError(t, err)
	require.True(t, result.Empty())
}

func TestExecuteReadQueryEmptyMatch(t *testing.T) {
	store := newFixtureStore(t)

	result, err := store.ExecuteReadQuery(context.Background(),
		"SELECT * FROM fraud_data WHERE amt > 100000")
	require.NoError(t, err)
	require.True(t, result.Empty())
	require.NotNil(t, result.Columns)
}
