package knowledge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hfahrudin/fraud-chatbot/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{})        {}
func (nopLogger) Info(string, map[string]interface{})         {}
func (nopLogger) Warn(string, map[string]interface{})         {}
func (nopLogger) Error(string, error, map[string]interface{}) {}

// hashEmbed is a deterministic stand-in for the real embedding endpoint:
// texts sharing a leading word land close together.
func hashEmbed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, 8)
	for i, r := range text {
		vec[i%8] += float32(r%13) / 13
	}
	// leave normalization to chromem
	return vec, nil
}

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	index, err := NewIndex(t.TempDir(), hashEmbed, nopLogger{})
	require.NoError(t, err)
	return index
}

func TestRetrieveEmptyIndex(t *testing.T) {
	index := newTestIndex(t)

	docs, err := index.Retrieve(context.Background(), "velocity checks", 5, 20)
	require.NoError(t, err)
	require.Empty(t, docs)
}

func TestRetrieveReturnsScoredCandidates(t *testing.T) {
	index := newTestIndex(t)

	err := index.AddChunks(context.Background(), []domain.Chunk{
		{ID: "1", Source: "policy.pdf", Content: "velocity checks flag rapid repeat transactions"},
		{ID: "2", Source: "policy.pdf", Content: "chargeback handling procedure for disputed card payments"},
		{ID: "3", Source: "methods.pdf", Content: "velocity checks compare spend against a rolling window"},
	})
	require.NoError(t, err)

	docs, err := index.Retrieve(context.Background(), "velocity checks flag rapid repeat transactions", 2, 3)
	require.NoError(t, err)
	require.Len(t, docs, 3)

	for i := 1; i < len(docs); i++ {
		require.GreaterOrEqual(t, docs[i-1].RelevanceScore, docs[i].RelevanceScore,
			"results must be ordered by descending relevance")
	}
}

func TestRetrieveClampsFetchWidth(t *testing.T) {
	index := newTestIndex(t)

	err := index.AddChunks(context.Background(), []domain.Chunk{
		{ID: "1", Source: "policy.pdf", Content: "rule based scoring of merchant categories"},
	})
	require.NoError(t, err)

	// fetchK larger than the collection must not fail.
	docs, err := index.Retrieve(context.Background(), "merchant categories", 5, 20)
	require.NoError(t, err)
	require.Len(t, docs, 1)
}
