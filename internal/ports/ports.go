// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and
// external adapters (infrastructure). The orchestration loop depends only on
// these abstractions; SQLite, the vector store, and the model API live
// behind them.
package ports

import (
	"context"

	"github.com/hfahrudin/fraud-chatbot/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// ModelTurn is one reasoning step's output: either a final textual answer
// (no tool calls) or a request to execute one or more tools.
type ModelTurn struct {
	Content   string
	ToolCalls []domain.ToolInvocation
}

// FinalAnswer reports whether the turn terminates the run.
func (t ModelTurn) FinalAnswer() bool {
	return len(t.ToolCalls) == 0
}

// ReasoningModel is the LLM boundary. Decide blocks for a complete turn;
// Stream additionally emits incremental answer text through onDelta as it
// is produced. Both honor ctx cancellation.
type ReasoningModel interface {
	Decide(ctx context.Context, conversation []domain.Message) (ModelTurn, error)
	Stream(ctx context.Context, conversation []domain.Message, onDelta func(string)) (ModelTurn, error)
}

// QueryGuard statically validates a candidate SQL string before it may
// reach the store. Implementations must be pure and side-effect-free.
type QueryGuard interface {
	Evaluate(query string) domain.GuardVerdict
}

// TabularStore executes read-only queries against the fraud_data table.
// Non-SELECT-leading statements fail with domain.ErrRejectedQuery; execution
// failures are converted to an empty result (fail soft).
type TabularStore interface {
	ExecuteReadQuery(ctx context.Context, query string) (domain.QueryResult, error)
}

// DocumentRetriever performs approximate nearest-neighbor search over the
// pre-embedded document collection. fetchK is the candidate width, topK the
// final width reserved for a future re-ranking stage. An empty or
// uninitialized index yields an empty sequence, not an error.
type DocumentRetriever interface {
	Retrieve(ctx context.Context, query string, topK, fetchK int) ([]domain.RetrievedDocument, error)
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
