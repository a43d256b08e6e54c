// Package agent implements the orchestration loop: a reasoning model
// alternates between tool execution and answering until it produces a final
// answer or hits the iteration cap.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hfahrudin/fraud-chatbot/internal/domain"
	"github.com/hfahrudin/fraud-chatbot/internal/ports"
)

const defaultMaxIterations = 8

// Service runs the agent loop. It is a long-lived shared component: all
// per-run state (conversation, ledger) lives in local values threaded
// through the call, never on the Service, so concurrent runs are safe by
// construction.
type Service struct {
	Model     ports.ReasoningModel
	Guard     ports.QueryGuard
	Store     ports.TabularStore
	Retriever ports.DocumentRetriever
	Logger    ports.Logger

	MaxIterations int
	TopK          int
	FetchK        int
}

// Run executes one orchestration run to completion and returns the final
// answer together with the run's ledger.
func (s *Service) Run(ctx context.Context, conversation []domain.Message) (domain.AgentResult, error) {
	return s.run(ctx, conversation, nil)
}

// Stream behaves like Run but forwards incremental final-answer text
// through onChunk as the model produces it. The ledger is available only in
// the returned result, not streamed.
func (s *Service) Stream(ctx context.Context, conversation []domain.Message, onChunk func(string)) (domain.AgentResult, error) {
	return s.run(ctx, conversation, onChunk)
}

func (s *Service) run(ctx context.Context, conversation []domain.Message, onDelta func(string)) (domain.AgentResult, error) {
	if s.Model == nil || s.Guard == nil || s.Store == nil || s.Retriever == nil || s.Logger == nil {
		return domain.AgentResult{}, errors.New("agent.Service dependencies not satisfied")
	}

	maxIterations := s.MaxIterations
	if maxIterations <= 0 {
		maxIterations = defaultMaxIterations
	}

	runID := uuid.NewString()
	messages := make([]domain.Message, 0, len(conversation)+1)
	messages = append(messages, domain.SystemMessage(systemPrompt))
	messages = append(messages, conversation...)

	// Request-scoped ledger: starts empty on every run.
	ledger := make([]domain.ToolCallRecord, 0, 4)

	s.Logger.Info("run started", map[string]interface{}{
		"run_id":   runID,
		"messages": len(conversation),
	})

	for iteration := 0; iteration < maxIterations; iteration++ {
		if err := ctx.Err(); err != nil {
			return domain.AgentResult{ToolCalls: ledger, Aborted: true}, err
		}

		var turn ports.ModelTurn
		var err error
		if onDelta != nil {
			turn, err = s.Model.Stream(ctx, messages, onDelta)
		} else {
			turn, err = s.Model.Decide(ctx, messages)
		}
		if err != nil {
			return domain.AgentResult{ToolCalls: ledger, Aborted: true},
				fmt.Errorf("reasoning step %d: %w", iteration, err)
		}

		if turn.FinalAnswer() {
			s.Logger.Info("run finished", map[string]interface{}{
				"run_id":     runID,
				"iterations": iteration + 1,
				"tool_calls": len(ledger),
			})
			return domain.AgentResult{FinalAnswer: turn.Content, ToolCalls: ledger}, nil
		}

		messages = append(messages, domain.Message{
			Role:      domain.RoleAssistant,
			Content:   turn.Content,
			ToolCalls: turn.ToolCalls,
		})

		// Sequential dispatch: one tool call resolves before the next
		// reasoning step begins, preserving conversation and ledger order.
		for _, call := range turn.ToolCalls {
			observation, record := s.dispatch(ctx, runID, call)
			ledger = append(ledger, record)
			messages = append(messages, domain.ToolMessage(call.ID, observation))
			if err := ctx.Err(); err != nil {
				return domain.AgentResult{ToolCalls: ledger, Aborted: true}, err
			}
		}
	}

	s.Logger.Warn("iteration limit exceeded", map[string]interface{}{
		"run_id":         runID,
		"max_iterations": maxIterations,
		"tool_calls":     len(ledger),
	})
	// The aborted answer is the run's final answer: streaming consumers
	// must see it as content too, not only in the returned result.
	if onDelta != nil {
		onDelta(abortedAnswer)
	}
	return domain.AgentResult{FinalAnswer: abortedAnswer, ToolCalls: ledger, Aborted: true}, nil
}

// dispatch routes one invocation to its tool. Every invocation yields
// exactly one ledger record: success or error. Errors become model-visible
// observations so the loop can retry or decline, never process failures.
func (s *Service) dispatch(ctx context.Context, runID string, call domain.ToolInvocation) (string, domain.ToolCallRecord) {
	record := domain.ToolCallRecord{
		ToolName: string(call.Name),
		Query:    call.Argument,
		Status:   domain.ToolStatusSuccess,
	}

	switch call.Name {
	case domain.ToolQuerySQL:
		verdict := s.Guard.Evaluate(call.Argument)
		if !verdict.Allowed {
			s.Logger.Warn("query rejected by guard", map[string]interface{}{
				"run_id": runID,
				"query":  call.Argument,
				"reason": verdict.Reason,
			})
			record.Status = domain.ToolStatusError
			return "query rejected: " + verdict.Reason, record
		}
		if verdict.Warning != "" {
			s.Logger.Warn(verdict.Warning, map[string]interface{}{
				"run_id": runID,
				"query":  call.Argument,
			})
		}

		result, err := s.Store.ExecuteReadQuery(ctx, call.Argument)
		if err != nil {
			record.Status = domain.ToolStatusError
			return "query rejected: " + err.Error(), record
		}
		return renderRows(result), record

	case domain.ToolQueryVectorDB:
		docs, err := s.Retriever.Retrieve(ctx, call.Argument, s.TopK, s.FetchK)
		if err != nil {
			s.Logger.Error("retrieval failed", err, map[string]interface{}{
				"run_id": runID,
				"query":  call.Argument,
			})
			record.Status = domain.ToolStatusError
			return "retrieval failed: " + err.Error(), record
		}
		return renderDocuments(docs), record

	default:
		record.Status = domain.ToolStatusError
		return fmt.Sprintf("unknown tool %q", call.Name), record
	}
}

// renderRows serializes a query result for the model. Column order follows
// the result set.
func renderRows(result domain.QueryResult) string {
	if result.Empty() {
		return "no rows returned"
	}
	encoded, err := json.Marshal(result.Rows)
	if err != nil {
		return "no rows returned"
	}
	return string(encoded)
}

// renderDocuments flattens retrieval hits into a scored plain-text block.
func renderDocuments(docs []domain.RetrievedDocument) string {
	if len(docs) == 0 {
		return "no relevant documents found"
	}
	var b strings.Builder
	for i, doc := range docs {
		fmt.Fprintf(&b, "[%d] (score %.4f) %s\n", i+1, doc.RelevanceScore, doc.Content)
	}
	return strings.TrimRight(b.String(), "\n")
}
