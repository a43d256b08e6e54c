package httpserver

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hfahrudin/fraud-chatbot/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{})        {}
func (nopLogger) Info(string, map[string]interface{})         {}
func (nopLogger) Warn(string, map[string]interface{})         {}
func (nopLogger) Error(string, error, map[string]interface{}) {}

type stubRunner struct {
	result domain.AgentResult
	err    error
	chunks []string
}

func (r stubRunner) Run(context.Context, []domain.Message) (domain.AgentResult, error) {
	return r.result, r.err
}

func (r stubRunner) Stream(_ context.Context, _ []domain.Message, onChunk func(string)) (domain.AgentResult, error) {
	if r.err != nil {
		return domain.AgentResult{}, r.err
	}
	for _, chunk := range r.chunks {
		onChunk(chunk)
	}
	return r.result, nil
}

const conversationBody = `[{"role": "user", "content": "Which merchant category has the most fraud?"}]`

func TestHealthEndpoint(t *testing.T) {
	server := New(stubRunner{}, nopLogger{})

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Healthy", rec.Body.String())
}

func TestEvalReturnsAnswerAndLedger(t *testing.T) {
	runner := stubRunner{result: domain.AgentResult{
		FinalAnswer: "Gas Transport has the most fraud.",
		ToolCalls: []domain.ToolCallRecord{{
			ToolName: "query_sql",
			Query:    "SELECT category FROM fraud_data WHERE is_fraud = 1",
			Status:   domain.ToolStatusSuccess,
		}},
	}}
	server := New(runner, nopLogger{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/eval", strings.NewReader(conversationBody))
	server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var decoded struct {
		ToolCalls []struct {
			ToolName string `json:"tool_name"`
			Query    string `json:"query"`
			Status   string `json:"status"`
		} `json:"tool_calls"`
		FinalAnswer string `json:"final_answer"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	require.Equal(t, "Gas Transport has the most fraud.", decoded.FinalAnswer)
	require.Len(t, decoded.ToolCalls, 1)
	require.Equal(t, "query_sql", decoded.ToolCalls[0].ToolName)
	require.Equal(t, "success", decoded.ToolCalls[0].Status)
}

func TestEvalRejectsMalformedBody(t *testing.T) {
	server := New(stubRunner{}, nopLogger{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/eval", strings.NewReader(`{"role": "user"}`))
	server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEvalReportsRunFailure(t *testing.T) {
	server := New(stubRunner{err: errors.New("model endpoint unreachable")}, nopLogger{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/eval", strings.NewReader(conversationBody))
	server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestStreamEmitsNDJSONWithSentinel(t *testing.T) {
	runner := stubRunner{
		chunks: []string{"Gas ", "Transport ", "leads."},
		result: domain.AgentResult{FinalAnswer: "Gas Transport leads."},
	}
	server := New(runner, nopLogger{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/stream", strings.NewReader(conversationBody))
	server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/x-ndjson", rec.Header().Get("Content-Type"))

	var lines []streamChunk
	scanner := bufio.NewScanner(rec.Body)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		var chunk streamChunk
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &chunk))
		lines = append(lines, chunk)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, lines, 4)
	var text strings.Builder
	for _, chunk := range lines[:3] {
		require.False(t, chunk.Done)
		text.WriteString(chunk.Content)
	}
	require.Equal(t, "Gas Transport leads.", text.String())

	sentinel := lines[3]
	require.True(t, sentinel.Done)
	require.Empty(t, sentinel.Content)
}

func TestStreamReportsFailureInline(t *testing.T) {
	server := New(stubRunner{err: errors.New("model endpoint unreachable")}, nopLogger{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/stream", strings.NewReader(conversationBody))
	server.Handler().ServeHTTP(rec, req)

	body := rec.Body.String()
	require.Contains(t, body, "Error: model endpoint unreachable")
	require.Contains(t, body, `"done":true`)
}
