// Package ai adapts an OpenAI-compatible chat-completions endpoint to the
// ports.ReasoningModel port, including tool calling and SSE streaming, and
// exposes the embeddings call used by the knowledge index.
package ai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/hfahrudin/fraud-chatbot/internal/domain"
	"github.com/hfahrudin/fraud-chatbot/internal/ports"
)

// Client talks to one configured OpenAI-compatible model.
type Client struct {
	model      domain.ModelDefinition
	httpClient *http.Client
	tools      []toolDefinition
}

// NewClient builds a Client for the configured model definition.
func NewClient(model domain.ModelDefinition) *Client {
	return &Client{
		model:      model,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		tools:      agentToolDefinitions(),
	}
}

// Decide implements ports.ReasoningModel.
func (c *Client) Decide(ctx context.Context, conversation []domain.Message) (ports.ModelTurn, error) {
	payload := c.request(conversation, false)
	body, err := json.Marshal(payload)
	if err != nil {
		return ports.ModelTurn{}, err
	}

	resp, err := c.post(ctx, c.endpoint(), body)
	if err != nil {
		return ports.ModelTurn{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return ports.ModelTurn{}, fmt.Errorf("chat completion: %s", resp.Status)
	}

	var decoded chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.ModelTurn{}, err
	}
	msg, ok := decoded.firstMessage()
	if !ok {
		return ports.ModelTurn{}, fmt.Errorf("chat completion: empty choices")
	}
	return turnFromMessage(msg), nil
}

// Stream implements ports.ReasoningModel. Content deltas are forwarded to
// onDelta as they arrive; tool-call deltas are reassembled by index into
// complete invocations.
func (c *Client) Stream(ctx context.Context, conversation []domain.Message, onDelta func(string)) (ports.ModelTurn, error) {
	payload := c.request(conversation, true)
	body, err := json.Marshal(payload)
	if err != nil {
		return ports.ModelTurn{}, err
	}

	resp, err := c.post(ctx, c.endpoint(), body)
	if err != nil {
		return ports.ModelTurn{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return ports.ModelTurn{}, fmt.Errorf("chat completion stream: %s", resp.Status)
	}

	var content strings.Builder
	pending := map[int]*wireToolCall{}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" || data == "[DONE]" {
			continue
		}

		var chunk chatCompletionChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			continue
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta
		if delta.Content != "" {
			content.WriteString(delta.Content)
			if onDelta != nil {
				onDelta(delta.Content)
			}
		}
		for _, tc := range delta.ToolCalls {
			call, ok := pending[tc.Index]
			if !ok {
				call = &wireToolCall{Type: "function"}
				pending[tc.Index] = call
			}
			if tc.ID != "" {
				call.ID = tc.ID
			}
			if tc.Function.Name != "" {
				call.Function.Name = tc.Function.Name
			}
			call.Function.Arguments += tc.Function.Arguments
		}
	}
	if err := scanner.Err(); err != nil {
		return ports.ModelTurn{}, fmt.Errorf("read stream: %w", err)
	}

	msg := chatMessage{Role: string(domain.RoleAssistant), Content: content.String()}
	indexes := make([]int, 0, len(pending))
	for index := range pending {
		indexes = append(indexes, index)
	}
	sort.Ints(indexes)
	for _, index := range indexes {
		msg.ToolCalls = append(msg.ToolCalls, *pending[index])
	}
	return turnFromMessage(msg), nil
}

// Embed calls the embeddings endpoint for a single text. The signature
// matches chromem's EmbeddingFunc so the client plugs directly into the
// knowledge index.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	payload := embeddingRequest{
		Model: valueOrDefault(c.model.EmbeddingModelID, "text-embedding-3-small"),
		Input: []string{text},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	endpoint := valueOrDefault(c.model.EmbeddingEndpoint, "https://api.openai.com/v1/embeddings")
	resp, err := c.post(ctx, endpoint, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("embeddings: %s", resp.Status)
	}

	var decoded embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}
	if len(decoded.Data) == 0 {
		return nil, fmt.Errorf("embeddings: empty response")
	}
	return decoded.Data[0].Embedding, nil
}

func (c *Client) request(conversation []domain.Message, stream bool) chatCompletionRequest {
	return chatCompletionRequest{
		Model:       valueOrDefault(c.model.ModelID, "gpt-4o"),
		MaxTokens:   valueOrDefaultInt(c.model.MaxTokens, 1200),
		Temperature: c.model.Temperature,
		Messages:    toChatMessages(conversation),
		Tools:       c.tools,
		Stream:      stream,
	}
}

func (c *Client) endpoint() string {
	return valueOrDefault(c.model.Endpoint, "https://api.openai.com/v1/chat/completions")
}

func (c *Client) post(ctx context.Context, endpoint string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey := resolveAuth(c.model.AuthEnvVar, "OPENAI_API_KEY"); apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	return c.httpClient.Do(req)
}

func toChatMessages(conversation []domain.Message) []chatMessage {
	messages := make([]chatMessage, 0, len(conversation))
	for _, msg := range conversation {
		wire := chatMessage{
			Role:       string(msg.Role),
			Content:    msg.Content,
			ToolCallID: msg.ToolCallID,
		}
		for _, call := range msg.ToolCalls {
			args, _ := json.Marshal(map[string]string{"query": call.Argument})
			wire.ToolCalls = append(wire.ToolCalls, wireToolCall{
				ID:   call.ID,
				Type: "function",
				Function: wireFunctionCall{
					Name:      string(call.Name),
					Arguments: string(args),
				},
			})
		}
		messages = append(messages, wire)
	}
	return messages
}

func turnFromMessage(msg chatMessage) ports.ModelTurn {
	turn := ports.ModelTurn{Content: msg.Content}
	for _, call := range msg.ToolCalls {
		turn.ToolCalls = append(turn.ToolCalls, domain.ToolInvocation{
			ID:       call.ID,
			Name:     domain.ToolName(call.Function.Name),
			Argument: extractQueryArgument(call.Function.Arguments),
		})
	}
	return turn
}

// extractQueryArgument pulls the single "query" parameter out of the
// model-emitted JSON arguments, falling back to the raw string when the
// arguments are not valid JSON.
func extractQueryArgument(arguments string) string {
	var decoded struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(arguments), &decoded); err != nil {
		return strings.TrimSpace(arguments)
	}
	return decoded.Query
}

var _ ports.ReasoningModel = (*Client)(nil)
