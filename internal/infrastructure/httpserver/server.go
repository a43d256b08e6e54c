// Package httpserver exposes the agent over HTTP: a health check, a
// blocking evaluation endpoint, and an NDJSON streaming endpoint.
package httpserver

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hfahrudin/fraud-chatbot/internal/domain"
	"github.com/hfahrudin/fraud-chatbot/internal/ports"
)

// AgentRunner is the serving surface's view of the orchestrator.
type AgentRunner interface {
	Run(ctx context.Context, conversation []domain.Message) (domain.AgentResult, error)
	Stream(ctx context.Context, conversation []domain.Message, onChunk func(string)) (domain.AgentResult, error)
}

// Server wires the HTTP routes onto a gin engine.
type Server struct {
	engine *gin.Engine
	agent  AgentRunner
	logger ports.Logger
}

// New builds the server around an agent runner.
func New(agent AgentRunner, logger ports.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{engine: engine, agent: agent, logger: logger}
	engine.GET("/", s.handleHealth)
	engine.POST("/eval", s.handleEval)
	engine.POST("/stream", s.handleStream)
	return s
}

// Handler exposes the engine for http.Server and tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// inboundMessage is the transport's message shape: role and content only.
type inboundMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// streamChunk is one NDJSON line of the streaming endpoint. The terminal
// sentinel is {"content": "", "done": true}.
type streamChunk struct {
	Content string `json:"content"`
	Done    bool   `json:"done"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "Healthy")
}

func (s *Server) handleEval(c *gin.Context) {
	conversation, ok := s.bindConversation(c)
	if !ok {
		return
	}

	result, err := s.agent.Run(c.Request.Context(), conversation)
	if err != nil {
		s.logger.Error("eval run failed", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tool_calls":   result.ToolCalls,
		"final_answer": result.FinalAnswer,
	})
}

func (s *Server) handleStream(c *gin.Context) {
	conversation, ok := s.bindConversation(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "application/x-ndjson")
	writer := c.Writer
	encoder := json.NewEncoder(writer)

	emit := func(chunk streamChunk) {
		// Encode appends the newline separating NDJSON objects.
		if err := encoder.Encode(chunk); err != nil {
			return
		}
		writer.Flush()
	}

	// Client disconnect cancels the request context, which aborts the run
	// at the next suspension point.
	_, err := s.agent.Stream(c.Request.Context(), conversation, func(text string) {
		emit(streamChunk{Content: text})
	})
	if err != nil {
		s.logger.Error("stream run failed", err, nil)
		emit(streamChunk{Content: "Error: " + err.Error()})
	}
	emit(streamChunk{Content: "", Done: true})
}

func (s *Server) bindConversation(c *gin.Context) ([]domain.Message, bool) {
	var inbound []inboundMessage
	if err := c.ShouldBindJSON(&inbound); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be a JSON array of {role, content} messages"})
		return nil, false
	}
	conversation := make([]domain.Message, 0, len(inbound))
	for _, msg := range inbound {
		conversation = append(conversation, domain.Message{
			Role:    domain.Role(msg.Role),
			Content: msg.Content,
		})
	}
	return conversation, true
}
