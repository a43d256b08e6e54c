// Package domain defines core business entities and value objects for the
// fraud Q&A engine.
//
// The domain layer is independent of infrastructure concerns and represents
// pure business logic and data structures.
package domain

// Role identifies the author of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is a single turn in a conversation. Conversations are append-only
// within a run; messages are never mutated in place.
//
// ToolCalls is set only on assistant messages that request tool execution.
// ToolCallID is set only on tool messages and links the observation back to
// the invocation that produced it.
type Message struct {
	Role       Role             `json:"role"`
	Content    string           `json:"content"`
	ToolCalls  []ToolInvocation `json:"tool_calls,omitempty"`
	ToolCallID string           `json:"tool_call_id,omitempty"`
}

// UserMessage builds a plain user turn.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// SystemMessage builds the system instruction turn.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// ToolMessage builds a tool observation turn for a given invocation.
func ToolMessage(callID string, content string) Message {
	return Message{Role: RoleTool, Content: content, ToolCallID: callID}
}
