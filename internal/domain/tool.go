package domain

// ToolName enumerates the closed set of capabilities the reasoning loop may
// invoke. Dispatch is an explicit switch over this type, not a string-keyed
// lookup, so adding a tool is a compile-time-checked extension.
type ToolName string

const (
	ToolQueryVectorDB ToolName = "query_vector_db"
	ToolQuerySQL      ToolName = "query_sql"
)

// ToolInvocation is a model request to execute one tool with one argument.
type ToolInvocation struct {
	ID       string   `json:"id"`
	Name     ToolName `json:"name"`
	Argument string   `json:"argument"`
}

// ToolStatus records the outcome of a tool invocation.
type ToolStatus string

const (
	ToolStatusSuccess ToolStatus = "success"
	ToolStatusError   ToolStatus = "error"
)

// ToolCallRecord is the per-invocation audit entry. Created once per tool
// invocation and immutable after creation. Failed invocations are recorded
// with ToolStatusError; every invocation produces exactly one record.
type ToolCallRecord struct {
	ToolName string     `json:"tool_name"`
	Query    string     `json:"query"`
	Status   ToolStatus `json:"status"`
}

// AgentResult bundles the final answer of one orchestration run with its
// ledger. The ledger is scoped to the run: records from distinct runs never
// interleave.
type AgentResult struct {
	FinalAnswer string
	ToolCalls   []ToolCallRecord
	Aborted     bool
}
