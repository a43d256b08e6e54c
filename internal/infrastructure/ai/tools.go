package ai

import "github.com/hfahrudin/fraud-chatbot/internal/domain"

// agentToolDefinitions advertises the closed tool set to the model. Each
// tool takes a single "query" string argument.
func agentToolDefinitions() []toolDefinition {
	queryParameter := func(description string) map[string]any {
		return map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": description,
				},
			},
			"required": []string{"query"},
		}
	}

	return []toolDefinition{
		{
			Type: "function",
			Function: functionDefinition{
				Name:        string(domain.ToolQueryVectorDB),
				Description: "Queries the vector database to find relevant documents about fraud detection methods, algorithms and policies.",
				Parameters:  queryParameter("Natural-language search query."),
			},
		},
		{
			Type: "function",
			Function: functionDefinition{
				Name:        string(domain.ToolQuerySQL),
				Description: "Queries the SQL database using a SQL query. The table name is 'fraud_data'. Only read operations (SELECT) are permitted.",
				Parameters:  queryParameter("A read-only SELECT statement against the fraud_data table."),
			},
		},
	}
}
