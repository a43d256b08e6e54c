package domain

// RetrievedDocument is one similarity-search hit.
type RetrievedDocument struct {
	Content        string  `json:"content"`
	RelevanceScore float32 `json:"relevance_score"`
}

// Chunk is a pre-embedding fragment of a source document produced by the
// ingestion pipeline.
type Chunk struct {
	ID      string
	Source  string
	Content string
}
