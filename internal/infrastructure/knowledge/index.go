// Package knowledge provides the persistent vector index and the semantic
// retrieval path over it.
package knowledge

import (
	"context"
	"fmt"

	"github.com/philippgille/chromem-go"

	"github.com/hfahrudin/fraud-chatbot/internal/domain"
	"github.com/hfahrudin/fraud-chatbot/internal/ports"
)

const collectionName = "knowledge_base"

// Index wraps a persistent chromem collection of pre-embedded document
// chunks. The retrieval path never mutates the index; writes happen only at
// ingestion time.
type Index struct {
	collection *chromem.Collection
	logger     ports.Logger
}

// NewIndex opens (or creates) the index directory. The embedding function
// is pluggable so tests can use a deterministic local embedder.
func NewIndex(dir string, embed chromem.EmbeddingFunc, logger ports.Logger) (*Index, error) {
	db, err := chromem.NewPersistentDB(dir, false)
	if err != nil {
		return nil, fmt.Errorf("open index %s: %w", dir, err)
	}
	collection, err := db.GetOrCreateCollection(collectionName, nil, embed)
	if err != nil {
		return nil, fmt.Errorf("open collection %s: %w", collectionName, err)
	}
	return &Index{collection: collection, logger: logger}, nil
}

// Count reports the number of embedded chunks.
func (i *Index) Count() int {
	return i.collection.Count()
}

// AddChunks embeds and persists document chunks. Ingestion-time concern
// only; never called on the serving path.
func (i *Index) AddChunks(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	docs := make([]chromem.Document, 0, len(chunks))
	for _, chunk := range chunks {
		docs = append(docs, chromem.Document{
			ID:       chunk.ID,
			Content:  chunk.Content,
			Metadata: map[string]string{"source": chunk.Source},
		})
	}
	if err := i.collection.AddDocuments(ctx, docs, 2); err != nil {
		return fmt.Errorf("add documents: %w", err)
	}
	return nil
}

// Retrieve implements ports.DocumentRetriever. It fetches fetchK candidates
// and returns them in descending relevance order. topK stays in the
// signature for a future re-ranking stage that narrows the candidate set;
// until then the fetched candidates are returned as-is. An empty index
// yields an empty sequence.
func (i *Index) Retrieve(ctx context.Context, query string, topK, fetchK int) ([]domain.RetrievedDocument, error) {
	count := i.collection.Count()
	if count == 0 {
		i.logger.Warn("retrieval against empty index", map[string]interface{}{"query": query})
		return []domain.RetrievedDocument{}, nil
	}

	if fetchK <= 0 {
		fetchK = topK
	}
	if fetchK <= 0 {
		fetchK = 1
	}
	if fetchK > count {
		fetchK = count
	}

	results, err := i.collection.Query(ctx, query, fetchK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	docs := make([]domain.RetrievedDocument, 0, len(results))
	for _, result := range results {
		docs = append(docs, domain.RetrievedDocument{
			Content:        result.Content,
			RelevanceScore: result.Similarity,
		})
	}
	return docs, nil
}

var _ ports.DocumentRetriever = (*Index)(nil)
