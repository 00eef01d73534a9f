package driven

import (
	"context"

	"github.com/qadi-labs/qadi-cli/internal/core/domain"
)

// VectorIndex provides similarity search over chunk embeddings.
//
// The similarity metric is fixed: cosine over L2-normalised vectors.
// Ties are broken by insertion (ingestion) order, which makes retrieval
// deterministic for a fixed corpus and model.
type VectorIndex interface {
	// Add inserts a chunk's vector. Adding the same chunk ID again
	// replaces the previous vector rather than duplicating it.
	Add(ctx context.Context, chunk domain.Chunk) error

	// Remove deletes all vectors belonging to a document.
	Remove(ctx context.Context, documentID string) error

	// Search finds the k nearest chunks to the query vector.
	// Returns domain.ErrNotInitialized when the index holds no vectors.
	Search(ctx context.Context, query []float32, k int) ([]domain.RetrievedChunk, error)

	// Model returns the embedding model name the index was built with,
	// or the empty string for an empty index.
	Model() string

	// SetModel records the embedding model name at ingestion time.
	SetModel(name string)

	// Len reports the number of indexed vectors.
	Len() int

	// Close releases resources.
	Close() error
}
