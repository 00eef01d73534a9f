package driven

import (
	"context"

	"github.com/qadi-labs/qadi-cli/internal/core/domain"
)

// DocumentStore persists documents and their chunks. Backed by SQLite;
// embeddings are stored alongside chunks so the vector index can be
// rebuilt at startup without re-embedding.
type DocumentStore interface {
	// SaveDocument inserts or replaces a document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// SaveChunks inserts chunks, including embedding vectors.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// GetDocument retrieves a document by ID.
	// Returns domain.ErrNotFound when it does not exist.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// FindDocumentByPath retrieves a document by its source path.
	// Returns domain.ErrNotFound when it does not exist.
	FindDocumentByPath(ctx context.Context, path string) (*domain.Document, error)

	// GetChunk retrieves a single chunk by ID.
	GetChunk(ctx context.Context, id string) (*domain.Chunk, error)

	// ListChunks returns all chunks in ingestion order. Used to rebuild
	// the in-memory vector index at startup.
	ListChunks(ctx context.Context) ([]domain.Chunk, error)

	// DeleteDocument removes a document and its chunks.
	DeleteDocument(ctx context.Context, id string) error

	// ListDocuments returns all documents.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// Meta reads a store-level metadata value (e.g. the embedding
	// model the corpus was indexed with). Missing keys return "".
	Meta(ctx context.Context, key string) (string, error)

	// SetMeta writes a store-level metadata value.
	SetMeta(ctx context.Context, key, value string) error
}
