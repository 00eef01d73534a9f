package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Query and corpus embeddings must come from the same model version;
// the vector index records the model name and rejects mismatches.
//
// Implementations:
//   - hash (built-in deterministic feature hashing, offline default)
//   - Ollama (nomic-embed-text and similar)
//   - OpenAI-compatible APIs (text-embedding-3-small etc.)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	// Vectors are L2-normalised so that inner product equals cosine
	// similarity.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts. More
	// efficient than calling Embed in a loop for remote providers.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}
