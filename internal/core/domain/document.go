package domain

import "time"

// Document represents an ingested source law.
// It is the canonical representation after text extraction and is
// immutable once stored; re-ingesting the same path replaces it.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Path is the original location of the PDF file.
	Path string

	// Law is the human-readable law name, derived from PDF metadata
	// or the file name.
	Law string

	// Language is the detected dominant language ("ar", "en" or "mixed").
	Language string

	// Pages is the page count reported by the extractor.
	Pages int

	// Content is the full extracted text before chunking.
	Content string

	// CreatedAt is when the document was first ingested.
	CreatedAt time.Time
}

// Chunk is a searchable segment of a document's text.
// Chunks carry their source-law attribution at all times; retrieval
// never returns a chunk without it.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Law is the source-law attribution, copied from the document.
	Law string

	// Article is the article number detected in the chunk text,
	// empty when none was found.
	Article string

	// Language is the detected language of the chunk text.
	Language string

	// Content is the chunk text.
	Content string

	// Position is the ordinal position within the document.
	// It doubles as the tie-breaker for equal similarity scores.
	Position int

	// Embedding is the vector representation for similarity search.
	Embedding []float32
}

// RetrievedChunk is a chunk returned by similarity search together
// with its score.
type RetrievedChunk struct {
	// Chunk is the matched segment.
	Chunk Chunk

	// Score is the cosine similarity against the query vector.
	Score float64
}

// IngestReport summarises one ingestion run.
type IngestReport struct {
	// Files is the number of PDF files processed successfully.
	Files int

	// Chunks is the total number of chunks produced.
	Chunks int

	// Skipped lists files that could not be parsed. A skipped file is
	// reported, never fatal to the batch.
	Skipped []SkippedFile
}

// SkippedFile records a file that failed extraction and why.
type SkippedFile struct {
	Path   string
	Reason string
}
