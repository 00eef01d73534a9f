package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors. Nothing here is fatal
// to the process; every error path surfaces a user-facing message and
// leaves the pipeline ready for the next query.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotInitialized indicates a query was made before any corpus
	// was ingested. Surfaced to the user with an instruction to run
	// 'qadi ingest' first.
	ErrNotInitialized = errors.New("index not initialised: run 'qadi ingest' first")

	// ErrParse indicates a source file is unreadable or not valid PDF.
	// The file is skipped and reported; the batch continues.
	ErrParse = errors.New("parse failed")

	// ErrBackendUnavailable indicates all configured generation
	// backends failed. Each backend gets exactly one attempt.
	ErrBackendUnavailable = errors.New("all generation backends unavailable")

	// ErrValidation indicates malformed structured input to document
	// generation. The wrapping error names the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrModelMismatch indicates the query embedding model differs from
	// the model the corpus was indexed with.
	ErrModelMismatch = errors.New("embedding model mismatch: re-ingest the corpus")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured or unreachable.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
