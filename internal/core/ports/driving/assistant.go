package driving

import (
	"context"

	"github.com/qadi-labs/qadi-cli/internal/core/domain"
)

// RetrieveService finds corpus segments relevant to a query and
// classifies query intent.
type RetrieveService interface {
	// Retrieve returns the k most similar segments. Every returned
	// segment carries non-empty source-law attribution. Fails with
	// domain.ErrNotInitialized before any ingestion.
	Retrieve(ctx context.Context, query string, k int) ([]domain.RetrievedChunk, error)

	// Classify assigns one of the closed intent set to a query.
	Classify(query string) domain.Intent
}

// AskService answers a legal question end to end: retrieve, compose,
// attribute.
type AskService interface {
	// Ask runs the full retrieve-then-compose pipeline.
	Ask(ctx context.Context, query domain.Query) (*domain.Answer, error)
}

// CompareService compares two or more laws on a topic.
type CompareService interface {
	// Compare extracts laws and topic from the request, retrieves and
	// summarises per law, and returns the structured comparison plus
	// its rendered report.
	Compare(ctx context.Context, request string) (*domain.Comparison, *domain.Artifact, error)
}

// CaseAnalysisService analyses a free-text case scenario.
type CaseAnalysisService interface {
	// Analyze retrieves relevant statutes, composes an analysis and
	// renders a report artifact with supporting citations.
	Analyze(ctx context.Context, scenario string) (*domain.CaseAnalysis, *domain.Artifact, error)
}

// GenerateService produces legal document artifacts from structured
// form fields. No retrieval and no generation backend are involved.
type GenerateService interface {
	// Generate fills the template with the fields. Returns an error
	// wrapping domain.ErrValidation naming the first missing field.
	Generate(kind domain.TemplateKind, fields domain.DocumentFields) (*domain.Artifact, error)

	// GeneratePackage renders the document and bundles it with a
	// plain-text copy in a zip archive.
	GeneratePackage(kind domain.TemplateKind, fields domain.DocumentFields) (*domain.Artifact, error)
}

// VoiceService wraps the pipeline with speech conversion at both ends.
type VoiceService interface {
	// AskVoice transcribes the audio file, runs the normal pipeline
	// and synthesises the answer. Returns the answer and the path of
	// the synthesised audio ("" when synthesis is disabled).
	AskVoice(ctx context.Context, audioPath string) (*domain.Answer, string, error)
}
