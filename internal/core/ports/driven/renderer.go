package driven

import (
	"github.com/qadi-labs/qadi-cli/internal/core/domain"
)

// ArtifactRenderer renders structured content into downloadable files.
// The only contract with the pipeline is text in, formatted files out.
type ArtifactRenderer interface {
	// RenderDocument fills a template with the given fields.
	// Field values appear in the output verbatim.
	RenderDocument(kind domain.TemplateKind, fields domain.DocumentFields) (*domain.Artifact, error)

	// RenderComparison renders a side-by-side comparison report.
	RenderComparison(cmp domain.Comparison) (*domain.Artifact, error)

	// RenderCaseReport renders a case analysis report with citations.
	RenderCaseReport(analysis domain.CaseAnalysis) (*domain.Artifact, error)

	// Package bundles several artifacts into a single zip archive.
	Package(name string, artifacts []domain.Artifact) (*domain.Artifact, error)
}
