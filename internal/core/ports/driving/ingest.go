package driving

import (
	"context"

	"github.com/qadi-labs/qadi-cli/internal/core/domain"
)

// IngestService builds the corpus index from a directory of PDF
// statutes. Ingestion is the only writer of index state, and it runs
// before any queries are served.
type IngestService interface {
	// Ingest processes every PDF under dir. Files that fail to parse
	// are skipped and reported in the returned report.
	Ingest(ctx context.Context, dir string) (*domain.IngestReport, error)

	// Documents lists the ingested corpus.
	Documents(ctx context.Context) ([]domain.Document, error)
}
