package services

import (
	"fmt"
	"time"

	"github.com/qadi-labs/qadi-cli/internal/core/domain"
	"github.com/qadi-labs/qadi-cli/internal/core/ports/driven"
	"github.com/qadi-labs/qadi-cli/internal/core/ports/driving"
	"github.com/qadi-labs/qadi-cli/internal/logger"
)

// Ensure DocGenService implements the interface.
var _ driving.GenerateService = (*DocGenService)(nil)

// DocGenService fills legal document templates from structured form
// fields. It involves no retrieval and no generation backend; field
// values appear in the output verbatim.
type DocGenService struct {
	renderer driven.ArtifactRenderer
}

// NewDocGenService creates a new document generation service.
func NewDocGenService(renderer driven.ArtifactRenderer) *DocGenService {
	return &DocGenService{renderer: renderer}
}

// Generate validates the fields and renders the template.
func (s *DocGenService) Generate(kind domain.TemplateKind, fields domain.DocumentFields) (*domain.Artifact, error) {
	logger.Section("Document Generation")
	logger.Debug("Template: %s", kind)

	if err := validateFields(kind, fields); err != nil {
		return nil, err
	}
	if fields.Date == "" {
		fields.Date = time.Now().Format("2006-01-02")
	}

	artifact, err := s.renderer.RenderDocument(kind, fields)
	if err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}
	return artifact, nil
}

// GeneratePackage renders the document plus a plain-text copy and
// bundles both in a zip archive.
func (s *DocGenService) GeneratePackage(kind domain.TemplateKind, fields domain.DocumentFields) (*domain.Artifact, error) {
	artifact, err := s.Generate(kind, fields)
	if err != nil {
		return nil, err
	}

	txt := domain.Artifact{
		Name:      artifact.Name + ".txt",
		MIMEType:  "text/plain; charset=utf-8",
		Data:      artifact.Data,
		CreatedAt: artifact.CreatedAt,
	}

	pkg, err := s.renderer.Package(string(kind), []domain.Artifact{*artifact, txt})
	if err != nil {
		return nil, fmt.Errorf("package document: %w", err)
	}
	return pkg, nil
}

// validateFields checks the required fields per template kind.
// The error names the first missing field.
func validateFields(kind domain.TemplateKind, fields domain.DocumentFields) error {
	required := map[domain.TemplateKind][]struct {
		name  string
		value string
	}{
		domain.TemplateContract: {
			{"first_party", fields.FirstParty},
			{"second_party", fields.SecondParty},
		},
		domain.TemplateAuthorization: {
			{"authorizer", fields.Authorizer},
			{"authorized", fields.Authorized},
			{"purpose", fields.Purpose},
		},
		domain.TemplateGeneric: {
			{"title", fields.Title},
		},
	}

	checks, ok := required[kind]
	if !ok {
		return fmt.Errorf("%w: unknown template kind %q", domain.ErrValidation, kind)
	}
	for _, c := range checks {
		if c.value == "" {
			return fmt.Errorf("%w: missing required field %q", domain.ErrValidation, c.name)
		}
	}
	return nil
}
