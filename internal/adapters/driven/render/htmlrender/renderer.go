// Package htmlrender renders generated documents, comparison reports
// and case analyses as standalone HTML files, and bundles artifact
// sets into zip archives. HTML was chosen over PDF because it needs no
// external tooling, prints cleanly, and carries Arabic right-to-left
// layout through the dir attribute.
package htmlrender

import (
	"archive/zip"
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/qadi-labs/qadi-cli/internal/core/domain"
	"github.com/qadi-labs/qadi-cli/internal/core/ports/driven"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Ensure Renderer implements the interface.
var _ driven.ArtifactRenderer = (*Renderer)(nil)

const htmlMIME = "text/html; charset=utf-8"

// defaultContractTerms are the standard employment clauses used when
// the caller supplies none.
var defaultContractTerms = []string{
	"The second party shall perform the duties of the position faithfully and diligently.",
	"The first party shall pay the agreed salary at the end of each month.",
	"Working hours and leave follow the applicable labor regulations.",
	"Either party may terminate this contract per the applicable labor regulations.",
}

// Renderer renders artifacts from embedded HTML templates.
type Renderer struct {
	templates *template.Template
	now       func() time.Time
}

// New creates a renderer with all templates parsed up front so a
// broken template fails at startup, not mid-request.
func New() (*Renderer, error) {
	tmpl := template.New("").Funcs(template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	})
	tmpl, err := tmpl.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	return &Renderer{
		templates: tmpl,
		now:       time.Now,
	}, nil
}

// documentData is the template payload for document generation.
type documentData struct {
	domain.DocumentFields
	Dir string
	End string
}

// RenderDocument fills the template for the given kind with the
// fields. Field values appear in the output verbatim (HTML-escaped).
func (r *Renderer) RenderDocument(kind domain.TemplateKind, fields domain.DocumentFields) (*domain.Artifact, error) {
	var name string
	switch kind {
	case domain.TemplateContract:
		name = "contract.html.tmpl"
		if fields.Title == "" {
			fields.Title = "Employment Contract"
		}
		if len(fields.Terms) == 0 {
			fields.Terms = defaultContractTerms
		}
	case domain.TemplateAuthorization:
		name = "authorization.html.tmpl"
		if fields.Title == "" {
			fields.Title = "Authorization"
		}
	case domain.TemplateGeneric:
		name = "generic.html.tmpl"
	default:
		return nil, fmt.Errorf("%w: no template for kind %q", domain.ErrValidation, kind)
	}

	data := documentData{DocumentFields: fields}
	data.Dir, data.End = direction(fields.Title + " " + strings.Join(fields.Body, " "))

	return r.render(name, fileName(fields.Title), data)
}

// comparisonData is the template payload for comparison reports.
type comparisonData struct {
	domain.Comparison
	Dir string
	End string
}

// RenderComparison renders a side-by-side comparison report.
func (r *Renderer) RenderComparison(cmp domain.Comparison) (*domain.Artifact, error) {
	data := comparisonData{Comparison: cmp}
	data.Dir, data.End = direction(cmp.Topic)

	return r.render("comparison.html.tmpl", fileName("comparison_"+cmp.Topic), data)
}

// caseReportData is the template payload for case reports.
type caseReportData struct {
	Scenario      string
	CaseType      string
	Paragraphs    []string
	CitedArticles []string
	Dir           string
	End           string
}

// RenderCaseReport renders a case analysis report with citations.
func (r *Renderer) RenderCaseReport(analysis domain.CaseAnalysis) (*domain.Artifact, error) {
	data := caseReportData{
		Scenario:      analysis.Scenario,
		CaseType:      analysis.CaseType,
		Paragraphs:    paragraphs(analysis.Analysis.Text),
		CitedArticles: analysis.CitedArticles,
	}
	data.Dir, data.End = direction(analysis.Scenario)

	return r.render("case_report.html.tmpl", "case_report", data)
}

// Package bundles several artifacts into a single zip archive.
func (r *Renderer) Package(name string, artifacts []domain.Artifact) (*domain.Artifact, error) {
	if len(artifacts) == 0 {
		return nil, fmt.Errorf("%w: no artifacts to package", domain.ErrInvalidInput)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, artifact := range artifacts {
		w, err := zw.Create(artifact.Name)
		if err != nil {
			return nil, fmt.Errorf("adding %s to archive: %w", artifact.Name, err)
		}
		if _, err := w.Write(artifact.Data); err != nil {
			return nil, fmt.Errorf("writing %s to archive: %w", artifact.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing archive: %w", err)
	}

	return &domain.Artifact{
		Name:      fileName(name) + ".zip",
		MIMEType:  "application/zip",
		Data:      buf.Bytes(),
		CreatedAt: r.now(),
	}, nil
}

func (r *Renderer) render(tmplName, artifactName string, data any) (*domain.Artifact, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, tmplName, data); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", tmplName, err)
	}

	return &domain.Artifact{
		Name:      artifactName + ".html",
		MIMEType:  htmlMIME,
		Data:      buf.Bytes(),
		CreatedAt: r.now(),
	}, nil
}

// direction returns the dir attribute value and the logical text end
// for the dominant language of the text.
func direction(text string) (dir, end string) {
	if domain.DetectLanguage(text) == domain.LanguageArabic {
		return "rtl", "left"
	}
	return "ltr", "right"
}

// paragraphs splits composed text on blank lines, then single line
// breaks, so prose renders as separate blocks.
func paragraphs(text string) []string {
	var out []string
	for _, block := range strings.Split(text, "\n") {
		block = strings.TrimSpace(block)
		if block != "" {
			out = append(out, block)
		}
	}
	return out
}

// fileName turns a title into a safe lowercase file name.
func fileName(title string) string {
	title = strings.TrimSpace(strings.ToLower(title))
	if title == "" {
		return "document"
	}

	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "document"
	}
	return b.String()
}
