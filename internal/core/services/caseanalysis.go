package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/qadi-labs/qadi-cli/internal/core/domain"
	"github.com/qadi-labs/qadi-cli/internal/core/ports/driven"
	"github.com/qadi-labs/qadi-cli/internal/core/ports/driving"
	"github.com/qadi-labs/qadi-cli/internal/logger"
)

// defaultCaseAnalysisPrompt analyses a scenario against retrieved
// statutes.
const defaultCaseAnalysisPrompt = `You are a legal assistant specialized in Omani laws. Analyze the following case scenario using ONLY the legal provisions in the context. Identify the applicable laws and articles, the legal implications for each party, and the likely outcome. If the context does not cover the scenario, say so.

Context:
%s

Scenario:
%s

Analysis:
`

// domainKeyword maps one scenario keyword to a case category.
type domainKeyword struct {
	keyword string
	domain  string
}

// legalDomains is checked in order; the first match wins so detection
// stays deterministic. Keyword dispatch, not a classifier.
var legalDomains = []domainKeyword{
	{"استثمار", "investment_law"}, {"investment", "investment_law"},
	{"ضرائب", "tax_law"}, {"tax", "tax_law"},
	{"عمل", "labor_law"}, {"employment", "labor_law"}, {"labor", "labor_law"},
	{"تجاره", "commercial_law"}, {"commercial", "commercial_law"}, {"commerce", "commercial_law"},
	{"عقارات", "real_estate_law"}, {"real estate", "real_estate_law"},
	{"جنائي", "criminal_law"}, {"criminal", "criminal_law"}, {"theft", "criminal_law"}, {"سرقه", "criminal_law"},
	{"مدني", "civil_law"}, {"civil", "civil_law"},
	{"شركه", "company_law"}, {"company", "company_law"},
	{"تامين", "insurance_law"}, {"insurance", "insurance_law"},
}

// Ensure CaseAnalysisService implements the interface.
var _ driving.CaseAnalysisService = (*CaseAnalysisService)(nil)

// CaseAnalysisService analyses a free-text case scenario: heuristic
// element extraction, retrieval, composed analysis, rendered report.
type CaseAnalysisService struct {
	retriever   driving.RetrieveService
	composer    *Composer
	renderer    driven.ArtifactRenderer
	promptStore driven.PromptStore
	topK        int
}

// NewCaseAnalysisService creates a new case analysis service.
func NewCaseAnalysisService(
	retriever driving.RetrieveService,
	composer *Composer,
	renderer driven.ArtifactRenderer,
) *CaseAnalysisService {
	return &CaseAnalysisService{
		retriever: retriever,
		composer:  composer,
		renderer:  renderer,
		topK:      domain.DefaultTopK * 2,
	}
}

// SetPromptStore sets the prompt store for loading customisable
// prompts.
func (s *CaseAnalysisService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Analyze runs the case pipeline and renders the report artifact.
func (s *CaseAnalysisService) Analyze(ctx context.Context, scenario string) (*domain.CaseAnalysis, *domain.Artifact, error) {
	logger.Section("Case Analysis")

	scenario = strings.TrimSpace(scenario)
	if scenario == "" {
		return nil, nil, fmt.Errorf("%w: empty scenario", domain.ErrInvalidInput)
	}

	caseType := detectCaseType(scenario)
	logger.Debug("Case type: %s", caseType)

	// Retrieval query combines the scenario with its detected domain
	// so the statutes for that domain rank higher.
	retrievalQuery := scenario
	if caseType != "general_law" {
		retrievalQuery = strings.ReplaceAll(caseType, "_", " ") + " " + scenario
	}

	segments, err := s.retriever.Retrieve(ctx, retrievalQuery, s.topK)
	if err != nil {
		return nil, nil, err
	}

	template := s.loadPrompt(driven.PromptCaseAnalysis, defaultCaseAnalysisPrompt)
	prompt := fmt.Sprintf(template, ContextBlock(segments), scenario)

	text, backend, err := s.composer.generate(ctx, "", prompt, driven.GenerateOptions{
		MaxTokens:   composeMaxTokens,
		Temperature: composeTemperature,
	})
	if err != nil {
		return nil, nil, err
	}

	analysis := &domain.CaseAnalysis{
		Scenario: scenario,
		CaseType: caseType,
		Analysis: domain.Answer{
			Text:    strings.TrimSpace(text),
			Sources: segments,
			Backend: backend,
		},
		CitedArticles: citedArticles(text, segments),
	}

	artifact, err := s.renderer.RenderCaseReport(*analysis)
	if err != nil {
		return nil, nil, fmt.Errorf("render case report: %w", err)
	}
	return analysis, artifact, nil
}

func (s *CaseAnalysisService) loadPrompt(name, fallback string) string {
	if s.promptStore == nil {
		return fallback
	}
	prompt, err := s.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}

// detectCaseType returns the first matching legal domain, or
// "general_law" when nothing matches.
func detectCaseType(scenario string) string {
	q := strings.ToLower(domain.NormalizeArabic(scenario))
	for _, dk := range legalDomains {
		if strings.Contains(q, dk.keyword) {
			return dk.domain
		}
	}
	return "general_law"
}

var articleRefs = regexp.MustCompile(`(?i)(?:article|المادة)\s*[(]?\s*(\d+)`)

// citedArticles lists article numbers mentioned by the analysis that
// also appear in the retrieved segments, preserving first-mention
// order.
func citedArticles(analysis string, segments []domain.RetrievedChunk) []string {
	inCorpus := map[string]bool{}
	for _, seg := range segments {
		if seg.Chunk.Article != "" {
			inCorpus[seg.Chunk.Article] = true
		}
	}

	seen := map[string]bool{}
	var cited []string
	for _, m := range articleRefs.FindAllStringSubmatch(analysis, -1) {
		num := m[1]
		if inCorpus[num] && !seen[num] {
			seen[num] = true
			cited = append(cited, num)
		}
	}
	return cited
}
