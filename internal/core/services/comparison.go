package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/qadi-labs/qadi-cli/internal/core/domain"
	"github.com/qadi-labs/qadi-cli/internal/core/ports/driven"
	"github.com/qadi-labs/qadi-cli/internal/core/ports/driving"
	"github.com/qadi-labs/qadi-cli/internal/logger"
)

// defaultCompareExtractPrompt identifies the laws and topic in a
// comparison request. The model answers on two labelled lines.
const defaultCompareExtractPrompt = `You are a smart legal assistant specializing in Omani laws. Analyze the user's request and identify the laws they want to compare.

User request: %s

Answer in exactly this format:
Laws: <comma-separated list of laws>
Topic: <the main topic of comparison>`

// defaultCompareSummarisePrompt summarises one law's side.
// Points come back separated by | so they can be split mechanically.
const defaultCompareSummarisePrompt = `You are a smart legal assistant specializing in Omani laws. Summarize the key points of the specified law about a specific topic.

Law: %s
Topic: %s

Law content:
%s

Present the key points related to the topic, separated by the | character.

Key points:`

// Ensure ComparisonService implements the interface.
var _ driving.CompareService = (*ComparisonService)(nil)

// ComparisonService compares two or more laws on one topic: one LLM
// call extracts the laws and topic, retrieval pulls each law's
// segments, one call per law summarises them.
type ComparisonService struct {
	retriever   driving.RetrieveService
	composer    *Composer
	renderer    driven.ArtifactRenderer
	promptStore driven.PromptStore
	perLawK     int
}

// NewComparisonService creates a new comparison service.
func NewComparisonService(
	retriever driving.RetrieveService,
	composer *Composer,
	renderer driven.ArtifactRenderer,
) *ComparisonService {
	return &ComparisonService{
		retriever: retriever,
		composer:  composer,
		renderer:  renderer,
		perLawK:   domain.DefaultTopK,
	}
}

// SetPromptStore sets the prompt store for loading customisable
// prompts.
func (s *ComparisonService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Compare produces the structured comparison and its rendered report.
func (s *ComparisonService) Compare(ctx context.Context, request string) (*domain.Comparison, *domain.Artifact, error) {
	logger.Section("Comparison")

	laws, topic, err := s.extractLawsAndTopic(ctx, request)
	if err != nil {
		return nil, nil, err
	}
	if len(laws) < 2 {
		return nil, nil, fmt.Errorf("%w: a comparison needs at least two laws", domain.ErrInvalidInput)
	}
	logger.Debug("Comparing %v on %q", laws, topic)

	cmp := &domain.Comparison{Topic: topic}
	for _, law := range laws {
		side, err := s.summariseLaw(ctx, law, topic)
		if err != nil {
			return nil, nil, err
		}
		cmp.Laws = append(cmp.Laws, *side)
	}

	artifact, err := s.renderer.RenderComparison(*cmp)
	if err != nil {
		return nil, nil, fmt.Errorf("render comparison: %w", err)
	}
	return cmp, artifact, nil
}

// extractLawsAndTopic asks the backend chain to name the laws and
// topic, with a keyword fallback when parsing fails.
func (s *ComparisonService) extractLawsAndTopic(ctx context.Context, request string) ([]string, string, error) {
	template := s.loadPrompt(driven.PromptCompareExtract, defaultCompareExtractPrompt)
	prompt := fmt.Sprintf(template, request)

	text, _, err := s.composer.generate(ctx, "", prompt, driven.GenerateOptions{
		MaxTokens:   300,
		Temperature: composeTemperature,
	})
	if err != nil {
		return nil, "", err
	}

	laws, topic := parseLawsAndTopic(text)
	if len(laws) == 0 {
		return nil, "", fmt.Errorf("%w: could not identify laws to compare in %q", domain.ErrInvalidInput, request)
	}
	if topic == "" {
		topic = request
	}
	return laws, topic, nil
}

// summariseLaw retrieves one law's segments on the topic and
// summarises them into bullet points.
func (s *ComparisonService) summariseLaw(ctx context.Context, law, topic string) (*domain.ComparedLaw, error) {
	segments, err := s.retriever.Retrieve(ctx, law+" "+topic, s.perLawK)
	if err != nil {
		return nil, err
	}

	template := s.loadPrompt(driven.PromptCompareSummarise, defaultCompareSummarisePrompt)
	prompt := fmt.Sprintf(template, law, topic, ContextBlock(segments))

	text, _, err := s.composer.generate(ctx, "", prompt, driven.GenerateOptions{
		MaxTokens:   600,
		Temperature: composeTemperature,
	})
	if err != nil {
		return nil, err
	}

	return &domain.ComparedLaw{
		Name:    law,
		Points:  splitPoints(text),
		Sources: segments,
	}, nil
}

func (s *ComparisonService) loadPrompt(name, fallback string) string {
	if s.promptStore == nil {
		return fallback
	}
	prompt, err := s.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}

// parseLawsAndTopic reads the two labelled lines of the extraction
// response. Unlabelled responses yield no laws.
func parseLawsAndTopic(text string) ([]string, string) {
	var laws []string
	var topic string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(strings.ToLower(line), "laws:"):
			for _, law := range strings.Split(line[len("laws:"):], ",") {
				if law = strings.TrimSpace(law); law != "" {
					laws = append(laws, law)
				}
			}
		case strings.HasPrefix(strings.ToLower(line), "topic:"):
			topic = strings.TrimSpace(line[len("topic:"):])
		}
	}
	return laws, topic
}

// splitPoints splits a |-separated summary into trimmed bullet points.
func splitPoints(text string) []string {
	var points []string
	for _, p := range strings.Split(text, "|") {
		if p = strings.TrimSpace(p); p != "" {
			points = append(points, p)
		}
	}
	return points
}
