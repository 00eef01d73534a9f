package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/qadi-labs/qadi-cli/internal/core/domain"
	"github.com/qadi-labs/qadi-cli/internal/core/ports/driven"
	"github.com/qadi-labs/qadi-cli/internal/core/ports/driving"
	"github.com/qadi-labs/qadi-cli/internal/logger"
)

// Default generation parameters. Low temperature: legal answers should
// not be creative.
const (
	composeTemperature = 0.1
	composeMaxTokens   = 2000
)

// defaultQASystemPrompt restricts answers to the supplied context.
const defaultQASystemPrompt = `You are a legal assistant specialized in Omani laws. Answer the question based ONLY on the context provided.
If the context doesn't contain the information needed to answer the question, say "I don't have enough information to answer this question based on the Omani legal documents I have access to."
Do not make up or infer information that is not explicitly stated in the context.`

// defaultQAPrompt carries the retrieved context and the question.
const defaultQAPrompt = `Context:
%s

Question:
%s

Answer:
`

// Ensure Composer implements the interface.
var _ driving.AskService = (*Composer)(nil)

// Composer formats retrieved segments plus the user query into a
// prompt and submits it to the backend chain. Backends get exactly one
// attempt each, in priority order; when all fail the caller receives
// domain.ErrBackendUnavailable rather than an indefinite retry.
type Composer struct {
	backends    []driven.GenerationBackend
	retriever   driving.RetrieveService
	promptStore driven.PromptStore
}

// NewComposer creates a composer over an ordered backend chain.
func NewComposer(retriever driving.RetrieveService, backends ...driven.GenerationBackend) *Composer {
	return &Composer{
		backends:  backends,
		retriever: retriever,
	}
}

// SetPromptStore sets the prompt store for loading customisable
// prompts. If not set, the composer uses hardcoded defaults.
func (c *Composer) SetPromptStore(store driven.PromptStore) {
	c.promptStore = store
}

// Ask runs the full pipeline: retrieve supporting segments, compose an
// answer grounded in them, attribute the backend that produced it.
func (c *Composer) Ask(ctx context.Context, query domain.Query) (*domain.Answer, error) {
	segments, err := c.retriever.Retrieve(ctx, query.Text, query.TopK)
	if err != nil {
		return nil, err
	}

	answer, err := c.Compose(ctx, query.Text, segments)
	if err != nil {
		return nil, err
	}
	return answer, nil
}

// Compose builds the prompt from the segments and query and walks the
// backend chain.
func (c *Composer) Compose(ctx context.Context, question string, segments []domain.RetrievedChunk) (*domain.Answer, error) {
	logger.Section("Composition")

	system := c.loadPrompt(driven.PromptQASystem, defaultQASystemPrompt)
	template := c.loadPrompt(driven.PromptQA, defaultQAPrompt)
	prompt := fmt.Sprintf(template, ContextBlock(segments), question)

	text, backend, err := c.generate(ctx, system, prompt, driven.GenerateOptions{
		MaxTokens:   composeMaxTokens,
		Temperature: composeTemperature,
	})
	if err != nil {
		return nil, err
	}

	return &domain.Answer{
		Text:    strings.TrimSpace(text),
		Sources: segments,
		Backend: backend,
	}, nil
}

// generate walks the chain: single attempt per backend, immediate
// fallback on error.
func (c *Composer) generate(ctx context.Context, system, prompt string, opts driven.GenerateOptions) (string, string, error) {
	if len(c.backends) == 0 {
		return "", "", domain.ErrBackendUnavailable
	}

	var failures []error
	for _, backend := range c.backends {
		if err := ctx.Err(); err != nil {
			return "", "", err
		}

		logger.Debug("Trying backend %s (%s)", backend.Name(), backend.ModelName())
		text, err := backend.Generate(ctx, system, prompt, opts)
		if err == nil {
			logger.Info("Answer composed by %s", backend.Name())
			return text, backend.Name(), nil
		}

		logger.Error("Backend %s failed: %v", backend.Name(), err)
		failures = append(failures, fmt.Errorf("%s: %w", backend.Name(), err))
	}

	return "", "", fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, errors.Join(failures...))
}

// loadPrompt loads a prompt from the store, falling back to the
// default if unavailable.
func (c *Composer) loadPrompt(name, fallback string) string {
	if c.promptStore == nil {
		return fallback
	}
	prompt, err := c.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}

// ContextBlock formats segments for prompt embedding. Every segment
// keeps its source-law attribution.
func ContextBlock(segments []domain.RetrievedChunk) string {
	if len(segments) == 0 {
		return "No relevant information found."
	}

	var b strings.Builder
	for i, seg := range segments {
		fmt.Fprintf(&b, "Document %d (Source: %s", i+1, seg.Chunk.Law)
		if seg.Chunk.Article != "" {
			fmt.Fprintf(&b, ", Article %s", seg.Chunk.Article)
		}
		fmt.Fprintf(&b, "):\n%s\n\n", seg.Chunk.Content)
	}
	return strings.TrimRight(b.String(), "\n")
}
