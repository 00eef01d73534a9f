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

// Ensure RetrieveService implements the interface.
var _ driving.RetrieveService = (*RetrieveService)(nil)

// RetrieveService embeds queries with the corpus model and searches the
// vector index.
type RetrieveService struct {
	embedder driven.EmbeddingService
	vectors  driven.VectorIndex
	docStore driven.DocumentStore
	topK     int
}

// NewRetrieveService creates a new retrieve service.
func NewRetrieveService(
	embedder driven.EmbeddingService,
	vectors driven.VectorIndex,
	docStore driven.DocumentStore,
	topK int,
) *RetrieveService {
	if topK <= 0 {
		topK = domain.DefaultTopK
	}
	return &RetrieveService{
		embedder: embedder,
		vectors:  vectors,
		docStore: docStore,
		topK:     topK,
	}
}

// Retrieve returns the k nearest segments to the query. Repeated calls
// with identical inputs return identical ordered results.
func (s *RetrieveService) Retrieve(ctx context.Context, query string, k int) ([]domain.RetrievedChunk, error) {
	logger.Section("Retrieval")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if s.vectors.Len() == 0 {
		return nil, domain.ErrNotInitialized
	}

	// Consistency invariant: the query must embed with the same model
	// version that built the corpus index.
	if indexed := s.vectors.Model(); indexed != "" && indexed != s.embedder.ModelName() {
		return nil, fmt.Errorf("%w: index built with %q, query model is %q",
			domain.ErrModelMismatch, indexed, s.embedder.ModelName())
	}

	if k <= 0 {
		k = s.topK
	}

	// Arabic orthography folds before embedding so query and corpus
	// text embed consistently.
	embedText := query
	if domain.DetectLanguage(query) != domain.LanguageEnglish {
		embedText = domain.NormalizeArabic(query)
	}

	vec, err := s.embedder.Embed(ctx, embedText)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := s.vectors.Search(ctx, vec, k)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	for i := range hits {
		if hits[i].Chunk.Law == "" {
			// Attribution is an invariant of the store; a miss here is
			// a corrupted index, not a user error.
			return nil, fmt.Errorf("chunk %s has no source-law attribution", hits[i].Chunk.ID)
		}
	}

	logger.Debug("Retrieved %d segments", len(hits))
	return hits, nil
}

// Intent keyword sets. Arabic terms from the original assistant;
// matching is on the normalised, lowercased query.
var (
	compareKeywords  = []string{"compare", "comparison", "versus", " vs ", "difference between", "قارن", "مقارنه", "الفرق بين"}
	documentKeywords = []string{"draft", "generate a contract", "write a contract", "عقد عمل", "اكتب عقد", "تفويض", "authorization letter"}
	caseKeywords     = []string{"scenario", "my case", "happened to me", "sue", "قضيه", "حالتي", "ارفع دعوي"}
)

// Classify assigns one intent from the closed set. The first matching
// category wins; there is no hidden fallthrough.
func (s *RetrieveService) Classify(query string) domain.Intent {
	q := strings.ToLower(domain.NormalizeArabic(query))

	for _, kw := range compareKeywords {
		if strings.Contains(q, kw) {
			return domain.IntentComparison
		}
	}
	for _, kw := range documentKeywords {
		if strings.Contains(q, kw) {
			return domain.IntentDocumentRequest
		}
	}
	for _, kw := range caseKeywords {
		if strings.Contains(q, kw) {
			return domain.IntentCaseAnalysis
		}
	}
	if domain.DetectArticle(query) != "" {
		return domain.IntentArticleLookup
	}
	return domain.IntentGeneral
}
