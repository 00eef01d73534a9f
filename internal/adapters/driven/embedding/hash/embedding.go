// Package hash provides a deterministic feature-hashing embedding
// service. It needs no network or model files, which makes it the safe
// default and the embedder used in tests: identical text always
// produces identical vectors.
package hash

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	"github.com/qadi-labs/qadi-cli/internal/core/domain"
	"github.com/qadi-labs/qadi-cli/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultDimensions = 256
	ModelName         = "hash-v1"
)

// EmbeddingService embeds text by hashing tokens into a fixed number
// of buckets and L2-normalising the result. Cosine similarity over
// these vectors approximates token overlap.
type EmbeddingService struct {
	dimensions int
	stopwords  map[string]bool
}

// New creates a hash embedding service. Non-positive dimensions fall
// back to the default.
func New(dimensions int) *EmbeddingService {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}

	stop := make(map[string]bool)
	for _, w := range domain.ArabicStopwords() {
		stop[w] = true
	}
	for _, w := range englishStopwords {
		stop[w] = true
	}

	return &EmbeddingService{
		dimensions: dimensions,
		stopwords:  stop,
	}
}

var englishStopwords = []string{
	"the", "a", "an", "of", "to", "in", "on", "for", "and", "or", "is",
	"are", "was", "were", "be", "been", "by", "with", "as", "at", "that",
	"this", "it", "from", "not", "what", "which", "who", "whom",
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, s.dimensions)

	for _, token := range s.tokenise(text) {
		h := fnv.New32a()
		h.Write([]byte(token))
		sum := h.Sum32()

		// The low bits pick the bucket, one extra bit picks the sign.
		// Signed hashing keeps unrelated tokens from accumulating in
		// the same direction.
		bucket := int(sum % uint32(s.dimensions))
		if (sum>>31)&1 == 1 {
			vec[bucket]--
		} else {
			vec[bucket]++
		}
	}

	normalise(vec)
	return vec, nil
}

// EmbedBatch generates embeddings for multiple texts.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := s.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return ModelName
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}

// tokenise lowercases, folds Arabic orthography and splits on
// non-letter, non-digit runes, dropping stopwords.
func (s *EmbeddingService) tokenise(text string) []string {
	text = strings.ToLower(domain.NormalizeArabic(text))

	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if s.stopwords[f] || len([]rune(f)) < 2 {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// normalise scales vec to unit length in place. The zero vector stays
// zero.
func normalise(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= norm
	}
}
