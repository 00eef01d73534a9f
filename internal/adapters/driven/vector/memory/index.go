// Package memory provides a brute-force in-memory vector index.
// The corpus is a handful of statutes; exact search over a few
// thousand vectors needs no approximate index.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/qadi-labs/qadi-cli/internal/core/domain"
	"github.com/qadi-labs/qadi-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// entry is one indexed chunk. The insertion sequence number is the
// tie-breaker for equal scores.
type entry struct {
	chunk domain.Chunk
	seq   int
}

// Index is a brute-force cosine similarity index. Vectors are expected
// to be L2-normalised, so the inner product is the cosine similarity.
type Index struct {
	mu      sync.RWMutex
	entries []entry
	byID    map[string]int // chunk ID -> entries position
	model   string
	nextSeq int
}

// New creates an empty index.
func New() *Index {
	return &Index{byID: make(map[string]int)}
}

// Add inserts a chunk's vector. Re-adding the same chunk ID replaces
// the previous vector in place, keeping its original tie-break order.
func (ix *Index) Add(_ context.Context, chunk domain.Chunk) error {
	if len(chunk.Embedding) == 0 {
		return fmt.Errorf("%w: chunk %s has no embedding", domain.ErrInvalidInput, chunk.ID)
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	if pos, ok := ix.byID[chunk.ID]; ok {
		ix.entries[pos].chunk = chunk
		return nil
	}

	ix.entries = append(ix.entries, entry{chunk: chunk, seq: ix.nextSeq})
	ix.byID[chunk.ID] = len(ix.entries) - 1
	ix.nextSeq++
	return nil
}

// Remove deletes all vectors belonging to a document.
func (ix *Index) Remove(_ context.Context, documentID string) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	kept := ix.entries[:0]
	for _, e := range ix.entries {
		if e.chunk.DocumentID != documentID {
			kept = append(kept, e)
		}
	}
	ix.entries = kept

	ix.byID = make(map[string]int, len(ix.entries))
	for i, e := range ix.entries {
		ix.byID[e.chunk.ID] = i
	}
	return nil
}

// Search finds the k nearest chunks by cosine similarity. Equal scores
// order by insertion sequence, which makes results deterministic for a
// fixed corpus.
func (ix *Index) Search(_ context.Context, query []float32, k int) ([]domain.RetrievedChunk, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if len(ix.entries) == 0 {
		return nil, domain.ErrNotInitialized
	}
	if k <= 0 {
		k = domain.DefaultTopK
	}

	type scored struct {
		entry entry
		score float64
	}
	results := make([]scored, 0, len(ix.entries))
	for _, e := range ix.entries {
		results = append(results, scored{entry: e, score: dot(query, e.chunk.Embedding)})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].entry.seq < results[j].entry.seq
	})

	if k > len(results) {
		k = len(results)
	}
	hits := make([]domain.RetrievedChunk, k)
	for i := 0; i < k; i++ {
		hits[i] = domain.RetrievedChunk{
			Chunk: results[i].entry.chunk,
			Score: results[i].score,
		}
	}
	return hits, nil
}

// Model returns the embedding model name the index was built with.
func (ix *Index) Model() string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.model
}

// SetModel records the embedding model name at ingestion time.
func (ix *Index) SetModel(name string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.model = name
}

// Len reports the number of indexed vectors.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// Close releases resources.
func (ix *Index) Close() error {
	return nil
}

func dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
