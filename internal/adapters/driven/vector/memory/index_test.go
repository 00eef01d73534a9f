package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qadi-labs/qadi-cli/internal/core/domain"
)

func chunk(id, docID string, vec []float32) domain.Chunk {
	return domain.Chunk{
		ID:         id,
		DocumentID: docID,
		Law:        "Penal Code",
		Content:    "text " + id,
		Embedding:  vec,
	}
}

func TestSearch_Empty_ReturnsNotInitialized(t *testing.T) {
	ix := New()

	_, err := ix.Search(context.Background(), []float32{1, 0}, 3)

	assert.ErrorIs(t, err, domain.ErrNotInitialized)
}

func TestSearch_RanksByCosine(t *testing.T) {
	ix := New()
	ctx := context.Background()

	require.NoError(t, ix.Add(ctx, chunk("a", "d1", []float32{1, 0})))
	require.NoError(t, ix.Add(ctx, chunk("b", "d1", []float32{0, 1})))
	require.NoError(t, ix.Add(ctx, chunk("c", "d1", []float32{0.7071, 0.7071})))

	hits, err := ix.Search(ctx, []float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, "a", hits[0].Chunk.ID)
	assert.Equal(t, "c", hits[1].Chunk.ID)
	assert.Greater(t, hits[0].Score, hits[1].Score)
}

func TestSearch_TiesBreakByInsertionOrder(t *testing.T) {
	ix := New()
	ctx := context.Background()

	// Identical vectors: identical scores.
	require.NoError(t, ix.Add(ctx, chunk("second", "d1", []float32{1, 0})))
	require.NoError(t, ix.Add(ctx, chunk("first", "d1", []float32{1, 0})))

	hits, err := ix.Search(ctx, []float32{1, 0}, 2)
	require.NoError(t, err)

	assert.Equal(t, "second", hits[0].Chunk.ID)
	assert.Equal(t, "first", hits[1].Chunk.ID)
}

func TestSearch_Deterministic(t *testing.T) {
	ix := New()
	ctx := context.Background()

	require.NoError(t, ix.Add(ctx, chunk("a", "d1", []float32{0.6, 0.8})))
	require.NoError(t, ix.Add(ctx, chunk("b", "d1", []float32{0.8, 0.6})))
	require.NoError(t, ix.Add(ctx, chunk("c", "d1", []float32{1, 0})))

	first, err := ix.Search(ctx, []float32{0.9, 0.1}, 3)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := ix.Search(ctx, []float32{0.9, 0.1}, 3)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestAdd_ReplacesExistingChunk(t *testing.T) {
	ix := New()
	ctx := context.Background()

	require.NoError(t, ix.Add(ctx, chunk("a", "d1", []float32{1, 0})))
	require.NoError(t, ix.Add(ctx, chunk("a", "d1", []float32{0, 1})))

	assert.Equal(t, 1, ix.Len())

	hits, err := ix.Search(ctx, []float32{0, 1}, 1)
	require.NoError(t, err)
	assert.Equal(t, "a", hits[0].Chunk.ID)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-6)
}

func TestAdd_MissingEmbedding(t *testing.T) {
	ix := New()

	err := ix.Add(context.Background(), domain.Chunk{ID: "a"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRemove_DropsDocumentVectors(t *testing.T) {
	ix := New()
	ctx := context.Background()

	require.NoError(t, ix.Add(ctx, chunk("a", "d1", []float32{1, 0})))
	require.NoError(t, ix.Add(ctx, chunk("b", "d2", []float32{0, 1})))

	require.NoError(t, ix.Remove(ctx, "d1"))

	assert.Equal(t, 1, ix.Len())
	hits, err := ix.Search(ctx, []float32{0, 1}, 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "b", hits[0].Chunk.ID)
}

func TestModel_RoundTrip(t *testing.T) {
	ix := New()

	assert.Empty(t, ix.Model())
	ix.SetModel("hash-v1")
	assert.Equal(t, "hash-v1", ix.Model())
}
