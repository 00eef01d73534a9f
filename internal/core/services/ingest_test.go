package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qadi-labs/qadi-cli/internal/adapters/driven/embedding/hash"
	"github.com/qadi-labs/qadi-cli/internal/adapters/driven/vector/memory"
	"github.com/qadi-labs/qadi-cli/internal/core/domain"
	"github.com/qadi-labs/qadi-cli/internal/core/ports/driven"
)

// corpusFixture creates a corpus dir with placeholder PDF files and an
// extractor that maps them to the given texts.
func corpusFixture(t *testing.T, texts map[string]string) (string, *fakeExtractor) {
	t.Helper()
	dir := t.TempDir()

	extractor := &fakeExtractor{
		results: map[string]*driven.ExtractResult{},
		errs:    map[string]error{},
	}
	for name, text := range texts {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))
		extractor.results[path] = &driven.ExtractResult{Text: text, Pages: 1}
	}
	return dir, extractor
}

func longText(seed string) string {
	return strings.Repeat(seed+" provisions of the law apply to all parties. ", 40)
}

func newIngest(extractor driven.Extractor, store driven.DocumentStore, index driven.VectorIndex) *IngestService {
	return NewIngestService(extractor, store, index, hash.New(64), domain.DefaultSettings())
}

func TestIngest_BuildsCorpus(t *testing.T) {
	dir, extractor := corpusFixture(t, map[string]string{
		"labor_law.pdf":  longText("labor employment"),
		"penal_code.pdf": longText("criminal theft"),
	})
	store := newMemStore()
	index := memory.New()
	svc := newIngest(extractor, store, index)

	report, err := svc.Ingest(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Files)
	assert.Empty(t, report.Skipped)
	assert.Positive(t, report.Chunks)
	assert.Equal(t, report.Chunks, index.Len())

	docs, err := store.ListDocuments(context.Background())
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	// The index records which model built it.
	assert.Equal(t, "hash-v1", index.Model())
	model, err := store.Meta(context.Background(), MetaEmbeddingModel)
	require.NoError(t, err)
	assert.Equal(t, "hash-v1", model)
}

func TestIngest_LawNameFromFileName(t *testing.T) {
	dir, extractor := corpusFixture(t, map[string]string{
		"oman_labor_law.pdf": longText("labor"),
	})
	store := newMemStore()
	svc := newIngest(extractor, store, memory.New())

	_, err := svc.Ingest(context.Background(), dir)
	require.NoError(t, err)

	docs, err := store.ListDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "oman labor law", docs[0].Law)
}

func TestIngest_TitleOverridesFileName(t *testing.T) {
	dir, extractor := corpusFixture(t, map[string]string{
		"doc1.pdf": longText("labor"),
	})
	for _, result := range extractor.results {
		result.Title = "Royal Decree 35/2003 Labour Law"
	}
	store := newMemStore()
	svc := newIngest(extractor, store, memory.New())

	_, err := svc.Ingest(context.Background(), dir)
	require.NoError(t, err)

	docs, err := store.ListDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Royal Decree 35/2003 Labour Law", docs[0].Law)
}

func TestIngest_SkipsFailedFilesWithoutAborting(t *testing.T) {
	dir, extractor := corpusFixture(t, map[string]string{
		"good.pdf":      longText("valid content"),
		"corrupted.pdf": "",
	})
	corruptedPath := filepath.Join(dir, "corrupted.pdf")
	delete(extractor.results, corruptedPath)
	extractor.errs[corruptedPath] = domain.ErrParse

	svc := newIngest(extractor, newMemStore(), memory.New())

	report, err := svc.Ingest(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Files)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, corruptedPath, report.Skipped[0].Path)
	assert.NotEmpty(t, report.Skipped[0].Reason)
}

func TestIngest_EmptyDirectory(t *testing.T) {
	svc := newIngest(&fakeExtractor{}, newMemStore(), memory.New())

	_, err := svc.Ingest(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIngest_ReingestReplacesDocument(t *testing.T) {
	dir, extractor := corpusFixture(t, map[string]string{
		"labor_law.pdf": longText("original text"),
	})
	store := newMemStore()
	index := memory.New()
	svc := newIngest(extractor, store, index)
	ctx := context.Background()

	report, err := svc.Ingest(ctx, dir)
	require.NoError(t, err)
	firstChunks := report.Chunks

	// Same path, new content: the old document and vectors go away.
	path := filepath.Join(dir, "labor_law.pdf")
	extractor.results[path] = &driven.ExtractResult{Text: longText("amended text"), Pages: 2}

	report, err = svc.Ingest(ctx, dir)
	require.NoError(t, err)

	docs, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
	assert.Contains(t, docs[0].Content, "amended text")
	assert.Equal(t, report.Chunks, index.Len())
	assert.Equal(t, firstChunks, report.Chunks)
}

// renamedEmbedder reports a different model name over an existing
// embedder, standing in for a provider switch between runs.
type renamedEmbedder struct {
	driven.EmbeddingService
	name string
}

func (e renamedEmbedder) ModelName() string { return e.name }

func TestIngest_RefusesPartialReingestWithNewModel(t *testing.T) {
	dir, extractor := corpusFixture(t, map[string]string{
		"labor_law.pdf":  longText("labor"),
		"penal_code.pdf": longText("theft"),
	})
	store := newMemStore()
	index := memory.New()

	_, err := newIngest(extractor, store, index).Ingest(context.Background(), dir)
	require.NoError(t, err)

	// The second batch covers only part of the stored corpus but embeds
	// with a different model. Allowing it would mix model vectors in
	// one index.
	partialDir, partialExtractor := corpusFixture(t, map[string]string{
		"labor_law.pdf": longText("labor"),
	})
	next := NewIngestService(partialExtractor, store, index,
		renamedEmbedder{hash.New(64), "hash-v2"}, domain.DefaultSettings())

	_, err = next.Ingest(context.Background(), partialDir)
	assert.ErrorIs(t, err, domain.ErrModelMismatch)
}

func TestIngest_FullReingestMaySwitchModels(t *testing.T) {
	dir, extractor := corpusFixture(t, map[string]string{
		"labor_law.pdf": longText("labor"),
	})
	store := newMemStore()
	index := memory.New()

	_, err := newIngest(extractor, store, index).Ingest(context.Background(), dir)
	require.NoError(t, err)

	next := NewIngestService(extractor, store, index,
		renamedEmbedder{hash.New(64), "hash-v2"}, domain.DefaultSettings())

	_, err = next.Ingest(context.Background(), dir)
	require.NoError(t, err)

	model, err := store.Meta(context.Background(), MetaEmbeddingModel)
	require.NoError(t, err)
	assert.Equal(t, "hash-v2", model)
}

func TestIngest_ChunksCarryAttribution(t *testing.T) {
	dir, extractor := corpusFixture(t, map[string]string{
		"penal_code.pdf": longText("Article 10 theft"),
	})
	store := newMemStore()
	svc := newIngest(extractor, store, memory.New())

	_, err := svc.Ingest(context.Background(), dir)
	require.NoError(t, err)

	chunks, err := store.ListChunks(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.Equal(t, "penal code", chunk.Law)
		assert.NotEmpty(t, chunk.Embedding)
	}
}

func TestChunk_OverlappingWindows(t *testing.T) {
	svc := newIngest(&fakeExtractor{}, newMemStore(), memory.New())

	content := strings.Repeat("x", 2500)
	chunks := svc.chunk(domain.Document{ID: "d1", Law: "Test Law", Content: content})

	// size 1000, overlap 200: windows start at 0, 800, 1600, 2400.
	// The 100-rune tail at 2400 meets the minimum exactly.
	require.Len(t, chunks, 4)
	assert.Len(t, []rune(chunks[0].Content), 1000)
	assert.Len(t, []rune(chunks[3].Content), 100)

	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.Position)
		assert.Equal(t, "Test Law", chunk.Law)
	}

	// Consecutive windows share 200 runes.
	first := []rune(chunks[0].Content)
	second := []rune(chunks[1].Content)
	assert.Equal(t, string(first[800:]), string(second[:200]))
}

func TestChunk_ShortTailDiscarded(t *testing.T) {
	svc := newIngest(&fakeExtractor{}, newMemStore(), memory.New())

	// 1050 runes: second window would be 250 runes (>= minimum), third
	// would be short. 1000-rune first window plus a 250-rune overlap
	// window.
	content := strings.Repeat("x", 1050)
	chunks := svc.chunk(domain.Document{ID: "d1", Law: "Test Law", Content: content})

	require.Len(t, chunks, 2)
	assert.Len(t, []rune(chunks[1].Content), 250)
}

func TestChunk_BelowMinimumProducesNothing(t *testing.T) {
	svc := newIngest(&fakeExtractor{}, newMemStore(), memory.New())

	chunks := svc.chunk(domain.Document{ID: "d1", Law: "Test Law", Content: strings.Repeat("x", 50)})
	assert.Empty(t, chunks)
}

func TestLawName(t *testing.T) {
	assert.Equal(t, "Oman Labour Law", lawName("Oman Labour Law", "/corpus/x.pdf"))
	assert.Equal(t, "labor law 2023", lawName("", "/corpus/labor_law-2023.pdf"))
	assert.Equal(t, "penal code", lawName("  ", "/corpus/penal code.pdf"))
}
