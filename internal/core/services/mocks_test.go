package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/qadi-labs/qadi-cli/internal/core/domain"
	"github.com/qadi-labs/qadi-cli/internal/core/ports/driven"
)

// stubBackend is a scriptable generation backend.
type stubBackend struct {
	name     string
	response string
	err      error

	// respond overrides response when set; it receives the full prompt.
	respond func(systemPrompt, prompt string) (string, error)

	calls int
}

var _ driven.GenerationBackend = (*stubBackend)(nil)

func (b *stubBackend) Generate(_ context.Context, systemPrompt, prompt string, _ driven.GenerateOptions) (string, error) {
	b.calls++
	if b.respond != nil {
		return b.respond(systemPrompt, prompt)
	}
	if b.err != nil {
		return "", b.err
	}
	return b.response, nil
}

func (b *stubBackend) Name() string               { return b.name }
func (b *stubBackend) ModelName() string          { return b.name + "-model" }
func (b *stubBackend) Ping(context.Context) error { return b.err }
func (b *stubBackend) Close() error               { return nil }

// fakeExtractor maps paths to canned extraction results.
type fakeExtractor struct {
	results map[string]*driven.ExtractResult
	errs    map[string]error
}

var _ driven.Extractor = (*fakeExtractor)(nil)

func (e *fakeExtractor) Extract(_ context.Context, path string) (*driven.ExtractResult, error) {
	if err, ok := e.errs[path]; ok {
		return nil, err
	}
	if res, ok := e.results[path]; ok {
		return res, nil
	}
	return nil, fmt.Errorf("%w: no fixture for %s", domain.ErrParse, path)
}

func (e *fakeExtractor) SupportedExtensions() []string { return []string{".pdf"} }

// memStore is an in-memory DocumentStore.
type memStore struct {
	mu     sync.Mutex
	docs   map[string]domain.Document
	chunks map[string]domain.Chunk
	order  []string
	meta   map[string]string
}

var _ driven.DocumentStore = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		docs:   map[string]domain.Document{},
		chunks: map[string]domain.Chunk{},
		meta:   map[string]string{},
	}
}

func (m *memStore) SaveDocument(_ context.Context, doc *domain.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[doc.ID] = *doc
	return nil
}

func (m *memStore) SaveChunks(_ context.Context, chunks []domain.Chunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range chunks {
		if _, ok := m.chunks[c.ID]; !ok {
			m.order = append(m.order, c.ID)
		}
		m.chunks[c.ID] = c
	}
	return nil
}

func (m *memStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

func (m *memStore) FindDocumentByPath(_ context.Context, path string) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, doc := range m.docs {
		if doc.Path == path {
			d := doc
			return &d, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memStore) GetChunk(_ context.Context, id string) (*domain.Chunk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	chunk, ok := m.chunks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &chunk, nil
}

func (m *memStore) ListChunks(context.Context) ([]domain.Chunk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Chunk, 0, len(m.order))
	for _, id := range m.order {
		if chunk, ok := m.chunks[id]; ok {
			out = append(out, chunk)
		}
	}
	return out, nil
}

func (m *memStore) DeleteDocument(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, id)
	for chunkID, chunk := range m.chunks {
		if chunk.DocumentID == id {
			delete(m.chunks, chunkID)
		}
	}
	return nil
}

func (m *memStore) ListDocuments(context.Context) ([]domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Document, 0, len(m.docs))
	for _, doc := range m.docs {
		out = append(out, doc)
	}
	return out, nil
}

func (m *memStore) Meta(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.meta[key], nil
}

func (m *memStore) SetMeta(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.meta[key] = value
	return nil
}

// fakeRetriever returns canned segments.
type fakeRetriever struct {
	segments []domain.RetrievedChunk
	err      error
	gotQuery string
	gotK     int
}

func (r *fakeRetriever) Retrieve(_ context.Context, query string, k int) ([]domain.RetrievedChunk, error) {
	r.gotQuery = query
	r.gotK = k
	if r.err != nil {
		return nil, r.err
	}
	return r.segments, nil
}

func (r *fakeRetriever) Classify(string) domain.Intent { return domain.IntentGeneral }

func segment(law, article, content string) domain.RetrievedChunk {
	return domain.RetrievedChunk{
		Chunk: domain.Chunk{
			ID:      law + "-" + article,
			Law:     law,
			Article: article,
			Content: content,
		},
		Score: 0.9,
	}
}
