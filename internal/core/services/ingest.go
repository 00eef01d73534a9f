package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/qadi-labs/qadi-cli/internal/core/domain"
	"github.com/qadi-labs/qadi-cli/internal/core/ports/driven"
	"github.com/qadi-labs/qadi-cli/internal/core/ports/driving"
	"github.com/qadi-labs/qadi-cli/internal/logger"
)

// MetaEmbeddingModel is the store metadata key recording which
// embedding model the corpus was indexed with.
const MetaEmbeddingModel = "embedding_model"

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService builds the corpus: extract, chunk, embed, persist,
// index. It is the only writer of index state.
type IngestService struct {
	extractor driven.Extractor
	docStore  driven.DocumentStore
	vectors   driven.VectorIndex
	embedder  driven.EmbeddingService
	settings  domain.Settings
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	extractor driven.Extractor,
	docStore driven.DocumentStore,
	vectors driven.VectorIndex,
	embedder driven.EmbeddingService,
	settings domain.Settings,
) *IngestService {
	settings.Normalise()
	return &IngestService{
		extractor: extractor,
		docStore:  docStore,
		vectors:   vectors,
		embedder:  embedder,
		settings:  settings,
	}
}

// Ingest processes every PDF under dir. A file that fails extraction
// is skipped and reported; it never aborts the batch.
func (s *IngestService) Ingest(ctx context.Context, dir string) (*domain.IngestReport, error) {
	logger.Section("Ingestion")
	logger.Debug("Corpus directory: %s", dir)

	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	files, err := s.listCorpusFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no PDF files in %s", domain.ErrInvalidInput, dir)
	}
	logger.Info("Processing %d PDF files", len(files))

	if err := s.checkModelSwitch(ctx, files); err != nil {
		return nil, err
	}

	report := &domain.IngestReport{}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		chunks, err := s.ingestFile(ctx, path)
		if err != nil {
			logger.Error("Skipping %s: %v", path, err)
			report.Skipped = append(report.Skipped, domain.SkippedFile{
				Path:   path,
				Reason: err.Error(),
			})
			continue
		}
		report.Files++
		report.Chunks += chunks
	}

	// Record the model so later queries can verify consistency.
	if err := s.docStore.SetMeta(ctx, MetaEmbeddingModel, s.embedder.ModelName()); err != nil {
		return report, fmt.Errorf("record embedding model: %w", err)
	}
	s.vectors.SetModel(s.embedder.ModelName())

	logger.Info("Ingestion complete: %d files, %d chunks, %d skipped",
		report.Files, report.Chunks, len(report.Skipped))
	return report, nil
}

// checkModelSwitch refuses a partial re-ingest under a different
// embedding model. One index must hold vectors from one model only, so
// switching models is allowed only when the batch replaces every stored
// document.
func (s *IngestService) checkModelSwitch(ctx context.Context, files []string) error {
	prev, err := s.docStore.Meta(ctx, MetaEmbeddingModel)
	if err != nil || prev == "" || prev == s.embedder.ModelName() {
		return nil
	}

	batch := make(map[string]bool, len(files))
	for _, f := range files {
		batch[f] = true
	}

	docs, err := s.docStore.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}
	for _, doc := range docs {
		if !batch[doc.Path] {
			return fmt.Errorf("%w: corpus indexed with %q but embedder is %q; %s is not in this batch, re-ingest the full corpus or remove the data directory",
				domain.ErrModelMismatch, prev, s.embedder.ModelName(), doc.Path)
		}
	}
	return nil
}

// Documents lists the ingested corpus.
func (s *IngestService) Documents(ctx context.Context) ([]domain.Document, error) {
	return s.docStore.ListDocuments(ctx)
}

// listCorpusFiles returns the PDF files under dir in a stable order.
func (s *IngestService) listCorpusFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read corpus directory: %w", err)
	}

	exts := map[string]bool{}
	for _, e := range s.extractor.SupportedExtensions() {
		exts[e] = true
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if exts[strings.ToLower(filepath.Ext(entry.Name()))] {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// ingestFile extracts, chunks, embeds and stores one file. Returns the
// number of chunks produced.
func (s *IngestService) ingestFile(ctx context.Context, path string) (int, error) {
	logger.Debug("Processing: %s", path)

	result, err := s.extractor.Extract(ctx, path)
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(result.Text) == "" {
		return 0, fmt.Errorf("%w: no extractable text", domain.ErrParse)
	}

	// Re-ingesting a path replaces the prior document, its chunks and
	// its vectors. Embeddings never go stale.
	if prev, err := s.docStore.FindDocumentByPath(ctx, path); err == nil {
		logger.Debug("Replacing previously ingested %s", path)
		if err := s.vectors.Remove(ctx, prev.ID); err != nil {
			return 0, fmt.Errorf("remove stale vectors: %w", err)
		}
		if err := s.docStore.DeleteDocument(ctx, prev.ID); err != nil {
			return 0, fmt.Errorf("delete stale document: %w", err)
		}
	}

	doc := domain.Document{
		ID:        uuid.New().String(),
		Path:      path,
		Law:       lawName(result.Title, path),
		Language:  domain.DetectLanguage(result.Text),
		Pages:     result.Pages,
		Content:   result.Text,
		CreatedAt: time.Now(),
	}

	chunks := s.chunk(doc)
	if len(chunks) == 0 {
		return 0, fmt.Errorf("%w: text shorter than minimum chunk size", domain.ErrParse)
	}

	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Content
	}
	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed chunks: %w", err)
	}
	for i := range chunks {
		chunks[i].Embedding = vectors[i]
	}

	if err := s.docStore.SaveDocument(ctx, &doc); err != nil {
		return 0, fmt.Errorf("save document: %w", err)
	}
	if err := s.docStore.SaveChunks(ctx, chunks); err != nil {
		return 0, fmt.Errorf("save chunks: %w", err)
	}
	for i := range chunks {
		if err := s.vectors.Add(ctx, chunks[i]); err != nil {
			return 0, fmt.Errorf("index chunk: %w", err)
		}
	}

	logger.Debug("Ingested %s: %d chunks", doc.Law, len(chunks))
	return len(chunks), nil
}

// chunk splits a document into fixed-size overlapping windows.
// Overlap prevents cutting a legal article in half at a boundary;
// tails below the minimum are discarded.
func (s *IngestService) chunk(doc domain.Document) []domain.Chunk {
	content := []rune(doc.Content)
	size := s.settings.ChunkSize
	step := size - s.settings.ChunkOverlap

	var chunks []domain.Chunk
	position := 0
	for start := 0; start < len(content); start += step {
		end := start + size
		if end > len(content) {
			end = len(content)
		}

		text := string(content[start:end])
		if len([]rune(text)) < domain.DefaultChunkMinimum {
			continue
		}

		chunks = append(chunks, domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Law:        doc.Law,
			Article:    domain.DetectArticle(text),
			Language:   domain.DetectLanguage(text),
			Content:    text,
			Position:   position,
		})
		position++

		if end == len(content) {
			break
		}
	}
	return chunks
}

// lawName derives the source-law attribution from PDF metadata or the
// file name. Attribution must never be empty.
func lawName(title, path string) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	if name == "" {
		return base
	}
	return name
}
