// Command qadi is the Omani legal assistant CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	configfile "github.com/qadi-labs/qadi-cli/internal/adapters/driven/config/file"
	hashembed "github.com/qadi-labs/qadi-cli/internal/adapters/driven/embedding/hash"
	ollamaembed "github.com/qadi-labs/qadi-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/qadi-labs/qadi-cli/internal/adapters/driven/embedding/openai"
	"github.com/qadi-labs/qadi-cli/internal/adapters/driven/extract/pdftotext"
	"github.com/qadi-labs/qadi-cli/internal/adapters/driven/llm/llamacpp"
	"github.com/qadi-labs/qadi-cli/internal/adapters/driven/llm/ollama"
	"github.com/qadi-labs/qadi-cli/internal/adapters/driven/llm/openrouter"
	"github.com/qadi-labs/qadi-cli/internal/adapters/driven/render/htmlrender"
	"github.com/qadi-labs/qadi-cli/internal/adapters/driven/speech/command"
	"github.com/qadi-labs/qadi-cli/internal/adapters/driven/storage/sqlite"
	"github.com/qadi-labs/qadi-cli/internal/adapters/driven/vector/memory"
	"github.com/qadi-labs/qadi-cli/internal/adapters/driving/cli"
	"github.com/qadi-labs/qadi-cli/internal/core/domain"
	"github.com/qadi-labs/qadi-cli/internal/core/ports/driven"
	"github.com/qadi-labs/qadi-cli/internal/core/services"
	"github.com/qadi-labs/qadi-cli/internal/logger"
	"github.com/qadi-labs/qadi-cli/internal/watcher"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for API keys in development.
	_ = godotenv.Load()

	configStore, err := configfile.NewConfigStore(os.Getenv("QADI_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	settings := settingsFromConfig(configStore)
	logger.SetVerbose(settings.Verbose)

	store, err := sqlite.NewStore(settings.DataDir)
	if err != nil {
		return fmt.Errorf("opening index store: %w", err)
	}
	defer store.Close()

	embedder, err := buildEmbedder(settings.Embedding)
	if err != nil {
		return fmt.Errorf("configuring embeddings: %w", err)
	}

	ctx := context.Background()
	index := memory.New()
	if err := loadIndex(ctx, store, index); err != nil {
		return fmt.Errorf("loading index: %w", err)
	}

	renderer, err := htmlrender.New()
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	promptStore, err := configfile.NewPromptStore("")
	if err != nil {
		logger.Warn("Prompt store unavailable, using built-in prompts: %v", err)
		promptStore = nil
	}

	ingest := services.NewIngestService(pdftotext.New(), store, index, embedder, settings)
	retriever := services.NewRetrieveService(embedder, index, store, settings.TopK)

	composer := services.NewComposer(retriever, buildBackends(settings)...)
	comparison := services.NewComparisonService(retriever, composer, renderer)
	caseAnalysis := services.NewCaseAnalysisService(retriever, composer, renderer)
	if promptStore != nil {
		composer.SetPromptStore(promptStore)
		comparison.SetPromptStore(promptStore)
		caseAnalysis.SetPromptStore(promptStore)
	}
	docGen := services.NewDocGenService(renderer)

	svc := cli.Services{
		Ingest:   ingest,
		Retrieve: retriever,
		Ask:      composer,
		Compare:  comparison,
		Case:     caseAnalysis,
		Generate: docGen,
		Config:   configStore,
		Settings: settings,
	}

	if settings.SpeechModelPath != "" {
		transcriber, err := command.NewTranscriber(settings.SpeechModelPath)
		if err != nil {
			logger.Warn("Voice disabled: %v", err)
		} else {
			synthesiser := command.NewSynthesiser(filepath.Join(settings.DataDir, "speech"), settings.TTSVoice)
			svc.Voice = services.NewVoiceService(transcriber, synthesiser, composer)
		}
	}

	startCorpusWatcher(ctx, settings.CorpusDir)

	cli.SetServices(svc)
	return cli.Execute()
}

// settingsFromConfig builds the pipeline settings from the config
// file, with environment variables taking precedence for secrets.
func settingsFromConfig(cfg driven.ConfigStore) domain.Settings {
	s := domain.DefaultSettings()

	if v := cfg.GetString("corpus.dir"); v != "" {
		s.CorpusDir = v
	}
	if v := cfg.GetString("data.dir"); v != "" {
		s.DataDir = v
	}
	if s.DataDir == "" {
		s.DataDir = filepath.Join(filepath.Dir(cfg.Path()), "data")
	}
	if v := cfg.GetInt("chunk.size"); v > 0 {
		s.ChunkSize = v
	}
	if v := cfg.GetInt("chunk.overlap"); v > 0 {
		s.ChunkOverlap = v
	}
	if v := cfg.GetInt("retrieval.top_k"); v > 0 {
		s.TopK = v
	}

	if v := cfg.GetString("embedding.provider"); v != "" {
		s.Embedding.Provider = domain.EmbeddingProvider(v)
	}
	if v := cfg.GetString("embedding.model"); v != "" {
		s.Embedding.Model = v
	}
	s.Embedding.BaseURL = cfg.GetString("embedding.base_url")
	s.Embedding.APIKey = cfg.GetString("embedding.api_key")
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		s.Embedding.APIKey = v
	}

	if order := cfg.GetStringSlice("backend.order"); len(order) > 0 {
		var reordered []domain.BackendSettings
		for _, name := range order {
			kind := domain.BackendKind(name)
			if !kind.IsValid() {
				logger.Warn("Ignoring unknown backend %q in backend.order", name)
				continue
			}
			for _, b := range s.Backends {
				if b.Kind == kind {
					reordered = append(reordered, b)
					break
				}
			}
		}
		if len(reordered) > 0 {
			s.Backends = reordered
		}
	}

	for i := range s.Backends {
		prefix := "backend." + s.Backends[i].Kind.String() + "."
		if v := cfg.GetString(prefix + "model"); v != "" {
			s.Backends[i].Model = v
		}
		s.Backends[i].BaseURL = cfg.GetString(prefix + "base_url")
		s.Backends[i].APIKey = cfg.GetString(prefix + "api_key")
		s.Backends[i].BinaryPath = cfg.GetString(prefix + "binary")
		if s.Backends[i].Kind == domain.BackendLlamaCpp {
			if v := cfg.GetString(prefix + "model_path"); v != "" {
				s.Backends[i].Model = v
			}
		}
	}
	if v := os.Getenv("OPENROUTER_API_KEY"); v != "" {
		for i := range s.Backends {
			if s.Backends[i].Kind == domain.BackendOpenRouter {
				s.Backends[i].APIKey = v
			}
		}
	}

	s.SpeechModelPath = cfg.GetString("speech.model")
	if v := cfg.GetString("speech.voice"); v != "" {
		s.TTSVoice = v
	}
	s.Verbose = cfg.GetBool("verbose")

	s.Normalise()
	return s
}

// buildEmbedder selects the embedding provider. The hash provider is
// the offline default; unknown providers fall back to it with a
// warning rather than failing startup.
func buildEmbedder(cfg domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	switch cfg.Provider {
	case domain.EmbeddingHash, "":
		return hashembed.New(hashembed.DefaultDimensions), nil
	case domain.EmbeddingOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		}), nil
	case domain.EmbeddingOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
	default:
		logger.Warn("Unknown embedding provider %q, using hash embeddings", cfg.Provider)
		return hashembed.New(hashembed.DefaultDimensions), nil
	}
}

// buildBackends constructs the generation fallback chain in priority
// order. Backends that cannot be configured are left out of the chain
// rather than failing startup; a chain can legitimately be empty when
// the user only ingests and searches.
func buildBackends(settings domain.Settings) []driven.GenerationBackend {
	var backends []driven.GenerationBackend
	for _, b := range settings.Backends {
		switch b.Kind {
		case domain.BackendOpenRouter:
			backend, err := openrouter.New(openrouter.Config{
				APIKey:  b.APIKey,
				BaseURL: b.BaseURL,
				Model:   b.Model,
			})
			if err != nil {
				logger.Debug("OpenRouter unavailable: %v", err)
				continue
			}
			backends = append(backends, backend)
		case domain.BackendOllama:
			backends = append(backends, ollama.New(ollama.Config{
				BaseURL: b.BaseURL,
				Model:   b.Model,
			}))
		case domain.BackendLlamaCpp:
			backend, err := llamacpp.New(llamacpp.Config{
				ModelPath: b.Model,
				Binary:    b.BinaryPath,
			})
			if err != nil {
				logger.Debug("llama.cpp unavailable: %v", err)
				continue
			}
			backends = append(backends, backend)
		}
	}
	return backends
}

// loadIndex rebuilds the in-memory vector index from the persistent
// store. The SQLite store is the source of truth; the index is a
// derived cache rebuilt on every start.
func loadIndex(ctx context.Context, store *sqlite.Store, index *memory.Index) error {
	chunks, err := store.ListChunks(ctx)
	if err != nil {
		return err
	}
	for _, chunk := range chunks {
		if err := index.Add(ctx, chunk); err != nil {
			return err
		}
	}

	model, err := store.Meta(ctx, services.MetaEmbeddingModel)
	if err != nil {
		return err
	}
	index.SetModel(model)

	logger.Debug("Index loaded: %d chunks (model %q)", index.Len(), model)
	return nil
}

// startCorpusWatcher flags corpus changes while the process runs. The
// watcher only reports staleness; re-ingestion stays an explicit user
// action.
func startCorpusWatcher(ctx context.Context, corpusDir string) {
	if corpusDir == "" {
		return
	}
	if _, err := os.Stat(corpusDir); err != nil {
		return
	}

	w, err := watcher.New(corpusDir)
	if err != nil {
		logger.Debug("Corpus watcher unavailable: %v", err)
		return
	}
	go w.Run(ctx)
	go func() {
		for change := range w.Changes() {
			if change.Removed {
				logger.Warn("Corpus file removed: %s (run 'qadi ingest' to refresh)", change.Path)
			} else {
				logger.Warn("Corpus file changed: %s (run 'qadi ingest' to refresh)", change.Path)
			}
		}
	}()
}
