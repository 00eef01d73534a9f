package domain

const unknownDescription = "Unknown"

// BackendKind identifies a generation backend.
type BackendKind string

// Available generation backends, in default priority order.
const (
	// BackendOpenRouter is the hosted OpenRouter API.
	BackendOpenRouter BackendKind = "openrouter"

	// BackendOllama is a local Ollama server.
	BackendOllama BackendKind = "ollama"

	// BackendLlamaCpp is local binary inference via llama.cpp.
	BackendLlamaCpp BackendKind = "llamacpp"
)

// IsValid returns true if the backend kind is recognised.
func (b BackendKind) IsValid() bool {
	switch b {
	case BackendOpenRouter, BackendOllama, BackendLlamaCpp:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this backend needs an API key.
func (b BackendKind) RequiresAPIKey() bool {
	return b == BackendOpenRouter
}

// IsLocal returns true if this backend runs locally.
func (b BackendKind) IsLocal() bool {
	return b == BackendOllama || b == BackendLlamaCpp
}

// String returns the string representation.
func (b BackendKind) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b BackendKind) Description() string {
	switch b {
	case BackendOpenRouter:
		return "OpenRouter (hosted)"
	case BackendOllama:
		return "Ollama (local server)"
	case BackendLlamaCpp:
		return "llama.cpp (local binary)"
	default:
		return unknownDescription
	}
}

// EmbeddingProvider identifies an embedding service.
type EmbeddingProvider string

// Available embedding providers.
const (
	// EmbeddingHash is the built-in deterministic feature-hash
	// embedder. It needs no network and is the safe default.
	EmbeddingHash EmbeddingProvider = "hash"

	// EmbeddingOllama is a local Ollama embedding model.
	EmbeddingOllama EmbeddingProvider = "ollama"

	// EmbeddingOpenAI is an OpenAI-compatible embedding API.
	EmbeddingOpenAI EmbeddingProvider = "openai"
)

// IsValid returns true if the embedding provider is recognised.
func (p EmbeddingProvider) IsValid() bool {
	switch p {
	case EmbeddingHash, EmbeddingOllama, EmbeddingOpenAI:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p EmbeddingProvider) String() string {
	return string(p)
}

// Default pipeline tuning values. Chunk sizing follows the original
// corpus loader; the minimum discards window tails too small to carry
// a legal clause.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
	DefaultChunkMinimum = 100
	DefaultTopK         = 4
)

// Settings is the explicit pipeline context. It replaces ambient
// global state: one Settings value is built at startup and passed into
// every pipeline call.
type Settings struct {
	// CorpusDir is the directory of PDF statutes.
	CorpusDir string

	// DataDir is where the SQLite index lives.
	DataDir string

	// ChunkSize and ChunkOverlap control ingestion windowing, in
	// characters. Overlap prevents cutting an article at a boundary.
	ChunkSize    int
	ChunkOverlap int

	// TopK is the default retrieval depth.
	TopK int

	// Embedding selects the embedding provider and model. Query and
	// corpus embeddings must come from one model version.
	Embedding EmbeddingSettings

	// Backends is the generation fallback chain in priority order.
	Backends []BackendSettings

	// SpeechModelPath is the local speech-recognition model path.
	SpeechModelPath string

	// TTSVoice is the text-to-speech voice identifier. Empty selects a
	// voice from the answer language.
	TTSVoice string

	// Verbose enables debug logging.
	Verbose bool
}

// EmbeddingSettings selects an embedding provider and model.
type EmbeddingSettings struct {
	Provider EmbeddingProvider
	Model    string
	BaseURL  string
	APIKey   string
}

// BackendSettings configures one generation backend.
type BackendSettings struct {
	Kind    BackendKind
	Model   string
	BaseURL string
	APIKey  string

	// BinaryPath is the llama.cpp executable, used only by the
	// llamacpp backend.
	BinaryPath string
}

// DefaultSettings returns safe defaults: offline hash embeddings and
// the openrouter -> ollama -> llama.cpp fallback chain.
func DefaultSettings() Settings {
	return Settings{
		CorpusDir:    "data",
		ChunkSize:    DefaultChunkSize,
		ChunkOverlap: DefaultChunkOverlap,
		TopK:         DefaultTopK,
		Embedding: EmbeddingSettings{
			Provider: EmbeddingHash,
			Model:    "hash-v1",
		},
		Backends: []BackendSettings{
			{Kind: BackendOpenRouter, Model: "openai/gpt-3.5-turbo"},
			{Kind: BackendOllama, Model: "llama2"},
			{Kind: BackendLlamaCpp, Model: "llama-2-7b-chat"},
		},
	}
}

// Normalise fills zero values with defaults and clamps the overlap
// below the chunk size.
func (s *Settings) Normalise() {
	if s.ChunkSize <= 0 {
		s.ChunkSize = DefaultChunkSize
	}
	if s.ChunkOverlap < 0 {
		s.ChunkOverlap = DefaultChunkOverlap
	}
	if s.ChunkOverlap >= s.ChunkSize {
		s.ChunkOverlap = s.ChunkSize / 4
	}
	if s.TopK <= 0 {
		s.TopK = DefaultTopK
	}
	if s.Embedding.Provider == "" {
		s.Embedding.Provider = EmbeddingHash
	}
	if len(s.Backends) == 0 {
		s.Backends = DefaultSettings().Backends
	}
}
