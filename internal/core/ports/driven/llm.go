package driven

import "context"

// GenerationBackend produces answer text from a prompt. Backends are
// capability-abstracted and tried in configured priority order: one
// attempt each, immediate fallback to the next on error.
//
// Implementations:
//   - OpenRouter (hosted, OpenAI-compatible chat API)
//   - Ollama (local model server)
//   - llama.cpp (local binary inference)
type GenerationBackend interface {
	// Generate produces a completion for the prompt. The system prompt
	// constrains the model to the supplied context.
	Generate(ctx context.Context, systemPrompt, prompt string, opts GenerateOptions) (string, error)

	// Name identifies the backend for answer attribution and logging.
	Name() string

	// ModelName returns the model identifier in use.
	ModelName() string

	// Ping validates the backend is reachable with a lightweight
	// request, without running inference where possible.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64

	// StopWords are sequences that stop generation when encountered.
	StopWords []string
}
