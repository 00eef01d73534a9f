// Package llamacpp provides a generation backend that shells out to
// the llama.cpp CLI for fully offline inference.
package llamacpp

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/qadi-labs/qadi-cli/internal/core/domain"
	"github.com/qadi-labs/qadi-cli/internal/core/ports/driven"
)

// Ensure Backend implements the interface.
var _ driven.GenerationBackend = (*Backend)(nil)

// DefaultBinary is the llama.cpp CLI binary name.
const DefaultBinary = "llama-cli"

// defaultContextSize matches what small quantised models comfortably
// handle on CPU.
const defaultContextSize = 4096

// Config holds configuration for the llama.cpp backend.
type Config struct {
	// ModelPath is the path to a GGUF model file (required).
	ModelPath string

	// Binary is the llama.cpp CLI binary (default: llama-cli).
	Binary string

	// ContextSize is the context window in tokens (default: 4096).
	ContextSize int
}

// Backend generates text by invoking the llama.cpp CLI as a
// subprocess.
type Backend struct {
	runner      driven.CommandRunner
	binary      string
	modelPath   string
	contextSize int
}

// execRunner runs commands via os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// New creates a new llama.cpp backend.
func New(cfg Config) (*Backend, error) {
	return NewWithRunner(cfg, execRunner{})
}

// NewWithRunner creates a backend with a custom command runner.
func NewWithRunner(cfg Config, runner driven.CommandRunner) (*Backend, error) {
	if cfg.ModelPath == "" {
		return nil, fmt.Errorf("llamacpp: model path is required")
	}
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, fmt.Errorf("llamacpp: model file not found: %w", err)
	}
	if cfg.Binary == "" {
		cfg.Binary = DefaultBinary
	}
	if cfg.ContextSize == 0 {
		cfg.ContextSize = defaultContextSize
	}

	return &Backend{
		runner:      runner,
		binary:      cfg.Binary,
		modelPath:   cfg.ModelPath,
		contextSize: cfg.ContextSize,
	}, nil
}

// Generate produces a completion by running the CLI once per request.
func (b *Backend) Generate(ctx context.Context, systemPrompt, prompt string, opts driven.GenerateOptions) (string, error) {
	fullPrompt := prompt
	if systemPrompt != "" {
		fullPrompt = systemPrompt + "\n\n" + prompt
	}

	args := []string{
		"-m", b.modelPath,
		"-c", strconv.Itoa(b.contextSize),
		"-p", fullPrompt,
		"--no-display-prompt",
		"--simple-io",
	}
	if opts.MaxTokens > 0 {
		args = append(args, "-n", strconv.Itoa(opts.MaxTokens))
	}
	if opts.Temperature > 0 {
		args = append(args, "--temp", strconv.FormatFloat(opts.Temperature, 'f', -1, 64))
	}
	for _, stop := range opts.StopWords {
		args = append(args, "-r", stop)
	}

	out, err := b.runner.Run(ctx, b.binary, args...)
	if err != nil {
		return "", fmt.Errorf("llamacpp: run %s: %w", b.binary, err)
	}

	return strings.TrimSpace(string(out)), nil
}

// Name identifies the backend.
func (b *Backend) Name() string {
	return string(domain.BackendLlamaCpp)
}

// ModelName returns the model file name without extension.
func (b *Backend) ModelName() string {
	base := filepath.Base(b.modelPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Ping verifies the CLI binary is callable.
func (b *Backend) Ping(ctx context.Context) error {
	if _, err := b.runner.Run(ctx, b.binary, "--version"); err != nil {
		return fmt.Errorf("llamacpp: %s not available: %w", b.binary, err)
	}
	return nil
}

// Close releases resources.
func (b *Backend) Close() error {
	return nil
}
