package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/qadi-labs/qadi-cli/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads LLM prompts from user-editable files on disk.
// Prompts are loaded from a configurable directory with fallback to
// embedded defaults.
//
// The store uses lazy initialisation. Files are only created when first
// accessed, not in the constructor, which makes testing easier and
// avoids unexpected I/O.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains embedded default prompts. These are used when
// user files don't exist and as the initial content for new files.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptQASystem: `You are a legal assistant specialized in Omani laws. Answer the question based ONLY on the context provided.
If the context doesn't contain the information needed to answer the question, say "I don't have enough information to answer this question based on the Omani legal documents I have access to."
Do not make up or infer information that is not explicitly stated in the context.`,

	driven.PromptQA: `Context:
%s

Question:
%s

Answer:
`,

	driven.PromptCompareExtract: `You are a smart legal assistant specializing in Omani laws. Analyze the user's request and identify the laws they want to compare.

User request: %s

Answer in exactly this format:
Laws: <comma-separated list of laws>
Topic: <the main topic of comparison>`,

	driven.PromptCompareSummarise: `You are a smart legal assistant specializing in Omani laws. Summarize the key points of the specified law about a specific topic.

Law: %s
Topic: %s

Law content:
%s

Present the key points related to the topic, separated by the | character.

Key points:`,

	driven.PromptCaseAnalysis: `You are a legal assistant specialized in Omani laws. Analyze the following case scenario using ONLY the legal provisions in the context. Identify the applicable laws and articles, the legal implications for each party, and the likely outcome. If the context does not cover the scenario, say so.

Context:
%s

Scenario:
%s

Analysis:
`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.qadi/prompts/.
//
// The constructor does not perform any I/O. Directory creation and file
// writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".qadi", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory and creates default
// files. Returns the cached value if available, otherwise loads from
// file. Falls back to the embedded default when the file is missing.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	// Load from file (no lock held during I/O)
	prompt, err := s.loadFromFile(name)
	if err != nil {
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	// Double-check to avoid overwriting concurrent loads
	s.mu.Lock()
	if _, ok := s.cache[name]; !ok {
		s.cache[name] = prompt
	} else {
		prompt = s.cache[name]
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory and default files.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README file explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil // Already exists or stat error (ignore)
	}

	content := `# Qadi Prompts

This directory contains customisable prompts used by Qadi's LLM features.

## Files

- ` + "`qa_system.txt`" + ` - System prompt constraining answers to retrieved context
- ` + "`qa.txt`" + ` - Question answering template
- ` + "`compare_extract.txt`" + ` - Identifies laws and topic in a comparison request
- ` + "`compare_summarise.txt`" + ` - Summarises one law's position on a topic
- ` + "`case_analysis.txt`" + ` - Analyses a case scenario against retrieved statutes

## Customisation

Edit any file to customise LLM behaviour. Changes take effect on the next
command or after restarting the chat session.

## Format Placeholders

Prompts use Go fmt placeholders:
- ` + "`%s`" + ` - String (e.g., the retrieved context or the question)

Ensure customised prompts maintain placeholders in the correct positions.
`
	return os.WriteFile(path, []byte(content), 0600)
}
