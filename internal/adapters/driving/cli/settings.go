package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/qadi-labs/qadi-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the corpus location, embedding provider,
generation backends and speech options.

Settings live in ~/.qadi/config.toml and can be edited directly; the
subcommands here cover the common cases.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a configuration value by its dotted key, for example:

  qadi settings set corpus.dir ./statutes
  qadi settings set embedding.provider ollama
  qadi settings set backend.ollama.model llama3

Numbers and booleans are stored typed, and comma-separated values are
stored as lists:

  qadi settings set chunk.size 800
  qadi settings set backend.order openrouter,ollama

Changes take effect on the next run.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeyCmd = &cobra.Command{
	Use:   "key [openrouter|openai]",
	Short: "Set an API key",
	Long: `Prompt for an API key and store it in the config. The key is read
without echo when run in a terminal.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsKey,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeyCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	s := appSettings

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Corpus]")
	cmd.Printf("  Directory: %s\n", s.CorpusDir)
	cmd.Printf("  Chunk size: %d (overlap %d)\n", s.ChunkSize, s.ChunkOverlap)
	cmd.Printf("  Top K: %d\n", s.TopK)
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Provider: %s\n", s.Embedding.Provider)
	cmd.Printf("  Model: %s\n", s.Embedding.Model)
	if s.Embedding.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", s.Embedding.BaseURL)
	}
	if s.Embedding.Provider == domain.EmbeddingOpenAI {
		cmd.Printf("  API Key: %s\n", maskAPIKey(s.Embedding.APIKey))
	}
	cmd.Println()

	cmd.Println("[Backends]")
	for i, b := range s.Backends {
		cmd.Printf("  %d. %s\n", i+1, b.Kind.Description())
		if b.Model != "" {
			cmd.Printf("     Model: %s\n", b.Model)
		}
		if b.Kind.IsLocal() && b.BaseURL != "" {
			cmd.Printf("     Base URL: %s\n", b.BaseURL)
		}
		if b.Kind.RequiresAPIKey() {
			cmd.Printf("     API Key: %s\n", maskAPIKey(b.APIKey))
		}
	}
	cmd.Println()

	cmd.Println("[Speech]")
	if s.SpeechModelPath != "" {
		cmd.Printf("  Model: %s\n", s.SpeechModelPath)
	} else {
		cmd.Println("  Model: (not set, voice disabled)")
	}
	if s.TTSVoice != "" {
		cmd.Printf("  Voice: %s\n", s.TTSVoice)
	} else {
		cmd.Println("  Voice: (auto, from answer language)")
	}

	if configStore != nil {
		cmd.Println()
		cmd.Printf("Config file: %s\n", configStore.Path())
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key := args[0]
	if err := configStore.Set(key, coerceValue(args[1])); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("Set %s.\n", key)
	return nil
}

// coerceValue turns the command-line string into the type the config
// readers expect: integers and booleans are stored typed, and values
// with commas become string lists.
func coerceValue(raw string) any {
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	if strings.Contains(raw, ",") {
		parts := strings.Split(raw, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			out = append(out, strings.TrimSpace(p))
		}
		return out
	}
	return raw
}

func runSettingsKey(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	var key string
	switch args[0] {
	case "openrouter":
		key = "backend.openrouter.api_key"
	case "openai":
		key = "embedding.api_key"
	default:
		return fmt.Errorf("unknown provider %q: expected openrouter or openai", args[0])
	}

	cmd.Printf("Enter %s API key: ", args[0])
	value := readPassword()
	cmd.Println()
	if value == "" {
		return errors.New("no key entered")
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to store key: %w", err)
	}

	cmd.Println("API key saved.")
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
