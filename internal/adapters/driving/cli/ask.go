package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qadi-labs/qadi-cli/internal/core/domain"
)

var (
	askTopK int
	askJSON bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a legal question",
	Long: `Answers a legal question from the ingested corpus. The answer cites
the source law and article for every supporting passage. Questions can
be asked in Arabic or English.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of passages to retrieve (0 = default)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if askService == nil {
		return errors.New("ask service not configured")
	}

	answer, err := askService.Ask(cmd.Context(), domain.Query{
		Text: args[0],
		TopK: askTopK,
	})
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		data, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal answer: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printAnswer(cmd, answer)
	return nil
}

func printAnswer(cmd *cobra.Command, answer *domain.Answer) {
	cmd.Println(strings.TrimSpace(answer.Text))
	cmd.Println()
	printSources(cmd, answer.Sources)
	cmd.Printf("Answered by: %s\n", answer.Backend)
}

func printSources(cmd *cobra.Command, sources []domain.RetrievedChunk) {
	if len(sources) == 0 {
		return
	}
	cmd.Println("Sources:")
	for i := range sources {
		src := sources[i].Chunk
		if src.Article != "" {
			cmd.Printf("  [%d] %s, Article %s\n", i+1, src.Law, src.Article)
		} else {
			cmd.Printf("  [%d] %s\n", i+1, src.Law)
		}
	}
	cmd.Println()
}
