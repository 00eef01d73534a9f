package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	analyzeFile string
	analyzeOut  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [scenario]",
	Short: "Analyse a legal case scenario",
	Long: `Analyses a free-text case scenario against the ingested statutes.
The case category is detected from the wording, the relevant articles
are retrieved, and a structured report is produced citing the articles
the analysis relies on.

Long scenarios can be read from a file with --file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "read the scenario from a file")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "directory to save the case report (default: current)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if caseService == nil {
		return errors.New("case analysis service not configured")
	}

	scenario := ""
	switch {
	case analyzeFile != "":
		data, err := os.ReadFile(analyzeFile)
		if err != nil {
			return fmt.Errorf("failed to read scenario file: %w", err)
		}
		scenario = string(data)
	case len(args) > 0:
		scenario = args[0]
	default:
		return errors.New("no scenario: pass one as an argument or via --file")
	}

	analysis, artifact, err := caseService.Analyze(cmd.Context(), scenario)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	cmd.Printf("Case type: %s\n", analysis.CaseType)
	cmd.Println()
	cmd.Println(strings.TrimSpace(analysis.Analysis.Text))
	cmd.Println()
	if len(analysis.CitedArticles) > 0 {
		cmd.Printf("Cited articles: %s\n", strings.Join(analysis.CitedArticles, ", "))
	}
	printSources(cmd, analysis.Analysis.Sources)

	return saveArtifact(cmd, artifact, analyzeOut)
}
