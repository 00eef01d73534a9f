package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [dir]",
	Short: "Build the corpus index from a directory of PDF statutes",
	Long: `Extracts text from every PDF in the directory, splits it into
overlapping chunks, embeds them and stores the result in the local
index. Files that fail to parse are skipped and reported; they never
abort the batch.

When no directory is given, the configured corpus directory is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	dir := appSettings.CorpusDir
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		return errors.New("no corpus directory: pass one or set corpus.dir")
	}

	report, err := ingestService.Ingest(cmd.Context(), dir)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested %d file(s), %d chunk(s).\n", report.Files, report.Chunks)
	for _, skip := range report.Skipped {
		cmd.Printf("  skipped: %s (%s)\n", skip.Path, skip.Reason)
	}
	return nil
}
