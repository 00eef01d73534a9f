package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var compareOut string

var compareCmd = &cobra.Command{
	Use:   "compare [request]",
	Short: "Compare two or more laws on a topic",
	Long: `Compares laws on a topic described in free text, for example:

  qadi compare "compare the labor law and civil law on termination"

The laws and the topic are extracted from the request, each law's
relevant passages are retrieved and summarised, and a side-by-side
report is produced. At least two laws must be named.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVarP(&compareOut, "out", "o", "", "directory to save the comparison report (default: current)")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	if compareService == nil {
		return errors.New("compare service not configured")
	}

	comparison, artifact, err := compareService.Compare(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("compare failed: %w", err)
	}

	cmd.Printf("Topic: %s\n", comparison.Topic)
	cmd.Println()
	for _, law := range comparison.Laws {
		cmd.Printf("%s:\n", law.Name)
		for _, point := range law.Points {
			cmd.Printf("  - %s\n", point)
		}
		cmd.Println()
	}

	return saveArtifact(cmd, artifact, compareOut)
}
