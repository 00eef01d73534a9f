package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qadi-labs/qadi-cli/internal/core/domain"
)

var (
	genFields  domain.DocumentFields
	genOut     string
	genPackage bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [contract|authorization|generic]",
	Short: "Generate a legal document",
	Long: `Generates a legal document from the given fields. No retrieval and
no language model are involved; field values are inserted into the
template verbatim.

Examples:
  qadi generate contract --first-party "ACME LLC" --second-party "Ahmed Al-Said" \
    --position "Engineer" --salary "800 OMR" --duration "2 years"

  qadi generate authorization --authorizer "Ahmed" --authorized "Salim" \
    --purpose "vehicle registration"`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	flags := generateCmd.Flags()
	flags.StringVar(&genFields.Title, "title", "", "document title")
	flags.StringVar(&genFields.Date, "date", "", "document date (default: today)")
	flags.StringVar(&genFields.FirstParty, "first-party", "", "first contracting party")
	flags.StringVar(&genFields.SecondParty, "second-party", "", "second contracting party")
	flags.StringVar(&genFields.Position, "position", "", "job position (contract)")
	flags.StringVar(&genFields.Salary, "salary", "", "salary (contract)")
	flags.StringVar(&genFields.Duration, "duration", "", "contract duration")
	flags.StringVar(&genFields.Authorizer, "authorizer", "", "authorizing party (authorization)")
	flags.StringVar(&genFields.Authorized, "authorized", "", "authorized party (authorization)")
	flags.StringVar(&genFields.Purpose, "purpose", "", "authorization purpose")
	flags.StringArrayVar(&genFields.Terms, "term", nil, "contract clause (repeatable, replaces defaults)")
	flags.StringArrayVar(&genFields.Body, "body", nil, "paragraph for generic documents (repeatable)")
	flags.StringVarP(&genOut, "out", "o", "", "directory to save the document (default: current)")
	flags.BoolVar(&genPackage, "package", false, "bundle the document with a plain-text copy in a zip")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if generateService == nil {
		return errors.New("generate service not configured")
	}

	kind := domain.TemplateKind(args[0])

	var (
		artifact *domain.Artifact
		err      error
	)
	if genPackage {
		artifact, err = generateService.GeneratePackage(kind, genFields)
	} else {
		artifact, err = generateService.Generate(kind, genFields)
	}
	if err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}

	return saveArtifact(cmd, artifact, genOut)
}
