// Package cli implements the qadi command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/qadi-labs/qadi-cli/internal/core/domain"
	"github.com/qadi-labs/qadi-cli/internal/core/ports/driven"
	"github.com/qadi-labs/qadi-cli/internal/core/ports/driving"
	"github.com/qadi-labs/qadi-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services the commands operate on. Wired once at startup by
// SetServices; commands fail with a clear error when their service is
// missing.
var (
	ingestService   driving.IngestService
	retrieveService driving.RetrieveService
	askService      driving.AskService
	compareService  driving.CompareService
	caseService     driving.CaseAnalysisService
	generateService driving.GenerateService
	voiceService    driving.VoiceService

	configStore driven.ConfigStore
	appSettings domain.Settings
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "qadi",
	Short: "Omani legal assistant",
	Long: `Qadi is a retrieval-grounded assistant for Omani law.

It ingests a directory of PDF statutes into a local index and answers
legal questions from that corpus, with the source law and article
cited for every answer. It also compares laws on a topic, analyses
case scenarios and generates legal documents.

All answers are grounded in the ingested corpus: run 'qadi ingest'
before asking questions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose || appSettings.Verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Services bundles everything the commands need.
type Services struct {
	Ingest   driving.IngestService
	Retrieve driving.RetrieveService
	Ask      driving.AskService
	Compare  driving.CompareService
	Case     driving.CaseAnalysisService
	Generate driving.GenerateService
	Voice    driving.VoiceService

	Config   driven.ConfigStore
	Settings domain.Settings
}

// SetServices wires the services the commands use.
func SetServices(s Services) {
	ingestService = s.Ingest
	retrieveService = s.Retrieve
	askService = s.Ask
	compareService = s.Compare
	caseService = s.Case
	generateService = s.Generate
	voiceService = s.Voice
	configStore = s.Config
	appSettings = s.Settings
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
