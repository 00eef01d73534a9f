package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var voiceCmd = &cobra.Command{
	Use:   "voice [audio-file]",
	Short: "Ask a question from a recorded audio file",
	Long: `Transcribes the audio file, answers the transcribed question from
the corpus and synthesises the answer to speech. The spoken question
can be Arabic or English; the answer audio matches the answer's
language.

Requires a local whisper.cpp model (speech.model in the config) for
transcription and espeak-ng for synthesis.`,
	Args: cobra.ExactArgs(1),
	RunE: runVoice,
}

func init() {
	rootCmd.AddCommand(voiceCmd)
}

func runVoice(cmd *cobra.Command, args []string) error {
	if voiceService == nil {
		return errors.New("voice service not configured: set speech.model in the config")
	}

	answer, audioPath, err := voiceService.AskVoice(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("voice ask failed: %w", err)
	}

	cmd.Println(strings.TrimSpace(answer.Text))
	cmd.Println()
	printSources(cmd, answer.Sources)
	if audioPath != "" {
		cmd.Printf("Answer audio: %s\n", audioPath)
	}
	return nil
}
