package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/qadi-labs/qadi-cli/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Launch the interactive chat session",
	Long: `Launch an interactive terminal chat with the legal assistant.

Every answer is grounded in the ingested statutes and cites its source
articles. Questions can be asked in Arabic or English. Comparison
requests and case scenarios are routed to those modules automatically.

Controls:
  Enter - Ask
  Esc   - Quit`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if askService == nil {
		return errors.New("ask service not configured")
	}

	// Panic recovery keeps the stack trace readable outside the
	// alternate screen.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	chat, err := tui.NewChat(&tui.Ports{
		Ask:      askService,
		Retrieve: retrieveService,
		Compare:  compareService,
		Analyze:  caseService,
	})
	if err != nil {
		return fmt.Errorf("failed to create chat: %w", err)
	}
	chat.WithContext(cmd.Context())

	p := tea.NewProgram(chat, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat error: %w", err)
	}
	return nil
}
