package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/qadi-labs/qadi-cli/internal/adapters/driving/tui/styles"
	"github.com/qadi-labs/qadi-cli/internal/core/domain"
)

// turn is one question/answer exchange in the transcript.
type turn struct {
	question string
	answer   *domain.Answer
	err      error
}

// answerMsg carries a completed answer back into the update loop.
type answerMsg struct {
	answer *domain.Answer
	err    error
}

// Chat is the Bubble Tea model for the chat session. It follows the
// Elm architecture: one question in flight at a time, the transcript
// grows monotonically.
type Chat struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	transcript []turn
	waiting    bool
	ready      bool

	width  int
	height int
}

// Ensure Chat implements tea.Model.
var _ tea.Model = (*Chat)(nil)

// NewChat creates the chat model with the given ports.
func NewChat(ports *Ports) (*Chat, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating chat: %w", err)
	}

	s := styles.DefaultStyles()

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a legal question (Arabic or English)"
	ti.CharLimit = 0
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Chat{
		ports:    ports,
		ctx:      context.Background(),
		styles:   s,
		input:    ti,
		viewport: viewport.New(0, 0),
		spinner:  sp,
	}, nil
}

// WithContext sets the context used for service calls.
func (c *Chat) WithContext(ctx context.Context) *Chat {
	if ctx != nil {
		c.ctx = ctx
	}
	return c
}

// Init starts the cursor blink.
func (c Chat) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key, window and answer events.
func (c Chat) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
		c.height = msg.Height
		c.ready = true
		_, frameH := c.styles.InputField.GetFrameSize()
		// header + input frame + help line
		reserved := 2 + frameH + 2
		c.viewport.Width = msg.Width
		c.viewport.Height = max(3, msg.Height-reserved)
		c.viewport.SetContent(c.renderTranscript())
		c.viewport.GotoBottom()
		return c, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return c, tea.Quit
		case tea.KeyEnter:
			return c.submit()
		}

	case answerMsg:
		c.waiting = false
		last := len(c.transcript) - 1
		if last >= 0 {
			c.transcript[last].answer = msg.answer
			c.transcript[last].err = msg.err
		}
		c.viewport.SetContent(c.renderTranscript())
		c.viewport.GotoBottom()
		return c, nil

	case spinner.TickMsg:
		if !c.waiting {
			return c, nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		return c, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	cmds = append(cmds, cmd)
	c.viewport, cmd = c.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return c, tea.Batch(cmds...)
}

// submit sends the current input as a question.
func (c Chat) submit() (tea.Model, tea.Cmd) {
	question := strings.TrimSpace(c.input.Value())
	if question == "" || c.waiting {
		return c, nil
	}

	c.transcript = append(c.transcript, turn{question: question})
	c.input.Reset()
	c.waiting = true
	c.viewport.SetContent(c.renderTranscript())
	c.viewport.GotoBottom()

	return c, tea.Batch(c.dispatch(question), c.spinner.Tick)
}

// dispatch classifies the input and routes it to the feature module
// owning that intent. Unrouted intents fall through to the question
// pipeline.
func (c Chat) dispatch(question string) tea.Cmd {
	intent := domain.IntentGeneral
	if c.ports.Retrieve != nil {
		intent = c.ports.Retrieve.Classify(question)
	}

	switch {
	case intent == domain.IntentComparison && c.ports.Compare != nil:
		return func() tea.Msg {
			comparison, _, err := c.ports.Compare.Compare(c.ctx, question)
			if err != nil {
				return answerMsg{err: err}
			}
			return answerMsg{answer: comparisonAnswer(comparison)}
		}

	case intent == domain.IntentCaseAnalysis && c.ports.Analyze != nil:
		return func() tea.Msg {
			analysis, _, err := c.ports.Analyze.Analyze(c.ctx, question)
			if err != nil {
				return answerMsg{err: err}
			}
			return answerMsg{answer: caseAnswer(analysis)}
		}

	case intent == domain.IntentDocumentRequest:
		// Drafting needs structured fields the chat can't collect.
		return func() tea.Msg {
			return answerMsg{answer: &domain.Answer{
				Text: "Document drafting runs outside chat. Run 'qadi generate contract' or 'qadi generate authorization' with the form flags.",
			}}
		}
	}

	return func() tea.Msg {
		answer, err := c.ports.Ask.Ask(c.ctx, domain.Query{Text: question, Intent: intent})
		return answerMsg{answer: answer, err: err}
	}
}

// comparisonAnswer flattens a comparison into transcript text.
func comparisonAnswer(comparison *domain.Comparison) *domain.Answer {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n", comparison.Topic)

	answer := &domain.Answer{}
	for _, law := range comparison.Laws {
		fmt.Fprintf(&b, "\n%s:\n", law.Name)
		for _, point := range law.Points {
			fmt.Fprintf(&b, "  - %s\n", point)
		}
		answer.Sources = append(answer.Sources, law.Sources...)
	}
	answer.Text = b.String()
	return answer
}

// caseAnswer flattens a case analysis into transcript text.
func caseAnswer(analysis *domain.CaseAnalysis) *domain.Answer {
	answer := analysis.Analysis
	answer.Text = fmt.Sprintf("Case type: %s\n\n%s", analysis.CaseType, analysis.Analysis.Text)
	return &answer
}

// View renders the chat layout.
func (c Chat) View() string {
	if !c.ready {
		return "Loading..."
	}

	header := c.styles.Title.Render("Qadi Legal Assistant")
	input := c.styles.InputField.Width(max(20, c.width-2)).Render(c.input.View())
	help := c.styles.Help.Render("enter: ask • esc: quit")

	return header + "\n" + c.viewport.View() + "\n" + input + "\n" + help
}

// renderTranscript formats the full conversation.
func (c Chat) renderTranscript() string {
	if len(c.transcript) == 0 {
		return c.styles.Muted.Render("Ask a question about Omani law. Answers cite the source articles.")
	}

	var b strings.Builder
	for i, t := range c.transcript {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(c.styles.Question.Render("You: ") + t.question + "\n")

		switch {
		case t.err != nil:
			b.WriteString(c.styles.Error.Render("Error: "+t.err.Error()) + "\n")
		case t.answer == nil:
			b.WriteString(c.styles.Muted.Render(c.spinner.View()+" thinking...") + "\n")
		default:
			b.WriteString(c.styles.Answer.Render(strings.TrimSpace(t.answer.Text)) + "\n")
			for _, src := range t.answer.Sources {
				b.WriteString(c.styles.Source.Render("  "+sourceLabel(src.Chunk)) + "\n")
			}
		}
	}
	return b.String()
}

func sourceLabel(chunk domain.Chunk) string {
	if chunk.Article != "" {
		return fmt.Sprintf("%s, Article %s", chunk.Law, chunk.Article)
	}
	return chunk.Law
}
