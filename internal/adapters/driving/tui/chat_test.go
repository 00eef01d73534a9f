package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qadi-labs/qadi-cli/internal/core/domain"
	"github.com/qadi-labs/qadi-cli/internal/core/services"
)

type mockAskService struct {
	answer   *domain.Answer
	err      error
	gotQuery domain.Query
}

func (m *mockAskService) Ask(_ context.Context, query domain.Query) (*domain.Answer, error) {
	m.gotQuery = query
	return m.answer, m.err
}

type mockCompareService struct {
	comparison *domain.Comparison
	gotRequest string
}

func (m *mockCompareService) Compare(_ context.Context, request string) (*domain.Comparison, *domain.Artifact, error) {
	m.gotRequest = request
	return m.comparison, nil, nil
}

type mockCaseService struct {
	analysis    *domain.CaseAnalysis
	gotScenario string
}

func (m *mockCaseService) Analyze(_ context.Context, scenario string) (*domain.CaseAnalysis, *domain.Artifact, error) {
	m.gotScenario = scenario
	return m.analysis, nil, nil
}

// classifier returns the production intent classifier so routing tests
// exercise real keyword matching.
func classifier() *services.RetrieveService {
	return services.NewRetrieveService(nil, nil, nil, 0)
}

func newTestChat(t *testing.T, ask *mockAskService) Chat {
	t.Helper()
	chat, err := NewChat(&Ports{Ask: ask})
	require.NoError(t, err)

	model, _ := chat.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return model.(Chat)
}

func TestNewChat_InvalidPorts(t *testing.T) {
	chat, err := NewChat(&Ports{})
	assert.ErrorIs(t, err, ErrMissingAskService)
	assert.Nil(t, chat)
}

func TestChat_Init(t *testing.T) {
	chat, err := NewChat(&Ports{Ask: &mockAskService{}})
	require.NoError(t, err)
	assert.NotNil(t, chat.Init())
}

func TestChat_Update_WindowSize(t *testing.T) {
	chat := newTestChat(t, &mockAskService{})

	assert.True(t, chat.ready)
	assert.Equal(t, 80, chat.viewport.Width)
	assert.GreaterOrEqual(t, chat.viewport.Height, 3)
}

func TestChat_Update_Quit(t *testing.T) {
	chat := newTestChat(t, &mockAskService{})

	_, cmd := chat.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestChat_Submit(t *testing.T) {
	ask := &mockAskService{
		answer: &domain.Answer{
			Text: "Thirty days per year.",
			Sources: []domain.RetrievedChunk{
				{Chunk: domain.Chunk{Law: "Labor Law", Article: "39"}},
			},
			Backend: "openrouter",
		},
	}
	chat := newTestChat(t, ask)
	chat.input.SetValue("How many days of annual leave?")

	model, cmd := chat.Update(tea.KeyMsg{Type: tea.KeyEnter})
	chat = model.(Chat)

	require.NotNil(t, cmd)
	assert.True(t, chat.waiting)
	require.Len(t, chat.transcript, 1)
	assert.Equal(t, "How many days of annual leave?", chat.transcript[0].question)
	assert.Empty(t, chat.input.Value())
}

func TestChat_Submit_EmptyInput(t *testing.T) {
	chat := newTestChat(t, &mockAskService{})

	model, cmd := chat.Update(tea.KeyMsg{Type: tea.KeyEnter})
	chat = model.(Chat)

	assert.Nil(t, cmd)
	assert.Empty(t, chat.transcript)
	assert.False(t, chat.waiting)
}

func TestChat_AnswerMsg(t *testing.T) {
	chat := newTestChat(t, &mockAskService{})
	chat.transcript = append(chat.transcript, turn{question: "leave days?"})
	chat.waiting = true

	answer := &domain.Answer{
		Text: "Thirty days.",
		Sources: []domain.RetrievedChunk{
			{Chunk: domain.Chunk{Law: "Labor Law", Article: "39"}},
		},
	}
	model, _ := chat.Update(answerMsg{answer: answer})
	chat = model.(Chat)

	assert.False(t, chat.waiting)
	require.Len(t, chat.transcript, 1)
	assert.Equal(t, answer, chat.transcript[0].answer)

	view := chat.renderTranscript()
	assert.Contains(t, view, "Thirty days.")
	assert.Contains(t, view, "Labor Law, Article 39")
}

func TestChat_AnswerMsg_Error(t *testing.T) {
	chat := newTestChat(t, &mockAskService{})
	chat.transcript = append(chat.transcript, turn{question: "q"})
	chat.waiting = true

	model, _ := chat.Update(answerMsg{err: errors.New("all backends failed")})
	chat = model.(Chat)

	assert.False(t, chat.waiting)
	require.Len(t, chat.transcript, 1)
	require.Error(t, chat.transcript[0].err)
	assert.Contains(t, chat.renderTranscript(), "all backends failed")
}

func TestChat_RoutesComparisonToCompareModule(t *testing.T) {
	ask := &mockAskService{}
	compare := &mockCompareService{comparison: &domain.Comparison{
		Topic: "termination",
		Laws: []domain.ComparedLaw{
			{
				Name:    "labor law",
				Points:  []string{"Thirty days notice."},
				Sources: []domain.RetrievedChunk{{Chunk: domain.Chunk{Law: "Labor Law", Article: "40"}}},
			},
			{Name: "civil law", Points: []string{"Contract terms govern."}},
		},
	}}
	chat, err := NewChat(&Ports{Ask: ask, Retrieve: classifier(), Compare: compare})
	require.NoError(t, err)

	request := "Compare the Labor Law and Civil Law on termination"
	msg := chat.dispatch(request)()

	am, ok := msg.(answerMsg)
	require.True(t, ok)
	assert.Equal(t, request, compare.gotRequest)
	assert.Empty(t, ask.gotQuery.Text)
	assert.Contains(t, am.answer.Text, "Topic: termination")
	assert.Contains(t, am.answer.Text, "Thirty days notice.")
	require.Len(t, am.answer.Sources, 1)
	assert.Equal(t, "Labor Law", am.answer.Sources[0].Chunk.Law)
}

func TestChat_RoutesScenarioToCaseModule(t *testing.T) {
	analyze := &mockCaseService{analysis: &domain.CaseAnalysis{
		CaseType: "criminal_law",
		Analysis: domain.Answer{
			Text:    "Article 10 applies.",
			Sources: []domain.RetrievedChunk{{Chunk: domain.Chunk{Law: "Penal Code", Article: "10"}}},
		},
	}}
	chat, err := NewChat(&Ports{Ask: &mockAskService{}, Retrieve: classifier(), Analyze: analyze})
	require.NoError(t, err)

	scenario := "This happened to me: my employer withheld two months of wages"
	msg := chat.dispatch(scenario)()

	am, ok := msg.(answerMsg)
	require.True(t, ok)
	assert.Equal(t, scenario, analyze.gotScenario)
	assert.Contains(t, am.answer.Text, "Case type: criminal_law")
	assert.Contains(t, am.answer.Text, "Article 10 applies.")
	require.Len(t, am.answer.Sources, 1)
}

func TestChat_DocumentRequestGetsGenerateHint(t *testing.T) {
	ask := &mockAskService{}
	chat, err := NewChat(&Ports{Ask: ask, Retrieve: classifier()})
	require.NoError(t, err)

	msg := chat.dispatch("draft an employment contract for me")()

	am, ok := msg.(answerMsg)
	require.True(t, ok)
	assert.Contains(t, am.answer.Text, "qadi generate")
	assert.Empty(t, ask.gotQuery.Text)
}

func TestChat_ClassifiedIntentReachesAsk(t *testing.T) {
	ask := &mockAskService{answer: &domain.Answer{Text: "Imprisonment."}}
	chat, err := NewChat(&Ports{Ask: ask, Retrieve: classifier()})
	require.NoError(t, err)

	chat.dispatch("What does Article 10 say about theft?")()

	assert.Equal(t, domain.IntentArticleLookup, ask.gotQuery.Intent)
}

func TestChat_ComparisonWithoutCompareModuleFallsBack(t *testing.T) {
	ask := &mockAskService{answer: &domain.Answer{Text: "They differ."}}
	chat, err := NewChat(&Ports{Ask: ask, Retrieve: classifier()})
	require.NoError(t, err)

	chat.dispatch("compare the labor law and the civil law")()

	assert.Equal(t, domain.IntentComparison, ask.gotQuery.Intent)
}

func TestChat_View(t *testing.T) {
	chat := newTestChat(t, &mockAskService{})

	view := chat.View()
	assert.Contains(t, view, "Qadi Legal Assistant")
	assert.Contains(t, view, "esc: quit")
}

func TestSourceLabel(t *testing.T) {
	assert.Equal(t, "Labor Law, Article 39", sourceLabel(domain.Chunk{Law: "Labor Law", Article: "39"}))
	assert.Equal(t, "Labor Law", sourceLabel(domain.Chunk{Law: "Labor Law"}))
}
