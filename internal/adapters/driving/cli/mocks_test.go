package cli

import (
	"context"
	"time"

	"github.com/qadi-labs/qadi-cli/internal/core/domain"
)

// mockRetrieveService is a mock implementation of
// driving.RetrieveService.
type mockRetrieveService struct {
	results []domain.RetrievedChunk
	err     error
	gotK    int
}

func (m *mockRetrieveService) Retrieve(_ context.Context, _ string, k int) ([]domain.RetrievedChunk, error) {
	m.gotK = k
	return m.results, m.err
}

func (m *mockRetrieveService) Classify(_ string) domain.Intent {
	return domain.IntentGeneral
}

// mockAskService is a mock implementation of driving.AskService.
type mockAskService struct {
	answer *domain.Answer
	err    error
}

func (m *mockAskService) Ask(_ context.Context, _ domain.Query) (*domain.Answer, error) {
	return m.answer, m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	report    *domain.IngestReport
	documents []domain.Document
	err       error
	gotDir    string
}

func (m *mockIngestService) Ingest(_ context.Context, dir string) (*domain.IngestReport, error) {
	m.gotDir = dir
	return m.report, m.err
}

func (m *mockIngestService) Documents(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

// mockCompareService is a mock implementation of
// driving.CompareService.
type mockCompareService struct {
	comparison *domain.Comparison
	artifact   *domain.Artifact
	err        error
}

func (m *mockCompareService) Compare(_ context.Context, _ string) (*domain.Comparison, *domain.Artifact, error) {
	return m.comparison, m.artifact, m.err
}

// mockCaseService is a mock implementation of
// driving.CaseAnalysisService.
type mockCaseService struct {
	analysis *domain.CaseAnalysis
	artifact *domain.Artifact
	err      error
}

func (m *mockCaseService) Analyze(_ context.Context, _ string) (*domain.CaseAnalysis, *domain.Artifact, error) {
	return m.analysis, m.artifact, m.err
}

// mockGenerateService is a mock implementation of
// driving.GenerateService.
type mockGenerateService struct {
	artifact *domain.Artifact
	err      error
	gotKind  domain.TemplateKind
	packaged bool
}

func (m *mockGenerateService) Generate(kind domain.TemplateKind, _ domain.DocumentFields) (*domain.Artifact, error) {
	m.gotKind = kind
	return m.artifact, m.err
}

func (m *mockGenerateService) GeneratePackage(kind domain.TemplateKind, _ domain.DocumentFields) (*domain.Artifact, error) {
	m.gotKind = kind
	m.packaged = true
	return m.artifact, m.err
}

// mockVoiceService is a mock implementation of driving.VoiceService.
type mockVoiceService struct {
	answer    *domain.Answer
	audioPath string
	err       error
}

func (m *mockVoiceService) AskVoice(_ context.Context, _ string) (*domain.Answer, string, error) {
	return m.answer, m.audioPath, m.err
}

// setupTestServices wires mock services with canned data and returns a
// cleanup that restores the previous wiring.
func setupTestServices() func() {
	oldIngest := ingestService
	oldRetrieve := retrieveService
	oldAsk := askService
	oldCompare := compareService
	oldCase := caseService
	oldGenerate := generateService
	oldVoice := voiceService
	oldSettings := appSettings

	sources := []domain.RetrievedChunk{
		{
			Chunk: domain.Chunk{
				ID:      "chunk-1",
				Law:     "Labor Law",
				Article: "39",
				Content: "The employee is entitled to thirty days of annual leave.",
			},
			Score: 0.91,
		},
	}
	answer := &domain.Answer{
		Text:    "Thirty days per year.",
		Sources: sources,
		Backend: "openrouter",
	}
	artifact := &domain.Artifact{
		Name:      "report.html",
		MIMEType:  "text/html",
		Data:      []byte("<html></html>"),
		CreatedAt: time.Now(),
	}

	ingestService = &mockIngestService{
		report: &domain.IngestReport{Files: 2, Chunks: 10},
	}
	retrieveService = &mockRetrieveService{results: sources}
	askService = &mockAskService{answer: answer}
	compareService = &mockCompareService{
		comparison: &domain.Comparison{
			Topic: "termination",
			Laws: []domain.ComparedLaw{
				{Name: "labor law", Points: []string{"Notice is required."}},
				{Name: "civil law", Points: []string{"General contract rules apply."}},
			},
		},
		artifact: artifact,
	}
	caseService = &mockCaseService{
		analysis: &domain.CaseAnalysis{
			Scenario:      "scenario",
			CaseType:      "criminal_law",
			Analysis:      *answer,
			CitedArticles: []string{"10"},
		},
		artifact: artifact,
	}
	generateService = &mockGenerateService{artifact: artifact}
	voiceService = &mockVoiceService{answer: answer, audioPath: "/tmp/answer.wav"}
	appSettings = domain.DefaultSettings()

	return func() {
		ingestService = oldIngest
		retrieveService = oldRetrieve
		askService = oldAsk
		compareService = oldCompare
		caseService = oldCase
		generateService = oldGenerate
		voiceService = oldVoice
		appSettings = oldSettings
	}
}
