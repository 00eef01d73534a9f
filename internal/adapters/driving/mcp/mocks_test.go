package mcp

import (
	"context"

	"github.com/qadi-labs/qadi-cli/internal/core/domain"
)

// mockRetrieveService is a mock implementation of
// driving.RetrieveService.
type mockRetrieveService struct {
	results  []domain.RetrievedChunk
	err      error
	gotQuery string
	gotK     int
}

func (m *mockRetrieveService) Retrieve(
	_ context.Context,
	query string,
	k int,
) ([]domain.RetrievedChunk, error) {
	m.gotQuery = query
	m.gotK = k
	return m.results, m.err
}

func (m *mockRetrieveService) Classify(_ string) domain.Intent {
	return domain.IntentGeneral
}

// mockAskService is a mock implementation of driving.AskService.
type mockAskService struct {
	answer   *domain.Answer
	err      error
	gotQuery domain.Query
}

func (m *mockAskService) Ask(_ context.Context, query domain.Query) (*domain.Answer, error) {
	m.gotQuery = query
	return m.answer, m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	documents []domain.Document
	report    *domain.IngestReport
	err       error
}

func (m *mockIngestService) Ingest(_ context.Context, _ string) (*domain.IngestReport, error) {
	return m.report, m.err
}

func (m *mockIngestService) Documents(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}
