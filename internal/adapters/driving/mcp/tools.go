package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/qadi-labs/qadi-cli/internal/core/domain"
)

// SearchInput is the input schema for the legal_search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the legal question or topic to search the statutes for"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of passages to return (default 4)"`
}

// SearchOutput is the output schema for the legal_search tool.
type SearchOutput struct {
	Results []PassageOutput `json:"results"`
	Count   int             `json:"count"`
}

// PassageOutput is one retrieved statute passage with its attribution.
type PassageOutput struct {
	Law     string  `json:"law"`
	Article string  `json:"article,omitempty"`
	Score   float64 `json:"score"`
	Content string  `json:"content"`
}

// AskInput is the input schema for the legal_ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the legal question, in Arabic or English"`
}

// AskOutput is the output schema for the legal_ask tool.
type AskOutput struct {
	Answer  string          `json:"answer"`
	Sources []PassageOutput `json:"sources"`
	Backend string          `json:"backend"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.inner, &mcp.Tool{
		Name:        "legal_search",
		Description: "Search the ingested Omani statutes and return the matching passages with their law and article attribution",
	}, s.handleSearch)

	mcp.AddTool(s.inner, &mcp.Tool{
		Name:        "legal_ask",
		Description: "Answer a legal question from the ingested Omani statutes, citing the supporting law and article for every source",
	}, s.handleAsk)
}

// handleSearch handles the legal_search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = domain.DefaultTopK
	}

	results, err := s.ports.Retrieve.Retrieve(ctx, input.Query, limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: passages(results),
		Count:   len(results),
	}
	return nil, output, nil
}

// handleAsk handles the legal_ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Ask.Ask(ctx, domain.Query{Text: input.Question})
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:  answer.Text,
		Sources: passages(answer.Sources),
		Backend: answer.Backend,
	}
	return nil, output, nil
}

func passages(results []domain.RetrievedChunk) []PassageOutput {
	out := make([]PassageOutput, len(results))
	for i := range results {
		out[i] = PassageOutput{
			Law:     results[i].Chunk.Law,
			Article: results[i].Chunk.Article,
			Score:   results[i].Score,
			Content: results[i].Chunk.Content,
		}
	}
	return out
}
