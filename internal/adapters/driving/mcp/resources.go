package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for Qadi resources.
const uriScheme = "qadi://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing ingested laws.
	s.inner.AddResource(&mcp.Resource{
		URI:         uriScheme + "laws",
		Name:        "laws",
		Description: "List of all ingested Omani laws",
		MIMEType:    "application/json",
	}, s.handleLawsResource)

	// Template for full law text.
	s.inner.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "laws/{documentId}",
		Name:        "law-text",
		Description: "Full extracted text of one ingested law",
		MIMEType:    "text/plain",
	}, s.handleLawTextResource)
}

// handleLawsResource returns a list of all ingested laws.
func (s *Server) handleLawsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Ingest == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	docs, err := s.ports.Ingest.Documents(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing laws: %w", err)
	}

	type lawInfo struct {
		ID       string `json:"id"`
		Law      string `json:"law"`
		Language string `json:"language"`
		Pages    int    `json:"pages"`
	}

	infos := make([]lawInfo, len(docs))
	for i, doc := range docs {
		infos[i] = lawInfo{
			ID:       doc.ID,
			Law:      doc.Law,
			Language: doc.Language,
			Pages:    doc.Pages,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling laws: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleLawTextResource returns the full text of one ingested law.
func (s *Server) handleLawTextResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Ingest == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	documentID := extractDocumentID(req.Params.URI)
	if documentID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	docs, err := s.ports.Ingest.Documents(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing laws: %w", err)
	}

	for _, doc := range docs {
		if doc.ID == documentID {
			return &mcp.ReadResourceResult{
				Contents: []*mcp.ResourceContents{{
					URI:      req.Params.URI,
					MIMEType: "text/plain",
					Text:     doc.Content,
				}},
			}, nil
		}
	}
	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

// extractDocumentID extracts the document ID from a URI like
// qadi://laws/{documentId}.
func extractDocumentID(uri string) string {
	const prefix = uriScheme + "laws/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if id == "" || strings.Contains(id, "/") {
		return ""
	}
	return id
}
