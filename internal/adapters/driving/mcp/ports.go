package mcp

import (
	"github.com/qadi-labs/qadi-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces the MCP server needs.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retrieve provides corpus search.
	Retrieve driving.RetrieveService

	// Ask answers legal questions with attribution.
	Ask driving.AskService

	// Ingest lists the ingested corpus. Optional; the laws resource
	// returns an empty list without it.
	Ingest driving.IngestService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Retrieve == nil {
		return ErrMissingRetrieveService
	}
	if p.Ask == nil {
		return ErrMissingAskService
	}
	return nil
}
