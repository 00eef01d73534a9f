// Package tui provides the interactive chat terminal interface.
package tui

import (
	"errors"

	"github.com/qadi-labs/qadi-cli/internal/core/ports/driving"
)

// ErrMissingAskService is returned when the ask service is not
// provided.
var ErrMissingAskService = errors.New("tui: ask service is required")

// Ports aggregates the driving port interfaces the chat view needs.
// Only Ask is required; the optional ports enable intent routing, where
// a classified input is handed to its feature module instead of the
// question pipeline.
type Ports struct {
	// Ask answers legal questions with attribution.
	Ask driving.AskService

	// Retrieve classifies queries. Optional; without it every input is
	// treated as a general question.
	Retrieve driving.RetrieveService

	// Compare handles inputs classified as comparison requests.
	// Optional.
	Compare driving.CompareService

	// Analyze handles inputs classified as case scenarios. Optional.
	Analyze driving.CaseAnalysisService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Ask == nil {
		return ErrMissingAskService
	}
	return nil
}
