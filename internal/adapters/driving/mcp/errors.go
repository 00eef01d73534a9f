// Package mcp exposes the legal assistant over the Model Context
// Protocol so AI assistants can search and query the ingested corpus.
package mcp

import "errors"

// ErrMissingRetrieveService is returned when the retrieve service is
// not provided.
var ErrMissingRetrieveService = errors.New("mcp: retrieve service is required")

// ErrMissingAskService is returned when the ask service is not
// provided.
var ErrMissingAskService = errors.New("mcp: ask service is required")
