// Package driving provides interfaces for user-facing adapters
// (primary/inbound ports). The CLI, TUI and MCP server depend on these
// rather than on concrete services.
package driving
