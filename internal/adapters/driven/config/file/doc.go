// Package file provides file-based configuration adapters.
//
// ConfigStore persists settings as TOML in the qadi config directory,
// and PromptStore serves user-editable LLM prompt templates with
// embedded defaults.
package file
