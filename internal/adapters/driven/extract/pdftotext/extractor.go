// Package pdftotext extracts text from PDF statutes by shelling out
// to the poppler pdftotext utility. Go has no PDF parser in the
// standard library; the external tool handles both Arabic and English
// text extraction well.
package pdftotext

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/qadi-labs/qadi-cli/internal/core/domain"
	"github.com/qadi-labs/qadi-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// execRunner runs commands with os/exec. It is the production
// CommandRunner.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Extractor converts PDF files to plain text via pdftotext, reading
// title and page count from pdfinfo when available.
type Extractor struct {
	runner driven.CommandRunner
}

// New creates a PDF extractor using os/exec.
func New() *Extractor {
	return &Extractor{runner: execRunner{}}
}

// NewWithRunner creates a PDF extractor with a custom command runner.
// Used by tests to avoid depending on an installed pdftotext.
func NewWithRunner(runner driven.CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// SupportedExtensions returns the file extensions this extractor
// handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".pdf"}
}

// Extract returns the text of the PDF at path. Unreadable or
// malformed files produce an error wrapping domain.ErrParse so the
// ingest batch can skip and report them.
func (e *Extractor) Extract(ctx context.Context, path string) (*driven.ExtractResult, error) {
	if err := checkMagic(path); err != nil {
		return nil, err
	}

	out, err := e.runner.Run(ctx, "pdftotext", "-enc", "UTF-8", "-q", path, "-")
	if err != nil {
		return nil, fmt.Errorf("%w: pdftotext: %v", domain.ErrParse, err)
	}

	result := &driven.ExtractResult{Text: string(out)}

	// pdfinfo is best effort; a missing tool or odd metadata never
	// fails the extraction.
	if info, err := e.runner.Run(ctx, "pdfinfo", path); err == nil {
		result.Title, result.Pages = parseInfo(string(info))
	}

	return result, nil
}

// checkMagic rejects files that are not PDFs without invoking the
// external tool.
func checkMagic(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	defer f.Close()

	header := make([]byte, 5)
	if _, err := f.Read(header); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	if string(header) != "%PDF-" {
		return fmt.Errorf("%w: not a PDF file", domain.ErrParse)
	}
	return nil
}

// parseInfo reads the Title and Pages lines of pdfinfo output.
func parseInfo(info string) (title string, pages int) {
	for _, line := range strings.Split(info, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "Title":
			title = value
		case "Pages":
			pages, _ = strconv.Atoi(value)
		}
	}
	return title, pages
}
