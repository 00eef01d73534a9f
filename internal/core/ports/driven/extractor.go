package driven

import "context"

// CommandRunner executes an external command and returns its combined
// output. Extractors and speech adapters depend on this rather than
// os/exec directly so tests can substitute a double.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// Extractor converts a source file into plain text. The PDF
// implementation shells out to pdftotext through a CommandRunner.
type Extractor interface {
	// Extract returns the full text of the file at path.
	// Returns an error wrapping domain.ErrParse for unreadable or
	// malformed files; callers skip and report such files.
	Extract(ctx context.Context, path string) (*ExtractResult, error)

	// SupportedExtensions returns the lowercase file extensions this
	// extractor handles, including the dot.
	SupportedExtensions() []string
}

// ExtractResult is the output of text extraction.
type ExtractResult struct {
	// Text is the full extracted text.
	Text string

	// Title is the document title from metadata, or "" when absent.
	Title string

	// Pages is the page count when the format reports one.
	Pages int
}
