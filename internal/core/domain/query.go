package domain

// Intent is the classified purpose of a user query. Classification is a
// keyword dispatch over a closed set, not an ML classifier; each intent
// routes to exactly one feature module.
type Intent int

const (
	// IntentGeneral is a free-form legal question answered by the
	// retrieve-then-compose pipeline.
	IntentGeneral Intent = iota

	// IntentArticleLookup is a request for a specific article number.
	IntentArticleLookup

	// IntentComparison is a request to compare two or more laws.
	IntentComparison

	// IntentDocumentRequest is a request to generate a legal document.
	IntentDocumentRequest

	// IntentCaseAnalysis is a request to analyse a case scenario.
	IntentCaseAnalysis
)

// String returns the intent name for logging and JSON output.
func (i Intent) String() string {
	switch i {
	case IntentArticleLookup:
		return "article_lookup"
	case IntentComparison:
		return "comparison"
	case IntentDocumentRequest:
		return "document_request"
	case IntentCaseAnalysis:
		return "case_analysis"
	default:
		return "general"
	}
}

// Query is a transient user request. It lives only for the duration of
// one interaction.
type Query struct {
	// Text is the raw user input, Arabic or English.
	Text string

	// Language is the detected query language.
	Language string

	// Intent is the classified intent.
	Intent Intent

	// TopK overrides the configured retrieval depth when positive.
	TopK int
}

// Answer is a composed response plus the segments that support it.
type Answer struct {
	// Text is the generated answer.
	Text string

	// Sources are the retrieved chunks the answer is grounded in,
	// in retrieval order.
	Sources []RetrievedChunk

	// Backend is the name of the generation backend that produced the
	// text, after any fallback.
	Backend string
}
