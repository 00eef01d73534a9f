package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from user-editable files with
// embedded defaults as fallback.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next
	// access. Useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and
// providers.
const (
	// PromptQASystem constrains answers to the retrieved context.
	// No format placeholders.
	PromptQASystem = "qa_system"

	// PromptQA is the question template. Expects %s (context) and
	// %s (question) placeholders.
	PromptQA = "qa"

	// PromptCompareExtract identifies laws and topic in a comparison
	// request. Expects a %s placeholder for the request.
	PromptCompareExtract = "compare_extract"

	// PromptCompareSummarise summarises one law's key points on a
	// topic. Expects %s (law), %s (topic) and %s (content).
	PromptCompareSummarise = "compare_summarise"

	// PromptCaseAnalysis analyses a case scenario against retrieved
	// statutes. Expects %s (context) and %s (scenario).
	PromptCaseAnalysis = "case_analysis"
)
