package domain

import "time"

// TemplateKind identifies a document generation template.
// The set is closed; unknown kinds are a validation error.
type TemplateKind string

const (
	// TemplateContract is an employment contract.
	TemplateContract TemplateKind = "contract"

	// TemplateAuthorization is a power-of-attorney style authorization.
	TemplateAuthorization TemplateKind = "authorization"

	// TemplateGeneric is a free-form document with a title and body.
	TemplateGeneric TemplateKind = "generic"

	// TemplateCaseReport is the case analysis report layout.
	TemplateCaseReport TemplateKind = "case_report"

	// TemplateComparison is the side-by-side law comparison layout.
	TemplateComparison TemplateKind = "comparison"
)

// DocumentFields holds the structured form input for document
// generation. Field values are inserted into the artifact verbatim.
type DocumentFields struct {
	// Title is the document heading.
	Title string

	// Date is the document date; defaults to today when empty.
	Date string

	// FirstParty and SecondParty name the contracting parties.
	FirstParty  string
	SecondParty string

	// Position, Salary and Duration fill the employment contract terms.
	Position string
	Salary   string
	Duration string

	// Authorizer, Authorized and Purpose fill the authorization.
	Authorizer string
	Authorized string
	Purpose    string

	// Terms are explicit contract clauses; when empty the template's
	// default clauses are used.
	Terms []string

	// Body is the free-form content for generic documents.
	Body []string
}

// Artifact is a rendered output file the user can download.
type Artifact struct {
	// Name is the suggested file name.
	Name string

	// MIMEType is the content type of Data.
	MIMEType string

	// Data is the rendered bytes.
	Data []byte

	// CreatedAt is the render time.
	CreatedAt time.Time
}

// Comparison is the structured output of the law comparison module.
type Comparison struct {
	// Topic is the comparison subject.
	Topic string

	// Laws are the compared laws in request order.
	Laws []ComparedLaw
}

// ComparedLaw holds one law's side of a comparison.
type ComparedLaw struct {
	// Name is the law name as extracted from the request.
	Name string

	// Points are the summarised key points for the topic.
	Points []string

	// Sources are the chunks the points were summarised from.
	Sources []RetrievedChunk
}

// CaseAnalysis is the structured output of the case analysis module.
type CaseAnalysis struct {
	// Scenario is the user's free-text case description.
	Scenario string

	// CaseType is the heuristically detected category (e.g. "theft").
	CaseType string

	// Analysis is the composed legal analysis.
	Analysis Answer

	// CitedArticles lists article numbers referenced by the analysis
	// that also appear in the retrieved segments.
	CitedArticles []string
}
