package content

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single finding of a validator. Errors are shown prominently and
// warnings as hints; neither prevents a save.
type Issue struct {
	Field    string   `json:"field,omitempty"`
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Result groups the issues of one validator run.
type Result struct {
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

func (r *Result) addError(field, code, message string) {
	r.Errors = append(r.Errors, Issue{Field: field, Code: code, Severity: SeverityError, Message: message})
}

func (r *Result) addWarning(field, code, message string) {
	r.Warnings = append(r.Warnings, Issue{Field: field, Code: code, Severity: SeverityWarning, Message: message})
}

// Merge appends other's issues to r.
func (r *Result) Merge(other Result) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

func (r Result) Empty() bool {
	return len(r.Errors) == 0 && len(r.Warnings) == 0
}

// Issue codes
const (
	CodeMultipleH1      = "multiple_h1"
	CodeHeadingSkip     = "heading_skip"
	CodeEmptyContent    = "empty_content"
	CodeContentTooShort = "content_too_short"
	CodeThinContent     = "thin_content"
	CodeTitleLength     = "title_length"
	CodeDescLength      = "description_length"
	CodeMetaTitle       = "meta_title_length"
	CodeMetaDescription = "meta_description_length"
	CodeKeywords        = "keywords"
	CodeInvalidSlug     = "invalid_slug"
	CodeMissingSlug     = "missing_slug"
	CodeSelfRelation    = "self_relation"
)
