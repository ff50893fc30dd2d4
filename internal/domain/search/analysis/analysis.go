// Package analysis defines the query-classification value object.
package analysis

// Status classifies a query as answerable or in need of clarification.
type Status string

const (
	// Specific marks a query precise enough to answer directly.
	Specific Status = "specific"
	// Ambiguous marks a query too broad to confidently match a part.
	Ambiguous Status = "ambiguous"
)

// Analysis is the outcome of one classification pass over the raw
// query text.
type Analysis struct {
	status       Status
	identifier   string
	requirements map[string]string
	question     string
}

// New creates an analysis result.
func New(status Status, identifier string, requirements map[string]string, question string) Analysis {
	return Analysis{
		status:       status,
		identifier:   identifier,
		requirements: requirements,
		question:     question,
	}
}

// Fallback is the conservative default used when the classifier is
// unreachable or returns an unparseable response: treat the query as
// specific and let retrieval speak for itself.
func Fallback() Analysis {
	return Analysis{status: Specific, requirements: map[string]string{}}
}

// Status returns the classification verdict.
func (a Analysis) Status() Status { return a.status }

// IsAmbiguous reports whether the query was classified ambiguous.
func (a Analysis) IsAmbiguous() bool { return a.status == Ambiguous }

// Identifier returns the extracted part identifier, or "" when none.
func (a Analysis) Identifier() string { return a.identifier }

// Requirements returns extracted technical constraints.
func (a Analysis) Requirements() map[string]string { return a.requirements }

// Question returns the suggested clarifying question, or "" when none.
func (a Analysis) Question() string { return a.question }
