// Package response defines the final search response value object.
package response

import "github.com/helix-supply/partdex/internal/domain/search/fused"

// Kind discriminates the two response shapes.
type Kind string

const (
	// Results carries a ranked (possibly empty) match list.
	Results Kind = "results"
	// Clarification carries a follow-up question instead of matches.
	Clarification Kind = "clarification"
)

// Response is the terminal output of one orchestration pass.
// Kind is Clarification only when the query was classified ambiguous
// and fusion produced no matches; an ambiguous query that still has
// matches returns Results with the question attached as a soft hint.
type Response struct {
	kind     Kind
	matches  []fused.Result
	question string
}

// NewResults creates a results response. question may be "" or a soft
// clarification hint for an ambiguous-but-matched query.
func NewResults(matches []fused.Result, question string) Response {
	if matches == nil {
		matches = []fused.Result{}
	}
	return Response{kind: Results, matches: matches, question: question}
}

// NewClarification creates a clarification response with no matches.
func NewClarification(question string) Response {
	return Response{kind: Clarification, matches: []fused.Result{}, question: question}
}

// Kind returns the response shape.
func (r Response) Kind() Kind { return r.kind }

// Matches returns the ranked match list. Never nil.
func (r Response) Matches() []fused.Result { return r.matches }

// Question returns the clarifying question or soft hint, "" when none.
func (r Response) Question() string { return r.question }
