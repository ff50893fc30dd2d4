// Package query defines the immutable search query value object.
package query

import (
	"strings"

	"github.com/helix-supply/partdex/internal/domain"
)

// Role identifies the author of a conversation turn.
type Role string

const (
	// RoleUser marks a turn written by the end user.
	RoleUser Role = "user"
	// RoleAssistant marks a turn produced by the system.
	RoleAssistant Role = "assistant"
)

// Turn is one prior conversation message, most-recent last in a Query.
type Turn struct {
	role Role
	text string
}

// NewTurn creates a conversation turn.
func NewTurn(role Role, text string) Turn {
	return Turn{role: role, text: text}
}

// Role returns the turn author.
func (t Turn) Role() Role { return t.role }

// Text returns the turn text.
func (t Turn) Text() string { return t.text }

// Filters holds optional hard equality post-filters.
// Nil pointers mean the filter is not set.
type Filters struct {
	Category  *string
	PhasedOut *bool
}

// IsEmpty reports whether no filter is set.
func (f Filters) IsEmpty() bool {
	return f.Category == nil && f.PhasedOut == nil
}

// Query is an immutable search request. It carries no identity beyond
// its text and is never persisted.
type Query struct {
	text    string
	turns   []Turn
	filters Filters
}

// New creates a query. The text must be non-empty after trimming.
func New(text string, turns []Turn, filters Filters) (Query, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Query{}, domain.ErrEmptyQuery
	}
	copied := make([]Turn, len(turns))
	copy(copied, turns)
	return Query{text: trimmed, turns: copied, filters: filters}, nil
}

// Text returns the raw query text.
func (q Query) Text() string { return q.text }

// Turns returns prior conversation turns, most-recent last.
func (q Query) Turns() []Turn { return q.turns }

// Filters returns the optional equality filters.
func (q Query) Filters() Filters { return q.filters }

// TokenCount returns the number of whitespace-separated tokens in the text.
func (q Query) TokenCount() int {
	return len(strings.Fields(q.text))
}

// LastTurn returns the most recent prior turn, if any.
func (q Query) LastTurn() (Turn, bool) {
	if len(q.turns) == 0 {
		return Turn{}, false
	}
	return q.turns[len(q.turns)-1], true
}
