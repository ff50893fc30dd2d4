// Package lexical implements the keyword-index search client over a
// RediSearch text index of catalog parts.
package lexical

import (
	"context"
	"fmt"
	"strings"

	"github.com/helix-supply/partdex/internal/db"
	"github.com/helix-supply/partdex/internal/domain"
	"github.com/helix-supply/partdex/internal/domain/search/document"
	"github.com/helix-supply/partdex/internal/domain/search/query"
)

// store is the consumer interface for lexical operations (ISP).
type store interface {
	SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	TagValues(ctx context.Context, index, field string) ([]string, error)
}

// returnFields are the part fields fetched with every hit.
var returnFields = []string{
	document.FieldName,
	document.FieldDescription,
	document.FieldCategory,
	document.FieldPhasedOut,
	document.FieldImageURL,
}

// highlightFields get marked excerpts in search hits.
var highlightFields = []string{document.FieldName, document.FieldDescription}

// Repo implements the lexical search client.
type Repo struct {
	store  store
	prefix string
	boosts Boosts
}

// New creates a lexical repository. prefix is the part key prefix
// (e.g. "partdex:parts:"); the FT index is expected at prefix + "idx".
func New(s store, prefix string, boosts Boosts) *Repo {
	return &Repo{store: s, prefix: prefix, boosts: boosts}
}

func (r *Repo) index() string { return r.prefix + "idx" }

// Search runs the tiered weighted text query, sorted by backend
// relevance descending. Filters are hard constraints and never produce
// hits on their own.
func (r *Repo) Search(
	ctx context.Context, text string, filters query.Filters, limit int,
) ([]document.Document, error) {
	q := &db.TextQuery{
		IndexName:       r.index(),
		Query:           buildQuery(text, filters, r.boosts),
		Limit:           limit,
		ReturnFields:    returnFields,
		HighlightFields: highlightFields,
	}

	sr, err := r.store.SearchText(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search text: %w", err)
	}

	docs := make([]document.Document, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		partNumber := strings.TrimPrefix(entry.Key, r.prefix)
		fields, highlights := splitHighlights(entry.Fields)
		docs = append(docs, document.New(partNumber, entry.Score, fields, highlights))
	}
	return docs, nil
}

// Get fetches a single part by its identifier.
func (r *Repo) Get(ctx context.Context, partNumber string) (document.Document, error) {
	fields, err := r.store.HGetAll(ctx, r.prefix+partNumber)
	if err != nil {
		return document.Document{}, fmt.Errorf("get part %s: %w", partNumber, err)
	}
	if len(fields) == 0 {
		return document.Document{}, domain.ErrPartNotFound
	}
	delete(fields, "vector")
	return document.New(partNumber, 0, fields, nil), nil
}

// Categories lists the distinct part categories.
func (r *Repo) Categories(ctx context.Context) ([]string, error) {
	values, err := r.store.TagValues(ctx, r.index(), "category_tag")
	if err != nil {
		return nil, fmt.Errorf("tag values: %w", err)
	}
	return values, nil
}

const (
	highlightOpen  = "<em>"
	highlightClose = "</em>"
)

// splitHighlights separates highlighted excerpts from plain field
// values. RediSearch returns marked-up text in place of the original
// field value, so the raw value is recovered by stripping the markers.
func splitHighlights(raw map[string]string) (fields, highlights map[string]string) {
	fields = make(map[string]string, len(raw))
	for k, v := range raw {
		if strings.Contains(v, highlightOpen) {
			if highlights == nil {
				highlights = make(map[string]string)
			}
			highlights[k] = v
			v = strings.ReplaceAll(v, highlightOpen, "")
			v = strings.ReplaceAll(v, highlightClose, "")
		}
		fields[k] = v
	}
	return fields, highlights
}
