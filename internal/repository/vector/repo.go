// Package vector implements the similarity-index search client over a
// RediSearch KNN index of catalog parts.
package vector

import (
	"context"
	"fmt"
	"strings"

	"github.com/helix-supply/partdex/internal/db"
	"github.com/helix-supply/partdex/internal/domain/search/document"
)

// store is the consumer interface for vector operations (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

var returnFields = []string{
	document.FieldName,
	document.FieldDescription,
	document.FieldCategory,
	document.FieldPhasedOut,
	document.FieldImageURL,
}

// Repo implements the vector search client.
type Repo struct {
	store  store
	prefix string
}

// New creates a vector repository. prefix is the part key prefix; the
// FT index is expected at prefix + "idx".
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// Search runs a cosine KNN query, sorted by similarity descending.
func (r *Repo) Search(ctx context.Context, vec []float32, limit int) ([]document.Document, error) {
	q := &db.KNNQuery{
		IndexName:    r.prefix + "idx",
		Vector:       vec,
		K:            limit,
		ReturnFields: returnFields,
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn: %w", err)
	}

	docs := make([]document.Document, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		partNumber := strings.TrimPrefix(entry.Key, r.prefix)
		docs = append(docs, document.New(partNumber, entry.Score, entry.Fields, nil))
	}
	return docs, nil
}
