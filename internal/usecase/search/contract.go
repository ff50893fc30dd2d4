package search

import (
	"context"

	"github.com/helix-supply/partdex/internal/domain/search/document"
	"github.com/helix-supply/partdex/internal/domain/search/query"
)

// LexicalSearcher queries the keyword index.
type LexicalSearcher interface {
	Search(ctx context.Context, text string, filters query.Filters, limit int) ([]document.Document, error)
	Get(ctx context.Context, partNumber string) (document.Document, error)
	Categories(ctx context.Context) ([]string, error)
}

// VectorSearcher queries the similarity index.
type VectorSearcher interface {
	Search(ctx context.Context, vec []float32, limit int) ([]document.Document, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
