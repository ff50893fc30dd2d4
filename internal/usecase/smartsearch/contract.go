package smartsearch

import (
	"context"

	"github.com/helix-supply/partdex/internal/domain/search/analysis"
	"github.com/helix-supply/partdex/internal/domain/search/fused"
	"github.com/helix-supply/partdex/internal/domain/search/query"
)

// Analyzer classifies a raw query as specific or ambiguous.
type Analyzer interface {
	Analyze(ctx context.Context, queryText string) (analysis.Analysis, error)
}

// Retriever runs the hybrid search. It degrades internally and never
// fails.
type Retriever interface {
	Hybrid(ctx context.Context, text string, filters query.Filters, limit int) []fused.Result
}
