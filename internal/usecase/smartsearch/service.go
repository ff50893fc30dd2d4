// Package smartsearch orchestrates query analysis, hybrid retrieval,
// and the clarification decision for one search request.
package smartsearch

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/helix-supply/partdex/internal/domain/search/analysis"
	"github.com/helix-supply/partdex/internal/domain/search/fused"
	"github.com/helix-supply/partdex/internal/domain/search/query"
	"github.com/helix-supply/partdex/internal/domain/search/response"
	"github.com/helix-supply/partdex/internal/logger"
	"github.com/helix-supply/partdex/internal/metrics"
)

// DefaultClarification is asked when the analyzer flags ambiguity but
// supplies no question of its own.
const DefaultClarification = "Could you provide more details about the part or application?"

// Service is the disambiguation orchestrator. Each call is a single
// stateless pass: classify, retrieve, decide. Nothing survives the
// request.
type Service struct {
	analyzer    Analyzer
	retriever   Retriever
	limit       int
	shortTokens int
}

// New creates an orchestrator. limit is the fused result-set size;
// shortTokens is the context-expansion threshold: a query shorter than
// it inherits the last conversation turn for retrieval.
func New(analyzer Analyzer, retriever Retriever, limit, shortTokens int) *Service {
	return &Service{
		analyzer:    analyzer,
		retriever:   retriever,
		limit:       limit,
		shortTokens: shortTokens,
	}
}

// Search runs one orchestration pass. Analysis and retrieval execute
// concurrently and join before the response decision; either side
// degrades to a neutral value rather than failing the request, so the
// worst case is an empty results response, never an error.
func (s *Service) Search(ctx context.Context, q query.Query) response.Response {
	// Context expansion widens retrieval only; classification always
	// sees the raw query text.
	searchText := s.expandShortQuery(q)

	var (
		verdict analysis.Analysis
		matches []fused.Result
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a, err := s.analyzer.Analyze(gctx, q.Text())
		if err != nil {
			// Disambiguation is a convenience, never a hard dependency.
			logger.FromContext(gctx).Warn("query analysis degraded", zap.Error(err))
			metrics.AnalysisVerdictsTotal.WithLabelValues("fallback").Inc()
			verdict = analysis.Fallback()
			return nil
		}
		metrics.AnalysisVerdictsTotal.WithLabelValues(string(a.Status())).Inc()
		verdict = a
		return nil
	})

	g.Go(func() error {
		matches = s.retriever.Hybrid(gctx, searchText, q.Filters(), s.limit)
		return nil
	})

	_ = g.Wait() // both legs capture failure as a value

	if verdict.IsAmbiguous() && len(matches) == 0 {
		question := verdict.Question()
		if question == "" {
			question = DefaultClarification
		}
		metrics.ClarificationsTotal.Inc()
		return response.NewClarification(question)
	}

	// Ambiguous but matched: attach the question as a soft hint.
	var hint string
	if verdict.IsAmbiguous() {
		hint = verdict.Question()
	}
	return response.NewResults(matches, hint)
}

// expandShortQuery prepends the last conversation turn to queries below
// the token threshold, so follow-ups like "the red one" still retrieve
// against their subject.
func (s *Service) expandShortQuery(q query.Query) string {
	if q.TokenCount() >= s.shortTokens {
		return q.Text()
	}
	last, ok := q.LastTurn()
	if !ok || last.Text() == "" {
		return q.Text()
	}
	return last.Text() + " " + q.Text()
}
