// Package search implements hybrid retrieval over the lexical and
// vector backends, plus part lookup helpers.
package search

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/helix-supply/partdex/internal/domain/search/document"
	"github.com/helix-supply/partdex/internal/domain/search/fused"
	"github.com/helix-supply/partdex/internal/domain/search/query"
	"github.com/helix-supply/partdex/internal/logger"
	"github.com/helix-supply/partdex/internal/metrics"
)

// Service runs hybrid search: both backends in parallel, failures
// degraded to empty lists, outputs fused into one ranked list. A dead
// backend never fails the whole query.
type Service struct {
	lexical LexicalSearcher
	vector  VectorSearcher
	embed   Embedder
	weights Weights
}

// New creates a search service with the given fusion weights.
func New(lexical LexicalSearcher, vector VectorSearcher, embed Embedder, weights Weights) *Service {
	return &Service{lexical: lexical, vector: vector, embed: embed, weights: weights}
}

// Hybrid searches both backends concurrently and fuses the results.
// The returned list is never nil and the call never fails: in the
// worst case (all backends degraded) it is empty.
func (s *Service) Hybrid(
	ctx context.Context, text string, filters query.Filters, limit int,
) []fused.Result {
	var lexicalDocs, semanticDocs []document.Document

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		lexicalDocs = s.lexicalLeg(gctx, text, filters, limit)
		return nil
	})
	g.Go(func() error {
		semanticDocs = s.semanticLeg(gctx, text, limit)
		return nil
	})

	_ = g.Wait() // legs capture their failures as empty lists

	results := fuse(lexicalDocs, semanticDocs, limit, s.weights)
	metrics.FusionMatches.Observe(float64(len(results)))
	return results
}

// lexicalLeg queries the keyword index, degrading failure to empty.
func (s *Service) lexicalLeg(
	ctx context.Context, text string, filters query.Filters, limit int,
) []document.Document {
	docs, err := s.lexical.Search(ctx, text, filters, limit)
	if err != nil {
		logger.FromContext(ctx).Warn("lexical search degraded", zap.Error(err))
		metrics.RetrievalDegradedTotal.WithLabelValues("lexical").Inc()
		return nil
	}
	return docs
}

// semanticLeg embeds the query and runs KNN, degrading failure to
// empty. An embedding failure skips the vector call entirely.
func (s *Service) semanticLeg(ctx context.Context, text string, limit int) []document.Document {
	vec, err := s.embed.Embed(ctx, text)
	if err != nil {
		logger.FromContext(ctx).Warn("embedding degraded, skipping vector search", zap.Error(err))
		metrics.RetrievalDegradedTotal.WithLabelValues("embedding").Inc()
		return nil
	}

	docs, err := s.vector.Search(ctx, vec, limit)
	if err != nil {
		logger.FromContext(ctx).Warn("vector search degraded", zap.Error(err))
		metrics.RetrievalDegradedTotal.WithLabelValues("vector").Inc()
		return nil
	}
	return docs
}

// Part fetches a single catalog part by identifier.
func (s *Service) Part(ctx context.Context, partNumber string) (document.Document, error) {
	doc, err := s.lexical.Get(ctx, partNumber)
	if err != nil {
		return document.Document{}, fmt.Errorf("get part: %w", err)
	}
	return doc, nil
}

// Similar finds parts close in embedding space to the given part,
// excluding the part itself.
func (s *Service) Similar(ctx context.Context, partNumber string, limit int) ([]document.Document, error) {
	doc, err := s.lexical.Get(ctx, partNumber)
	if err != nil {
		return nil, fmt.Errorf("get part: %w", err)
	}

	seed := strings.TrimSpace(doc.Field(document.FieldName) + " " + doc.Field(document.FieldDescription))
	// +1 because the seed part itself is usually the nearest neighbor
	docs := s.semanticLeg(ctx, seed, limit+1)

	similar := make([]document.Document, 0, limit)
	for _, d := range docs {
		if d.PartNumber() == partNumber {
			continue
		}
		similar = append(similar, d)
		if len(similar) == limit {
			break
		}
	}
	return similar, nil
}

// Categories lists the distinct part categories.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	cats, err := s.lexical.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	return cats, nil
}
