package search

import (
	"sort"

	"github.com/helix-supply/partdex/internal/domain/search/document"
	"github.com/helix-supply/partdex/internal/domain/search/fused"
)

// Weights holds the fusion coefficients. A document found by one
// backend alone is discounted; a document both backends agree on is
// re-scored on a 60/40 lexical/semantic split. Cross-source agreement
// is rewarded without normalizing the heterogeneous backend scores.
type Weights struct {
	LexicalOnly      float64 // lexical-only seed coefficient
	LexicalConfirmed float64 // lexical coefficient once semantic confirms
	Semantic         float64 // semantic coefficient in both cases
}

// DefaultWeights returns the standard 0.3 / 0.6 / 0.4 protocol.
func DefaultWeights() Weights {
	return Weights{LexicalOnly: 0.3, LexicalConfirmed: 0.6, Semantic: 0.4}
}

// fuse merges the two ranked lists into one deduplicated list keyed by
// part number. Ordering is fully deterministic: combined score
// descending, then original lexical rank, then semantic rank, then
// part number.
func fuse(lexical, semantic []document.Document, limit int, w Weights) []fused.Result {
	const unranked = int(^uint(0) >> 1)

	type entry struct {
		res          fused.Result
		lexicalRank  int
		semanticRank int
	}

	merged := make(map[string]*entry, len(lexical)+len(semantic))
	order := make([]string, 0, len(lexical)+len(semantic))

	for rank, doc := range lexical {
		key := doc.PartNumber()
		if _, ok := merged[key]; ok {
			continue // backend duplicates keep their best rank
		}
		merged[key] = &entry{
			res:          fused.FromLexical(doc, doc.Score(), doc.Score()*w.LexicalOnly),
			lexicalRank:  rank,
			semanticRank: unranked,
		}
		order = append(order, key)
	}

	for rank, doc := range semantic {
		key := doc.PartNumber()
		if e, ok := merged[key]; ok {
			if e.semanticRank != unranked {
				continue
			}
			lex, _ := e.res.LexicalScore()
			e.res = e.res.WithSemantic(doc.Score(), lex*w.LexicalConfirmed+doc.Score()*w.Semantic)
			e.semanticRank = rank
			continue
		}
		merged[key] = &entry{
			res:          fused.FromSemantic(doc, doc.Score(), doc.Score()*w.Semantic),
			lexicalRank:  unranked,
			semanticRank: rank,
		}
		order = append(order, key)
	}

	entries := make([]*entry, 0, len(order))
	for _, key := range order {
		entries = append(entries, merged[key])
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.res.CombinedScore() != b.res.CombinedScore() {
			return a.res.CombinedScore() > b.res.CombinedScore()
		}
		if a.lexicalRank != b.lexicalRank {
			return a.lexicalRank < b.lexicalRank
		}
		if a.semanticRank != b.semanticRank {
			return a.semanticRank < b.semanticRank
		}
		return a.res.PartNumber() < b.res.PartNumber()
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	results := make([]fused.Result, 0, len(entries))
	for _, e := range entries {
		results = append(results, e.res)
	}
	return results
}
