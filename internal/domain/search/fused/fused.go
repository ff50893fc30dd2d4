// Package fused defines the fusion output value object. Combined
// scores are written only by the fusion engine.
package fused

import "github.com/helix-supply/partdex/internal/domain/search/document"

// Result extends a retrieved document with per-backend component
// scores and the fused combined score. Exactly one Result exists per
// distinct part number.
type Result struct {
	doc         document.Document
	lexical     float64
	hasLexical  bool
	semantic    float64
	hasSemantic bool
	combined    float64
}

// FromLexical seeds a result from a lexical hit.
func FromLexical(doc document.Document, score, combined float64) Result {
	return Result{doc: doc, lexical: score, hasLexical: true, combined: combined}
}

// FromSemantic seeds a result from a semantic hit.
func FromSemantic(doc document.Document, score, combined float64) Result {
	return Result{doc: doc, semantic: score, hasSemantic: true, combined: combined}
}

// WithSemantic returns a copy with the semantic component attached and
// the combined score recomputed by the fusion engine.
func (r Result) WithSemantic(score, combined float64) Result {
	r.semantic = score
	r.hasSemantic = true
	r.combined = combined
	return r
}

// Document returns the underlying retrieved document.
func (r *Result) Document() document.Document { return r.doc }

// PartNumber returns the stable catalog identifier.
func (r *Result) PartNumber() string { return r.doc.PartNumber() }

// LexicalScore returns the lexical component score, if present.
func (r *Result) LexicalScore() (float64, bool) { return r.lexical, r.hasLexical }

// SemanticScore returns the semantic component score, if present.
func (r *Result) SemanticScore() (float64, bool) { return r.semantic, r.hasSemantic }

// CombinedScore returns the fused score. Always present.
func (r *Result) CombinedScore() float64 { return r.combined }
