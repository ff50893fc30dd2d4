package search

import (
	"context"
	"errors"
	"testing"

	"github.com/helix-supply/partdex/internal/domain"
	"github.com/helix-supply/partdex/internal/domain/search/document"
	"github.com/helix-supply/partdex/internal/domain/search/query"
)

// --- Mocks ---

type mockLexical struct {
	searchResults []document.Document
	searchErr     error
	getDoc        document.Document
	getErr        error
	categories    []string
	catErr        error
	searchCalled  bool
	lastText      string
	lastFilters   query.Filters
}

func (m *mockLexical) Search(
	_ context.Context, text string, filters query.Filters, _ int,
) ([]document.Document, error) {
	m.searchCalled = true
	m.lastText = text
	m.lastFilters = filters
	return m.searchResults, m.searchErr
}

func (m *mockLexical) Get(_ context.Context, _ string) (document.Document, error) {
	return m.getDoc, m.getErr
}

func (m *mockLexical) Categories(_ context.Context) ([]string, error) {
	return m.categories, m.catErr
}

type mockVector struct {
	results []document.Document
	err     error
	called  bool
	lastVec []float32
}

func (m *mockVector) Search(_ context.Context, vec []float32, _ int) ([]document.Document, error) {
	m.called = true
	m.lastVec = vec
	return m.results, m.err
}

type mockEmbedder struct {
	vec    []float32
	err    error
	called bool
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	m.called = true
	return m.vec, m.err
}

func newService(lex *mockLexical, vec *mockVector, emb *mockEmbedder) *Service {
	return New(lex, vec, emb, DefaultWeights())
}

// --- Tests ---

func TestHybrid_BothBackends(t *testing.T) {
	lex := &mockLexical{searchResults: []document.Document{makeDoc("P1", 8.0)}}
	vec := &mockVector{results: []document.Document{makeDoc("P1", 0.9), makeDoc("P2", 0.5)}}
	emb := &mockEmbedder{vec: []float32{0.1, 0.2}}

	results := newService(lex, vec, emb).Hybrid(context.Background(), "bearing", query.Filters{}, 10)

	if !lex.searchCalled || !emb.called || !vec.called {
		t.Fatal("expected all backends to be called")
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 fused results, got %d", len(results))
	}
	if results[0].PartNumber() != "P1" {
		t.Errorf("expected confirmed P1 first, got %s", results[0].PartNumber())
	}
}

func TestHybrid_LexicalFailureDegrades(t *testing.T) {
	lex := &mockLexical{searchErr: errors.New("index down")}
	vec := &mockVector{results: []document.Document{makeDoc("P2", 0.5)}}
	emb := &mockEmbedder{vec: []float32{0.1}}

	results := newService(lex, vec, emb).Hybrid(context.Background(), "bearing", query.Filters{}, 10)

	if len(results) != 1 {
		t.Fatalf("expected 1 result from semantic leg, got %d", len(results))
	}
	if results[0].PartNumber() != "P2" {
		t.Errorf("expected P2, got %s", results[0].PartNumber())
	}
}

func TestHybrid_EmbeddingFailureSkipsVector(t *testing.T) {
	lex := &mockLexical{searchResults: []document.Document{makeDoc("P1", 5.0)}}
	vec := &mockVector{}
	emb := &mockEmbedder{err: domain.ErrEmbeddingUnavailable}

	results := newService(lex, vec, emb).Hybrid(context.Background(), "bearing", query.Filters{}, 10)

	if vec.called {
		t.Error("vector search should be skipped when embedding fails")
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result from lexical leg, got %d", len(results))
	}
}

func TestHybrid_AllBackendsDown(t *testing.T) {
	lex := &mockLexical{searchErr: errors.New("index down")}
	vec := &mockVector{err: errors.New("index down")}
	emb := &mockEmbedder{vec: []float32{0.1}}

	results := newService(lex, vec, emb).Hybrid(context.Background(), "bearing", query.Filters{}, 10)

	if results == nil {
		t.Fatal("expected non-nil empty slice")
	}
	if len(results) != 0 {
		t.Fatalf("expected 0 results, got %d", len(results))
	}
}

func TestHybrid_FiltersPassedToLexical(t *testing.T) {
	lex := &mockLexical{}
	cat := "Bearings"
	filters := query.Filters{Category: &cat}

	newService(lex, &mockVector{}, &mockEmbedder{vec: []float32{0.1}}).
		Hybrid(context.Background(), "6205", filters, 10)

	if lex.lastFilters.Category == nil || *lex.lastFilters.Category != "Bearings" {
		t.Error("expected category filter to reach the lexical backend")
	}
}

func TestPart_NotFound(t *testing.T) {
	lex := &mockLexical{getErr: domain.ErrPartNotFound}

	_, err := newService(lex, &mockVector{}, &mockEmbedder{}).Part(context.Background(), "NOPE")
	if !errors.Is(err, domain.ErrPartNotFound) {
		t.Fatalf("expected ErrPartNotFound, got %v", err)
	}
}

func TestSimilar_ExcludesSeedPart(t *testing.T) {
	seed := document.New("P1", 0,
		map[string]string{"name": "deep groove bearing", "description": "6205 series"}, nil)
	lex := &mockLexical{getDoc: seed}
	vec := &mockVector{results: []document.Document{
		makeDoc("P1", 0.99), makeDoc("P2", 0.8), makeDoc("P3", 0.7),
	}}
	emb := &mockEmbedder{vec: []float32{0.1}}

	docs, err := newService(lex, vec, emb).Similar(context.Background(), "P1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 similar parts, got %d", len(docs))
	}
	for _, d := range docs {
		if d.PartNumber() == "P1" {
			t.Error("seed part must be excluded from its own similar list")
		}
	}
}

func TestCategories(t *testing.T) {
	lex := &mockLexical{categories: []string{"Bearings", "Seals"}}

	cats, err := newService(lex, &mockVector{}, &mockEmbedder{}).Categories(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cats) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(cats))
	}
}
