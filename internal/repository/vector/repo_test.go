package vector

import (
	"context"
	"errors"
	"testing"

	"github.com/helix-supply/partdex/internal/db"
)

type mockStore struct {
	result    *db.SearchResult
	err       error
	lastQuery *db.KNNQuery
}

func (m *mockStore) SearchKNN(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	m.lastQuery = q
	return m.result, m.err
}

func TestSearch_MapsEntriesToDocuments(t *testing.T) {
	s := &mockStore{result: &db.SearchResult{
		Total: 2,
		Entries: []db.SearchEntry{
			{Key: "partdex:parts:P1", Score: 0.92, Fields: map[string]string{"name": "bearing"}},
			{Key: "partdex:parts:P2", Score: 0.71, Fields: map[string]string{"name": "seal"}},
		},
	}}
	repo := New(s, "partdex:parts:")

	docs, err := repo.Search(context.Background(), []float32{0.1, 0.2}, 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].PartNumber() != "P1" {
		t.Errorf("key prefix must be stripped, got %q", docs[0].PartNumber())
	}
	if docs[0].Score() != 0.92 {
		t.Errorf("expected similarity 0.92, got %f", docs[0].Score())
	}

	if s.lastQuery.IndexName != "partdex:parts:idx" {
		t.Errorf("unexpected index name %q", s.lastQuery.IndexName)
	}
	if s.lastQuery.K != 5 {
		t.Errorf("expected K=5, got %d", s.lastQuery.K)
	}
}

func TestSearch_StoreError(t *testing.T) {
	s := &mockStore{err: errors.New("index missing")}
	repo := New(s, "partdex:parts:")

	_, err := repo.Search(context.Background(), []float32{0.1}, 5)
	if err == nil {
		t.Fatal("expected error")
	}
}
