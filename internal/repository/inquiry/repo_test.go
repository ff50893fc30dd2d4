package inquiry

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/helix-supply/partdex/internal/db"
	"github.com/helix-supply/partdex/internal/domain"
	dominq "github.com/helix-supply/partdex/internal/domain/inquiry"
)

// --- Mocks ---

type mockStore struct {
	docs     map[string][]byte
	scanErr  error
	getErr   error
	setErr   error
	lastPath string
}

func newMockStore() *mockStore {
	return &mockStore{docs: map[string][]byte{}}
}

func (m *mockStore) JSONSet(_ context.Context, key, path string, data []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.lastPath = path
	m.docs[key] = data
	return nil
}

func (m *mockStore) JSONGet(_ context.Context, key string, _ ...string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	data, ok := m.docs[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return data, nil
}

func (m *mockStore) Scan(_ context.Context, _ string) ([]string, error) {
	if m.scanErr != nil {
		return nil, m.scanErr
	}
	keys := make([]string, 0, len(m.docs))
	for k := range m.docs {
		keys = append(keys, k)
	}
	return keys, nil
}

func makeInquiry(id, buyerID string, created time.Time) dominq.Inquiry {
	return dominq.Inquiry{
		ID:      id,
		BuyerID: buyerID,
		Products: []dominq.ProductRef{
			{PartNumber: "6205-2RS", Name: "Deep groove bearing", Quantity: 20},
		},
		Message: "need a quote",
		Status:  dominq.StatusPending,
		Created: created,
	}
}

// --- Tests ---

func TestCreateAndGet(t *testing.T) {
	s := newMockStore()
	repo := New(s, "partdex:inquiries:")
	inq := makeInquiry("inq-1", "buyer@example.com", time.Now().UTC())

	if err := repo.Create(context.Background(), inq); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if s.lastPath != "$" {
		t.Errorf("expected root path, got %q", s.lastPath)
	}

	got, err := repo.Get(context.Background(), "inq-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.BuyerID != "buyer@example.com" {
		t.Errorf("unexpected buyer %q", got.BuyerID)
	}
	if len(got.Products) != 1 || got.Products[0].PartNumber != "6205-2RS" {
		t.Errorf("unexpected products %v", got.Products)
	}
	if got.Status != dominq.StatusPending {
		t.Errorf("unexpected status %q", got.Status)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := New(newMockStore(), "partdex:inquiries:")

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrInquiryNotFound) {
		t.Fatalf("expected ErrInquiryNotFound, got %v", err)
	}
}

func TestList_MostRecentFirst(t *testing.T) {
	s := newMockStore()
	repo := New(s, "partdex:inquiries:")
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "mid", "new"} {
		inq := makeInquiry(id, "buyer@example.com", base.Add(time.Duration(i)*time.Hour))
		if err := repo.Create(context.Background(), inq); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 inquiries, got %d", len(got))
	}
	if got[0].ID != "new" || got[2].ID != "old" {
		t.Errorf("expected newest first, got %s,%s,%s", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestList_SkipsCorruptRecords(t *testing.T) {
	s := newMockStore()
	repo := New(s, "partdex:inquiries:")

	if err := repo.Create(context.Background(), makeInquiry("ok", "b@example.com", time.Now())); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	s.docs["partdex:inquiries:bad"] = []byte("{not json")

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "ok" {
		t.Errorf("corrupt records must be skipped, got %v", got)
	}
}

func TestListByBuyer(t *testing.T) {
	s := newMockStore()
	repo := New(s, "partdex:inquiries:")

	for id, buyer := range map[string]string{
		"a": "alice@example.com",
		"b": "bob@example.com",
		"c": "alice@example.com",
	} {
		if err := repo.Create(context.Background(), makeInquiry(id, buyer, time.Now())); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	got, err := repo.ListByBuyer(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("ListByBuyer failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 inquiries for alice, got %d", len(got))
	}
	for _, inq := range got {
		if inq.BuyerID != "alice@example.com" {
			t.Errorf("unexpected buyer %q", inq.BuyerID)
		}
	}
}

func TestUpdateStatus(t *testing.T) {
	s := newMockStore()
	repo := New(s, "partdex:inquiries:")
	if err := repo.Create(context.Background(), makeInquiry("inq-1", "b@example.com", time.Now())); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.UpdateStatus(context.Background(), "inq-1", dominq.StatusQuoted)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if got.Status != dominq.StatusQuoted {
		t.Errorf("expected quoted, got %q", got.Status)
	}

	// Persisted, not just returned
	var rec record
	if err := json.Unmarshal(s.docs["partdex:inquiries:inq-1"], &rec); err != nil {
		t.Fatalf("unmarshal stored record: %v", err)
	}
	if rec.Status != string(dominq.StatusQuoted) {
		t.Errorf("stored status %q, want quoted", rec.Status)
	}
}
