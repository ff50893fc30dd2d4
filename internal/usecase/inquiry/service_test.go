package inquiry

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/helix-supply/partdex/internal/domain"
	dominq "github.com/helix-supply/partdex/internal/domain/inquiry"
)

// --- Mocks ---

type mockRepo struct {
	created    *dominq.Inquiry
	createErr  error
	list       []dominq.Inquiry
	listErr    error
	updated    dominq.Inquiry
	updateErr  error
	lastStatus dominq.Status
}

func (m *mockRepo) Create(_ context.Context, inq dominq.Inquiry) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = &inq
	return nil
}

func (m *mockRepo) Get(_ context.Context, _ string) (dominq.Inquiry, error) {
	return dominq.Inquiry{}, domain.ErrInquiryNotFound
}

func (m *mockRepo) List(_ context.Context) ([]dominq.Inquiry, error) {
	return m.list, m.listErr
}

func (m *mockRepo) ListByBuyer(_ context.Context, buyerID string) ([]dominq.Inquiry, error) {
	filtered := make([]dominq.Inquiry, 0, len(m.list))
	for _, inq := range m.list {
		if inq.BuyerID == buyerID {
			filtered = append(filtered, inq)
		}
	}
	return filtered, m.listErr
}

func (m *mockRepo) UpdateStatus(_ context.Context, _ string, status dominq.Status) (dominq.Inquiry, error) {
	m.lastStatus = status
	return m.updated, m.updateErr
}

type mockNotifier struct {
	notified chan dominq.Inquiry
	err      error
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{notified: make(chan dominq.Inquiry, 1)}
}

func (m *mockNotifier) InquiryCreated(_ context.Context, inq dominq.Inquiry) error {
	m.notified <- inq
	return m.err
}

func products() []dominq.ProductRef {
	return []dominq.ProductRef{{PartNumber: "6205-2RS", Name: "Bearing", Quantity: 10}}
}

// --- Tests ---

func TestCreate_PersistsPendingInquiry(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, nil, zap.NewNop())

	inq, err := svc.Create(context.Background(), "buyer@example.com", "need a quote", products())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if inq.ID == "" {
		t.Error("expected generated ID")
	}
	if inq.Status != dominq.StatusPending {
		t.Errorf("expected pending status, got %q", inq.Status)
	}
	if inq.Created.IsZero() || inq.Created.Location() != time.UTC {
		t.Errorf("expected UTC creation time, got %v", inq.Created)
	}
	if repo.created == nil || repo.created.ID != inq.ID {
		t.Error("inquiry not persisted")
	}
}

func TestCreate_ValidationFailures(t *testing.T) {
	svc := New(&mockRepo{}, nil, zap.NewNop())

	tests := []struct {
		name     string
		buyerID  string
		products []dominq.ProductRef
	}{
		{"empty buyer", "", products()},
		{"no products", "buyer@example.com", nil},
		{"product without part number", "buyer@example.com", []dominq.ProductRef{{Quantity: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.buyerID, "", tt.products)
			if !errors.Is(err, domain.ErrInvalidInquiry) {
				t.Fatalf("expected ErrInvalidInquiry, got %v", err)
			}
		})
	}
}

func TestCreate_DispatchesNotification(t *testing.T) {
	repo := &mockRepo{}
	notifier := newMockNotifier()
	svc := New(repo, notifier, zap.NewNop())

	inq, err := svc.Create(context.Background(), "buyer@example.com", "hello", products())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	select {
	case notified := <-notifier.notified:
		if notified.ID != inq.ID {
			t.Errorf("notified inquiry %s, want %s", notified.ID, inq.ID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("notification not dispatched")
	}
}

func TestCreate_NotificationFailureDoesNotFailCreate(t *testing.T) {
	notifier := newMockNotifier()
	notifier.err = errors.New("smtp down")
	svc := New(&mockRepo{}, notifier, zap.NewNop())

	_, err := svc.Create(context.Background(), "buyer@example.com", "hello", products())
	if err != nil {
		t.Fatalf("Create must not fail on notification error: %v", err)
	}
	<-notifier.notified
}

func TestVendorList_MasksBuyerEmails(t *testing.T) {
	repo := &mockRepo{list: []dominq.Inquiry{
		{ID: "1", BuyerID: "johndoe@example.com"},
		{ID: "2", BuyerID: "not-an-email"},
	}}
	svc := New(repo, nil, zap.NewNop())

	inquiries, err := svc.VendorList(context.Background())
	if err != nil {
		t.Fatalf("VendorList failed: %v", err)
	}
	if inquiries[0].BuyerID != "j***e@example.com" {
		t.Errorf("expected masked email, got %q", inquiries[0].BuyerID)
	}
	if inquiries[1].BuyerID != "not-an-email" {
		t.Errorf("non-email IDs must pass through, got %q", inquiries[1].BuyerID)
	}
}

func TestBuyerList_Unmasked(t *testing.T) {
	repo := &mockRepo{list: []dominq.Inquiry{
		{ID: "1", BuyerID: "alice@example.com"},
		{ID: "2", BuyerID: "bob@example.com"},
	}}
	svc := New(repo, nil, zap.NewNop())

	inquiries, err := svc.BuyerList(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("BuyerList failed: %v", err)
	}
	if len(inquiries) != 1 || inquiries[0].BuyerID != "alice@example.com" {
		t.Errorf("buyer sees their own unmasked inquiries, got %v", inquiries)
	}
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	svc := New(&mockRepo{}, nil, zap.NewNop())

	_, err := svc.UpdateStatus(context.Background(), "inq-1", "shipped")
	if !errors.Is(err, domain.ErrInvalidInquiry) {
		t.Fatalf("expected ErrInvalidInquiry, got %v", err)
	}
}

func TestUpdateStatus_Valid(t *testing.T) {
	repo := &mockRepo{updated: dominq.Inquiry{ID: "inq-1", Status: dominq.StatusQuoted}}
	svc := New(repo, nil, zap.NewNop())

	inq, err := svc.UpdateStatus(context.Background(), "inq-1", dominq.StatusQuoted)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if inq.Status != dominq.StatusQuoted || repo.lastStatus != dominq.StatusQuoted {
		t.Errorf("status not propagated, got %q", inq.Status)
	}
}
