package inquiry

import (
	"context"

	dominq "github.com/helix-supply/partdex/internal/domain/inquiry"
)

// Repository is the persistence contract for inquiry records.
type Repository interface {
	Create(ctx context.Context, inq dominq.Inquiry) error
	Get(ctx context.Context, id string) (dominq.Inquiry, error)
	List(ctx context.Context) ([]dominq.Inquiry, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]dominq.Inquiry, error)
	UpdateStatus(ctx context.Context, id string, status dominq.Status) (dominq.Inquiry, error)
}

// Notifier dispatches out-of-band notifications about inquiries.
type Notifier interface {
	InquiryCreated(ctx context.Context, inq dominq.Inquiry) error
}
