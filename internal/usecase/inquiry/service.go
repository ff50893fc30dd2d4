// Package inquiry handles buyer inquiry lifecycle and vendor listings.
package inquiry

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/helix-supply/partdex/internal/domain"
	dominq "github.com/helix-supply/partdex/internal/domain/inquiry"
)

const notifyTimeout = 10 * time.Second

// Service coordinates inquiry persistence and notification.
type Service struct {
	repo     Repository
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// New creates an inquiry service. notifier may be nil when
// notifications are not configured.
func New(repo Repository, notifier Notifier, logger *zap.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, logger: logger, now: time.Now}
}

// Create persists a new pending inquiry and dispatches the vendor
// notification without blocking the caller. Notification failure is
// logged, never propagated.
func (s *Service) Create(
	ctx context.Context, buyerID, message string, products []dominq.ProductRef,
) (dominq.Inquiry, error) {
	inq := dominq.Inquiry{
		ID:       uuid.NewString(),
		BuyerID:  buyerID,
		Products: products,
		Message:  message,
		Status:   dominq.StatusPending,
		Created:  s.now().UTC(),
	}
	if err := inq.Validate(); err != nil {
		return dominq.Inquiry{}, err
	}

	if err := s.repo.Create(ctx, inq); err != nil {
		return dominq.Inquiry{}, fmt.Errorf("create inquiry: %w", err)
	}

	if s.notifier != nil {
		go s.notify(inq)
	}

	return inq, nil
}

func (s *Service) notify(inq dominq.Inquiry) {
	// Detached from the request context so a fast client response
	// doesn't cancel the dispatch.
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := s.notifier.InquiryCreated(ctx, inq); err != nil {
		s.logger.Warn("inquiry notification failed",
			zap.String("inquiry_id", inq.ID),
			zap.Error(err),
		)
	}
}

// VendorList returns all inquiries with buyer emails masked.
func (s *Service) VendorList(ctx context.Context) ([]dominq.Inquiry, error) {
	inquiries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	for i := range inquiries {
		inquiries[i].BuyerID = dominq.MaskBuyerID(inquiries[i].BuyerID)
	}
	return inquiries, nil
}

// BuyerList returns the inquiries of one buyer.
func (s *Service) BuyerList(ctx context.Context, buyerID string) ([]dominq.Inquiry, error) {
	inquiries, err := s.repo.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("list buyer inquiries: %w", err)
	}
	return inquiries, nil
}

// UpdateStatus moves an inquiry to a new lifecycle status.
func (s *Service) UpdateStatus(ctx context.Context, id string, status dominq.Status) (dominq.Inquiry, error) {
	if !dominq.ValidStatus(status) {
		return dominq.Inquiry{}, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInquiry, status)
	}
	inq, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return dominq.Inquiry{}, fmt.Errorf("update status: %w", err)
	}
	return inq, nil
}
