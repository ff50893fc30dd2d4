// Package inquiry defines buyer inquiry records.
package inquiry

import (
	"strings"
	"time"

	"github.com/helix-supply/partdex/internal/domain"
)

// Status tracks inquiry lifecycle.
type Status string

const (
	// StatusPending marks a freshly created inquiry.
	StatusPending Status = "pending"
	// StatusQuoted marks an inquiry the vendor has responded to.
	StatusQuoted Status = "quoted"
	// StatusClosed marks a finished inquiry.
	StatusClosed Status = "closed"
)

// ValidStatus reports whether s is a known lifecycle status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusQuoted, StatusClosed:
		return true
	}
	return false
}

// ProductRef references one requested part inside an inquiry.
type ProductRef struct {
	PartNumber string
	Name       string
	Quantity   int
}

// Inquiry is a buyer request for quotation over one or more parts.
type Inquiry struct {
	ID       string
	BuyerID  string
	Products []ProductRef
	Message  string
	Status   Status
	Created  time.Time
}

// Validate checks the fields required to create an inquiry.
func (i Inquiry) Validate() error {
	if strings.TrimSpace(i.BuyerID) == "" {
		return domain.ErrInvalidInquiry
	}
	if len(i.Products) == 0 {
		return domain.ErrInvalidInquiry
	}
	for _, p := range i.Products {
		if strings.TrimSpace(p.PartNumber) == "" {
			return domain.ErrInvalidInquiry
		}
	}
	return nil
}

// MaskBuyerID obscures the local part of a buyer email for vendor
// listings ("johndoe@x.com" -> "j***e@x.com"). Non-email IDs are
// returned unchanged.
func MaskBuyerID(id string) string {
	local, dom, ok := strings.Cut(id, "@")
	if !ok || local == "" {
		return id
	}
	if len(local) == 1 {
		return local + "***@" + dom
	}
	return local[:1] + "***" + local[len(local)-1:] + "@" + dom
}
