// Package inquiry persists inquiry records as JSON documents.
package inquiry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/helix-supply/partdex/internal/db"
	"github.com/helix-supply/partdex/internal/domain"
	dominq "github.com/helix-supply/partdex/internal/domain/inquiry"
)

// store is the consumer interface for inquiry persistence (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo stores inquiries under prefix + id.
type Repo struct {
	store  store
	prefix string
}

// New creates an inquiry repository. prefix is the record key prefix
// (e.g. "partdex:inquiries:").
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// Create persists a new inquiry.
func (r *Repo) Create(ctx context.Context, inq dominq.Inquiry) error {
	data, err := json.Marshal(toRecord(inq))
	if err != nil {
		return fmt.Errorf("marshal inquiry: %w", err)
	}
	if err := r.store.JSONSet(ctx, r.prefix+inq.ID, "$", data); err != nil {
		return fmt.Errorf("store inquiry %s: %w", inq.ID, err)
	}
	return nil
}

// Get fetches an inquiry by ID.
func (r *Repo) Get(ctx context.Context, id string) (dominq.Inquiry, error) {
	data, err := r.store.JSONGet(ctx, r.prefix+id)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return dominq.Inquiry{}, domain.ErrInquiryNotFound
		}
		return dominq.Inquiry{}, fmt.Errorf("get inquiry %s: %w", id, err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return dominq.Inquiry{}, fmt.Errorf("unmarshal inquiry %s: %w", id, err)
	}
	return rec.toDomain(), nil
}

// List returns all inquiries, most recent first.
func (r *Repo) List(ctx context.Context) ([]dominq.Inquiry, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan inquiries: %w", err)
	}

	inquiries := make([]dominq.Inquiry, 0, len(keys))
	for _, key := range keys {
		data, err := r.store.JSONGet(ctx, key)
		if err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				continue // deleted between scan and read
			}
			return nil, fmt.Errorf("get inquiry %s: %w", key, err)
		}
		var rec record
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}
		inquiries = append(inquiries, rec.toDomain())
	}

	sort.Slice(inquiries, func(i, j int) bool {
		return inquiries[i].Created.After(inquiries[j].Created)
	})
	return inquiries, nil
}

// ListByBuyer returns the inquiries of one buyer, most recent first.
func (r *Repo) ListByBuyer(ctx context.Context, buyerID string) ([]dominq.Inquiry, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := all[:0]
	for _, inq := range all {
		if inq.BuyerID == buyerID {
			filtered = append(filtered, inq)
		}
	}
	return filtered, nil
}

// UpdateStatus moves an inquiry to a new lifecycle status.
func (r *Repo) UpdateStatus(ctx context.Context, id string, status dominq.Status) (dominq.Inquiry, error) {
	inq, err := r.Get(ctx, id)
	if err != nil {
		return dominq.Inquiry{}, err
	}
	inq.Status = status
	if err := r.Create(ctx, inq); err != nil {
		return dominq.Inquiry{}, err
	}
	return inq, nil
}
