package inquiry

import (
	"time"

	"github.com/helix-supply/partdex/internal/domain/inquiry"
)

// record is the JSON persistence shape of an inquiry.
type record struct {
	ID       string       `json:"id"`
	BuyerID  string       `json:"buyer_id"`
	Products []productRef `json:"products"`
	Message  string       `json:"message"`
	Status   string       `json:"status"`
	Created  time.Time    `json:"created"`
}

type productRef struct {
	PartNumber string `json:"part_number"`
	Name       string `json:"name,omitempty"`
	Quantity   int    `json:"quantity,omitempty"`
}

func toRecord(i inquiry.Inquiry) record {
	products := make([]productRef, 0, len(i.Products))
	for _, p := range i.Products {
		products = append(products, productRef(p))
	}
	return record{
		ID:       i.ID,
		BuyerID:  i.BuyerID,
		Products: products,
		Message:  i.Message,
		Status:   string(i.Status),
		Created:  i.Created,
	}
}

func (r record) toDomain() inquiry.Inquiry {
	products := make([]inquiry.ProductRef, 0, len(r.Products))
	for _, p := range r.Products {
		products = append(products, inquiry.ProductRef(p))
	}
	return inquiry.Inquiry{
		ID:       r.ID,
		BuyerID:  r.BuyerID,
		Products: products,
		Message:  r.Message,
		Status:   inquiry.Status(r.Status),
		Created:  r.Created,
	}
}
