package chi

import (
	"encoding/json"
	"net/http"
	"time"

	dominq "github.com/helix-supply/partdex/internal/domain/inquiry"
	"github.com/helix-supply/partdex/internal/domain/search/document"
	"github.com/helix-supply/partdex/internal/domain/search/fused"
	"github.com/helix-supply/partdex/internal/domain/search/query"
	"github.com/helix-supply/partdex/internal/domain/search/response"
)

// Error codes returned in error responses.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codePartNotFound     = "part_not_found"
	codeInquiryNotFound  = "inquiry_not_found"
	codeInternalError    = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type searchRequest struct {
	Query   string         `json:"query"`
	Context []turnRequest  `json:"context,omitempty"`
	Filters *filterRequest `json:"filters,omitempty"`
}

type turnRequest struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type filterRequest struct {
	Category  *string `json:"category,omitempty"`
	PhasedOut *bool   `json:"phased_out,omitempty"`
}

type searchResponse struct {
	Kind     string     `json:"kind"`
	Matches  []matchDTO `json:"matches"`
	Question string     `json:"question,omitempty"`
}

type matchDTO struct {
	PartNumber    string            `json:"part_number"`
	CombinedScore float64           `json:"combined_score"`
	LexicalScore  *float64          `json:"lexical_score,omitempty"`
	SemanticScore *float64          `json:"semantic_score,omitempty"`
	Fields        map[string]string `json:"fields"`
	Highlights    map[string]string `json:"highlights,omitempty"`
}

type partDTO struct {
	PartNumber string            `json:"part_number"`
	Score      *float64          `json:"score,omitempty"`
	Fields     map[string]string `json:"fields"`
}

type similarResponse struct {
	Matches []partDTO `json:"matches"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

type createInquiryRequest struct {
	BuyerID  string              `json:"buyer_id"`
	Message  string              `json:"message"`
	Products []productRefRequest `json:"products"`
}

type productRefRequest struct {
	PartNumber string `json:"part_number"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type inquiryDTO struct {
	ID       string          `json:"id"`
	BuyerID  string          `json:"buyer_id"`
	Products []productRefDTO `json:"products"`
	Message  string          `json:"message,omitempty"`
	Status   string          `json:"status"`
	Created  time.Time       `json:"created"`
}

type productRefDTO struct {
	PartNumber string `json:"part_number"`
	Name       string `json:"name,omitempty"`
	Quantity   int    `json:"quantity"`
}

type inquiryListResponse struct {
	Items []inquiryDTO `json:"items"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func turnsFromRequest(reqs []turnRequest) []query.Turn {
	if len(reqs) == 0 {
		return nil
	}
	turns := make([]query.Turn, 0, len(reqs))
	for _, t := range reqs {
		turns = append(turns, query.NewTurn(query.Role(t.Role), t.Text))
	}
	return turns
}

func filtersFromRequest(f *filterRequest) query.Filters {
	if f == nil {
		return query.Filters{}
	}
	return query.Filters{Category: f.Category, PhasedOut: f.PhasedOut}
}

func searchResponseToDTO(resp response.Response) searchResponse {
	matches := resp.Matches()
	dtos := make([]matchDTO, 0, len(matches))
	for i := range matches {
		dtos = append(dtos, matchToDTO(&matches[i]))
	}
	return searchResponse{
		Kind:     string(resp.Kind()),
		Matches:  dtos,
		Question: resp.Question(),
	}
}

func matchToDTO(m *fused.Result) matchDTO {
	doc := m.Document()
	dto := matchDTO{
		PartNumber:    m.PartNumber(),
		CombinedScore: m.CombinedScore(),
		Fields:        doc.Fields(),
		Highlights:    doc.Highlights(),
	}
	if s, ok := m.LexicalScore(); ok {
		dto.LexicalScore = &s
	}
	if s, ok := m.SemanticScore(); ok {
		dto.SemanticScore = &s
	}
	return dto
}

func documentToDTO(doc document.Document, withScore bool) partDTO {
	dto := partDTO{
		PartNumber: doc.PartNumber(),
		Fields:     doc.Fields(),
	}
	if withScore {
		score := doc.Score()
		dto.Score = &score
	}
	return dto
}

func inquiryToDTO(inq dominq.Inquiry) inquiryDTO {
	products := make([]productRefDTO, 0, len(inq.Products))
	for _, p := range inq.Products {
		products = append(products, productRefDTO(p))
	}
	return inquiryDTO{
		ID:       inq.ID,
		BuyerID:  inq.BuyerID,
		Products: products,
		Message:  inq.Message,
		Status:   string(inq.Status),
		Created:  inq.Created,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
