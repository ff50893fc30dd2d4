// Package chi exposes the partdex HTTP API.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/helix-supply/partdex/internal/domain"
	dominq "github.com/helix-supply/partdex/internal/domain/inquiry"
	"github.com/helix-supply/partdex/internal/domain/search/query"
	healthuc "github.com/helix-supply/partdex/internal/usecase/health"
	inquiryuc "github.com/helix-supply/partdex/internal/usecase/inquiry"
	searchuc "github.com/helix-supply/partdex/internal/usecase/search"
	smartuc "github.com/helix-supply/partdex/internal/usecase/smartsearch"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server wires the usecase services to HTTP handlers.
type Server struct {
	smart         *smartuc.Service
	search        *searchuc.Service
	inquiries     *inquiryuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates the HTTP API server.
func NewServer(
	smart *smartuc.Service,
	search *searchuc.Service,
	inquiries *inquiryuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		smart:     smart,
		search:    search,
		inquiries: inquiries,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidInquiry, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrPartNotFound, http.StatusNotFound, codePartNotFound),
		sentinelHandler(domain.ErrInquiryNotFound, http.StatusNotFound, codeInquiryNotFound),
	}
	return s
}

// Routes registers all API routes on the router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/search", s.Search)
	r.Get("/parts/{partNumber}", s.GetPart)
	r.Get("/parts/{partNumber}/similar", s.SimilarParts)
	r.Get("/categories", s.Categories)
	r.Post("/inquiries", s.CreateInquiry)
	r.Get("/inquiries", s.ListInquiries)
	r.Patch("/inquiries/{id}/status", s.UpdateInquiryStatus)
	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

// Search handles POST /search: one disambiguation pass over the query.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	q, err := query.New(req.Query, turnsFromRequest(req.Context), filtersFromRequest(req.Filters))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := s.smart.Search(r.Context(), q)
	writeJSON(w, http.StatusOK, searchResponseToDTO(resp))
}

// GetPart handles GET /parts/{partNumber}.
func (s *Server) GetPart(w http.ResponseWriter, r *http.Request) {
	partNumber := chi.URLParam(r, "partNumber")

	doc, err := s.search.Part(r.Context(), partNumber)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, documentToDTO(doc, false))
}

// SimilarParts handles GET /parts/{partNumber}/similar.
func (s *Server) SimilarParts(w http.ResponseWriter, r *http.Request) {
	partNumber := chi.URLParam(r, "partNumber")

	limit := 5
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "limit must be a positive integer")
			return
		}
		limit = n
	}

	docs, err := s.search.Similar(r.Context(), partNumber, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	dtos := make([]partDTO, 0, len(docs))
	for _, d := range docs {
		dtos = append(dtos, documentToDTO(d, true))
	}
	writeJSON(w, http.StatusOK, similarResponse{Matches: dtos})
}

// Categories handles GET /categories.
func (s *Server) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.search.Categories(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if cats == nil {
		cats = []string{}
	}
	writeJSON(w, http.StatusOK, categoriesResponse{Categories: cats})
}

// CreateInquiry handles POST /inquiries.
func (s *Server) CreateInquiry(w http.ResponseWriter, r *http.Request) {
	var req createInquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	products := make([]dominq.ProductRef, 0, len(req.Products))
	for _, p := range req.Products {
		products = append(products, dominq.ProductRef(p))
	}

	inq, err := s.inquiries.Create(r.Context(), req.BuyerID, req.Message, products)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, inquiryToDTO(inq))
}

// ListInquiries handles GET /inquiries. Without buyer_id it returns the
// vendor view with masked buyer emails.
func (s *Server) ListInquiries(w http.ResponseWriter, r *http.Request) {
	var (
		inquiries []dominq.Inquiry
		err       error
	)
	if buyerID := r.URL.Query().Get("buyer_id"); buyerID != "" {
		inquiries, err = s.inquiries.BuyerList(r.Context(), buyerID)
	} else {
		inquiries, err = s.inquiries.VendorList(r.Context())
	}
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	dtos := make([]inquiryDTO, 0, len(inquiries))
	for _, inq := range inquiries {
		dtos = append(dtos, inquiryToDTO(inq))
	}
	writeJSON(w, http.StatusOK, inquiryListResponse{Items: dtos})
}

// UpdateInquiryStatus handles PATCH /inquiries/{id}/status.
func (s *Server) UpdateInquiryStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	inq, err := s.inquiries.UpdateStatus(r.Context(), id, dominq.Status(req.Status))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inquiryToDTO(inq))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	writeJSON(w, status, healthResponse{Status: string(report.Status), Checks: checks})
}

// handleDomainError maps a domain error onto an HTTP response.
func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, handle := range s.errorHandlers {
		if handle(w, err) {
			return
		}
	}

	s.logger.Error("unhandled error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}
