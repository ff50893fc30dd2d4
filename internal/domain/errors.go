package domain

import "errors"

var (
	// ErrEmptyQuery signals a search request without query text.
	ErrEmptyQuery = errors.New("query text is empty")
	// ErrPartNotFound signals a missing catalog part.
	ErrPartNotFound = errors.New("part not found")
	// ErrInquiryNotFound signals a missing inquiry record.
	ErrInquiryNotFound = errors.New("inquiry not found")
	// ErrInvalidInquiry signals an inquiry that fails validation.
	ErrInvalidInquiry = errors.New("invalid inquiry")

	// ErrEmbeddingUnavailable signals an embedding provider failure or timeout.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
	// ErrVectorDimMismatch signals an embedding of unexpected dimension.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrAnalyzerUnavailable signals a completion provider failure or timeout.
	ErrAnalyzerUnavailable = errors.New("query analyzer unavailable")
	// ErrMalformedAnalysis signals a completion response that does not
	// match the structured analysis contract.
	ErrMalformedAnalysis = errors.New("malformed analysis response")
)
