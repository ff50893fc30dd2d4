// Package openai holds clients for the OpenAI-compatible inference
// endpoints: the embedding service and the completion (classification)
// service.
package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/helix-supply/partdex/internal/domain"
	"github.com/helix-supply/partdex/internal/metrics"
)

// Embedder turns text into fixed-dimension vectors via an
// OpenAI-compatible embeddings API (e.g. an Ollama gateway).
type Embedder struct {
	client     *openai.Client
	model      openai.EmbeddingModel
	dimensions int
	timeout    time.Duration
	logger     *zap.Logger
}

// EmbedderConfig holds the embedding provider settings.
type EmbedderConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	Dimensions int
	Timeout    time.Duration
	Logger     *zap.Logger
}

// NewEmbedder creates an embedding client.
func NewEmbedder(cfg *EmbedderConfig) *Embedder {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL

	return &Embedder{
		client:     openai.NewClientWithConfig(clientCfg),
		model:      openai.EmbeddingModel(cfg.Model),
		dimensions: cfg.Dimensions,
		timeout:    cfg.Timeout,
		logger:     cfg.Logger,
	}
}

// Embed returns the embedding vector for text. The call carries its own
// fixed timeout; a timeout or provider failure surfaces as
// domain.ErrEmbeddingUnavailable, a wrong-sized vector as
// domain.ErrVectorDimMismatch (fail fast, never feed a corrupt vector
// to the index).
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:          []string{text},
		Model:          e.model,
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	})

	metrics.RetrievalDuration.WithLabelValues("embedding").Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.RetrievalRequestsTotal.WithLabelValues("embedding", "error").Inc()
		return nil, wrapProviderError(err, domain.ErrEmbeddingUnavailable)
	}

	if len(resp.Data) == 0 {
		metrics.RetrievalRequestsTotal.WithLabelValues("embedding", "error").Inc()
		return nil, fmt.Errorf("empty embedding response: %w", domain.ErrEmbeddingUnavailable)
	}

	vec := resp.Data[0].Embedding
	if e.dimensions > 0 && len(vec) != e.dimensions {
		metrics.RetrievalRequestsTotal.WithLabelValues("embedding", "error").Inc()
		return nil, fmt.Errorf("expected %d dimensions, got %d: %w",
			e.dimensions, len(vec), domain.ErrVectorDimMismatch)
	}

	metrics.RetrievalRequestsTotal.WithLabelValues("embedding", "success").Inc()
	if tokens := resp.Usage.TotalTokens; tokens > 0 {
		metrics.EmbeddingTokensTotal.WithLabelValues(string(e.model), "total").Add(float64(tokens))
		metrics.EmbeddingTokensTotal.WithLabelValues(string(e.model), "prompt").
			Add(float64(resp.Usage.PromptTokens))
	}

	return vec, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (e *Embedder) HealthCheck(ctx context.Context) error {
	if _, err := e.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// wrapProviderError maps a go-openai error onto the given sentinel with
// readable context.
func wrapProviderError(err error, sentinel error) error {
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("provider error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), sentinel)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("provider error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, sentinel)
	}

	return fmt.Errorf("%v: %w", err, sentinel)
}
