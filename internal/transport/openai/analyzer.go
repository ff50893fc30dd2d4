package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/helix-supply/partdex/internal/domain"
	"github.com/helix-supply/partdex/internal/domain/search/analysis"
	"github.com/helix-supply/partdex/internal/metrics"
)

// analyzePrompt is the fixed instruction template sent with the raw
// query. The model must answer with the four analysis fields as JSON.
const analyzePrompt = `Analyze this industrial procurement query: %q

Tasks:
1. Determine if the query is specific (e.g., includes a part number or detailed spec) or ambiguous/broad.
2. If specific, extract the part number and technical requirements.
3. If ambiguous, generate a single clear question to narrow down the search.

Return JSON:
{
  "status": "specific" | "ambiguous",
  "extracted_part_number": "string or null",
  "requirements": {},
  "clarification_question": "string or null"
}`

// Analyzer classifies queries via an OpenAI-compatible chat completion
// endpoint with a JSON output contract.
type Analyzer struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// AnalyzerConfig holds the completion provider settings.
type AnalyzerConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewAnalyzer creates a query analyzer client.
func NewAnalyzer(cfg *AnalyzerConfig) *Analyzer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL

	return &Analyzer{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  cfg.Logger,
	}
}

// analysisDTO mirrors the JSON contract of the completion service.
type analysisDTO struct {
	Status            string            `json:"status"`
	ExtractedPartNo   string            `json:"extracted_part_number"`
	Requirements      map[string]string `json:"requirements"`
	ClarificationText string            `json:"clarification_question"`
}

// Analyze classifies the raw query text. Transport failures surface as
// domain.ErrAnalyzerUnavailable and contract violations as
// domain.ErrMalformedAnalysis; the caller degrades both to the
// conservative "specific" fallback.
func (a *Analyzer) Analyze(ctx context.Context, queryText string) (analysis.Analysis, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: fmt.Sprintf(analyzePrompt, queryText),
		}},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0,
	})

	metrics.RetrievalDuration.WithLabelValues("analyzer").Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.RetrievalRequestsTotal.WithLabelValues("analyzer", "error").Inc()
		return analysis.Analysis{}, wrapProviderError(err, domain.ErrAnalyzerUnavailable)
	}

	if len(resp.Choices) == 0 {
		metrics.RetrievalRequestsTotal.WithLabelValues("analyzer", "error").Inc()
		return analysis.Analysis{}, fmt.Errorf("empty completion response: %w", domain.ErrAnalyzerUnavailable)
	}

	parsed, err := parseAnalysis(resp.Choices[0].Message.Content)
	if err != nil {
		metrics.RetrievalRequestsTotal.WithLabelValues("analyzer", "error").Inc()
		return analysis.Analysis{}, err
	}

	metrics.RetrievalRequestsTotal.WithLabelValues("analyzer", "success").Inc()
	return parsed, nil
}

// HealthCheck verifies API availability via ListModels.
func (a *Analyzer) HealthCheck(ctx context.Context) error {
	if _, err := a.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseAnalysis validates the completion text against the output
// contract.
func parseAnalysis(content string) (analysis.Analysis, error) {
	var dto analysisDTO
	if err := json.Unmarshal([]byte(content), &dto); err != nil {
		return analysis.Analysis{}, fmt.Errorf("%v: %w", err, domain.ErrMalformedAnalysis)
	}

	var status analysis.Status
	switch dto.Status {
	case string(analysis.Specific):
		status = analysis.Specific
	case string(analysis.Ambiguous):
		status = analysis.Ambiguous
	default:
		return analysis.Analysis{}, fmt.Errorf("unknown status %q: %w", dto.Status, domain.ErrMalformedAnalysis)
	}

	reqs := dto.Requirements
	if reqs == nil {
		reqs = map[string]string{}
	}

	return analysis.New(status, dto.ExtractedPartNo, reqs, dto.ClarificationText), nil
}
