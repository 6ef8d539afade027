package briefing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/peakwatch/avybrief/internal/domain/forecast"
	"github.com/peakwatch/avybrief/internal/infra/llm/gemini"
	apperrors "github.com/peakwatch/avybrief/pkg/errors"
	"github.com/peakwatch/avybrief/pkg/metrics"
)

// Service generates AI safety briefings from cleaned forecast data.
type Service interface {
	Generate(ctx context.Context, req Request) (Response, error)
}

// GenerateClient is the slice of the Gemini client the service depends on.
type GenerateClient interface {
	GenerateContent(ctx context.Context, model string, req gemini.GenerateContentRequest) (gemini.GenerateContentResponse, error)
}

type service struct {
	cfg    Config
	client GenerateClient
	logger *slog.Logger
}

// NewService is a wire provider for the briefing domain.
func NewService(cfg Config, client GenerateClient, logger *slog.Logger) Service {
	return &service{cfg: cfg, client: client, logger: logger.With("component", "briefing.service")}
}

func (s *service) Generate(ctx context.Context, req Request) (Response, error) {
	if req.CleanedData == nil {
		return Response{}, apperrors.Wrap("invalid_input", "missing cleanedData payload for LLM generation", nil)
	}

	prompt, err := buildUserPrompt(*req.CleanedData)
	if err != nil {
		return Response{}, apperrors.Wrap("invalid_input", "cleanedData payload could not be encoded", err)
	}

	completion, err := s.client.GenerateContent(ctx, s.cfg.Model, gemini.GenerateContentRequest{
		Contents: []gemini.Content{
			{Parts: []gemini.Part{{Text: prompt}}},
		},
		SystemInstruction: &gemini.Content{
			Parts: []gemini.Part{{Text: s.cfg.SystemPrompt}},
		},
	})
	if err != nil {
		return Response{}, apperrors.Wrap("llm_error", "failed to generate summary from LLM", err)
	}

	text := completion.Text()
	if text == "" {
		return Response{}, apperrors.Wrap("llm_error", "LLM generation returned no content", nil)
	}

	usage := toTokenUsage(completion.UsageMetadata)
	s.logger.Info("briefing generated", "chars", len(text), "area", req.CleanedData.AreaName)

	return Response{LlmSummary: text, TokenUsage: usage}, nil
}

func buildUserPrompt(cleaned forecast.CleanedData) (string, error) {
	payload, err := json.Marshal(cleaned)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`You are a professional avalanche forecaster. Provide a concise, three-paragraph safety briefing for the forecast area.
1. The first paragraph must summarize the overall **current** risk and mention the **Forecaster** and their **Confidence**.
2. The second paragraph must recommend specific travel safety measures based on the danger levels for the **first day**.
3. The third paragraph must comment on the outlook or change in danger for the **subsequent days**, mentioning the primary dangers for days 2 and 3 if they differ significantly from day 1.

Here is the cleaned, multi-day data: %s`, payload), nil
}

func toTokenUsage(meta *gemini.UsageMetadata) *metrics.TokenUsage {
	if meta == nil {
		return nil
	}
	usage := metrics.TokenUsage{
		PromptTokens:     meta.PromptTokenCount,
		CompletionTokens: meta.CandidatesTokenCount,
		TotalTokens:      meta.TotalTokenCount,
	}
	if usage.IsZero() {
		return nil
	}
	return &usage
}
