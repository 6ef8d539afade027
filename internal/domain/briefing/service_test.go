package briefing

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/peakwatch/avybrief/internal/domain/forecast"
	"github.com/peakwatch/avybrief/internal/infra/llm/gemini"
	apperrors "github.com/peakwatch/avybrief/pkg/errors"
)

func TestServiceGenerateSuccess(t *testing.T) {
	stub := &stubGenerateClient{
		response: gemini.GenerateContentResponse{
			Candidates: []gemini.Candidate{
				{Content: gemini.Content{Parts: []gemini.Part{{Text: "Danger is **CONSIDERABLE** today."}}}},
			},
			UsageMetadata: &gemini.UsageMetadata{PromptTokenCount: 120, CandidatesTokenCount: 85, TotalTokenCount: 205},
		},
	}

	svc := NewService(Config{Model: "gemini-test", SystemPrompt: "Act as a mountain guide."}, stub, newTestLogger())
	cleaned := sampleCleanedData()
	resp, err := svc.Generate(context.Background(), Request{CleanedData: &cleaned})
	require.NoError(t, err)
	require.Equal(t, "Danger is **CONSIDERABLE** today.", resp.LlmSummary)
	require.NotNil(t, resp.TokenUsage)
	require.Equal(t, 205, resp.TokenUsage.TotalTokens)

	require.Equal(t, "gemini-test", stub.lastModel)
	require.NotNil(t, stub.lastReq.SystemInstruction)
	require.Equal(t, "Act as a mountain guide.", stub.lastReq.SystemInstruction.Parts[0].Text)
	require.Len(t, stub.lastReq.Contents, 1)
	require.Contains(t, stub.lastReq.Contents[0].Parts[0].Text, "three-paragraph safety briefing")
	require.Contains(t, stub.lastReq.Contents[0].Parts[0].Text, `"areaName":"Sea to Sky"`)
}

func TestServiceGenerateMissingPayload(t *testing.T) {
	stub := &stubGenerateClient{}
	svc := NewService(Config{Model: "gemini-test", SystemPrompt: "prompt"}, stub, newTestLogger())

	_, err := svc.Generate(context.Background(), Request{})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
	require.Equal(t, 0, stub.calls)
}

func TestServiceGenerateLLMFailure(t *testing.T) {
	stub := &stubGenerateClient{err: errors.New("gemini request failed: status=503")}
	svc := NewService(Config{Model: "gemini-test", SystemPrompt: "prompt"}, stub, newTestLogger())

	cleaned := sampleCleanedData()
	_, err := svc.Generate(context.Background(), Request{CleanedData: &cleaned})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "llm_error"))
}

func TestServiceGenerateNoCandidates(t *testing.T) {
	stub := &stubGenerateClient{response: gemini.GenerateContentResponse{}}
	svc := NewService(Config{Model: "gemini-test", SystemPrompt: "prompt"}, stub, newTestLogger())

	cleaned := sampleCleanedData()
	_, err := svc.Generate(context.Background(), Request{CleanedData: &cleaned})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "llm_error"))
}

func sampleCleanedData() forecast.CleanedData {
	return forecast.CleanedData{
		ReportMetadata: forecast.ReportMetadata{Forecaster: "J. Smith", Confidence: "High"},
		Summary:        "Wind slabs near ridgelines.",
		AreaName:       "Sea to Sky",
		DailyRatings: []forecast.DailyRating{
			{DateDisplay: "Jan 10th", DangerAlpine: "Considerable", DangerTreeline: "Moderate", DangerBelowTreeline: "Low"},
		},
	}
}

type stubGenerateClient struct {
	response  gemini.GenerateContentResponse
	err       error
	calls     int
	lastModel string
	lastReq   gemini.GenerateContentRequest
}

func (s *stubGenerateClient) GenerateContent(ctx context.Context, model string, req gemini.GenerateContentRequest) (gemini.GenerateContentResponse, error) {
	s.calls++
	s.lastModel = model
	s.lastReq = req
	if s.err != nil {
		return gemini.GenerateContentResponse{}, s.err
	}
	return s.response, nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
