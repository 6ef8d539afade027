package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/peakwatch/avybrief/internal/domain/briefing"
	"github.com/peakwatch/avybrief/internal/domain/forecast"
	"github.com/peakwatch/avybrief/internal/infra/config"
	apperrors "github.com/peakwatch/avybrief/pkg/errors"
)

func TestRouter_AvDataSuccess(t *testing.T) {
	cleaned := forecast.CleanedData{
		ReportMetadata: forecast.ReportMetadata{Forecaster: "J. Smith", Confidence: "High"},
		Summary:        "Watch for wind slabs.",
		AreaName:       "Sea to Sky",
		DailyRatings: []forecast.DailyRating{
			{DateDisplay: "Jan 10th", DangerAlpine: "Considerable", DangerTreeline: "Moderate", DangerBelowTreeline: "Low"},
		},
	}
	server := newRouterUnderTest(t, &stubForecast{data: cleaned}, &stubBriefing{})

	recorder := performGet("/api/avdata", server)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		CleanedData forecast.CleanedData `json:"cleanedData"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Equal(t, cleaned, body.CleanedData)
	require.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
}

func TestRouter_AvDataNoData(t *testing.T) {
	svc := &stubForecast{err: apperrors.Wrap("no_forecast_data", "no usable forecast data was found for this location or date", nil)}
	server := newRouterUnderTest(t, svc, &stubBriefing{})

	recorder := performGet("/api/avdata", server)
	require.Equal(t, http.StatusNotFound, recorder.Code)
	require.Equal(t, "no usable forecast data was found for this location or date", decodeErrorBody(t, recorder.Body.Bytes()))
}

func TestRouter_AvDataUpstreamFailure(t *testing.T) {
	svc := &stubForecast{err: apperrors.Wrap("forecast_unavailable", "could not retrieve external forecast data", nil)}
	server := newRouterUnderTest(t, svc, &stubBriefing{})

	recorder := performGet("/api/avdata", server)
	require.Equal(t, http.StatusBadGateway, recorder.Code)
	require.Equal(t, "could not retrieve external forecast data", decodeErrorBody(t, recorder.Body.Bytes()))
}

func TestRouter_LlmSummarySuccess(t *testing.T) {
	svc := &stubBriefing{
		generateFn: func(ctx context.Context, req briefing.Request) (briefing.Response, error) {
			require.NotNil(t, req.CleanedData)
			require.Equal(t, "Sea to Sky", req.CleanedData.AreaName)
			return briefing.Response{LlmSummary: "Stay alert today."}, nil
		},
	}
	server := newRouterUnderTest(t, &stubForecast{}, svc)

	recorder := performPost("/api/llmsummary", `{"cleanedData":{"areaName":"Sea to Sky"}}`, server)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body briefing.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Equal(t, "Stay alert today.", body.LlmSummary)
}

func TestRouter_LlmSummaryMissingPayload(t *testing.T) {
	svc := &stubBriefing{
		generateFn: func(ctx context.Context, req briefing.Request) (briefing.Response, error) {
			return briefing.Response{}, apperrors.Wrap("invalid_input", "missing cleanedData payload for LLM generation", nil)
		},
	}
	server := newRouterUnderTest(t, &stubForecast{}, svc)

	recorder := performPost("/api/llmsummary", `{}`, server)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, "missing cleanedData payload for LLM generation", decodeErrorBody(t, recorder.Body.Bytes()))
}

func TestRouter_LlmSummaryInvalidJSON(t *testing.T) {
	server := newRouterUnderTest(t, &stubForecast{}, &stubBriefing{})

	recorder := performPost("/api/llmsummary", `{"cleanedData":`, server)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.NotEmpty(t, decodeErrorBody(t, recorder.Body.Bytes()))
}

func TestRouter_LlmSummaryLLMFailure(t *testing.T) {
	svc := &stubBriefing{
		generateFn: func(ctx context.Context, req briefing.Request) (briefing.Response, error) {
			return briefing.Response{}, apperrors.Wrap("llm_error", "failed to generate summary from LLM", nil)
		},
	}
	server := newRouterUnderTest(t, &stubForecast{}, svc)

	recorder := performPost("/api/llmsummary", `{"cleanedData":{"areaName":"X"}}`, server)
	require.Equal(t, http.StatusBadGateway, recorder.Code)
	require.Equal(t, "failed to generate summary from LLM", decodeErrorBody(t, recorder.Body.Bytes()))
}

func TestRouter_RateLimitExceeded(t *testing.T) {
	handler := NewHandler(&stubForecast{data: forecast.CleanedData{AreaName: "Sea to Sky"}}, &stubBriefing{}, newTestLogger())
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
			RateLimit: config.RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 1,
				Burst:             1,
			},
		},
	}
	server := NewRouter(cfg, handler)

	first := performGet("/api/avdata", server)
	require.Equal(t, http.StatusOK, first.Code)

	second := performGet("/api/avdata", server)
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	require.Equal(t, "too many requests", decodeErrorBody(t, second.Body.Bytes()))
}

func performGet(path string, server *http.Server) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func performPost(path, body string, server *http.Server) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func newRouterUnderTest(t *testing.T, forecastSvc forecast.Service, briefingSvc briefing.Service) *http.Server {
	t.Helper()
	handler := NewHandler(forecastSvc, briefingSvc, newTestLogger())
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}
	return NewRouter(cfg, handler)
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type stubForecast struct {
	data forecast.CleanedData
	err  error
}

func (s *stubForecast) Current(ctx context.Context) (forecast.CleanedData, error) {
	if s.err != nil {
		return forecast.CleanedData{}, s.err
	}
	return s.data, nil
}

type stubBriefing struct {
	generateFn func(ctx context.Context, req briefing.Request) (briefing.Response, error)
}

func (s *stubBriefing) Generate(ctx context.Context, req briefing.Request) (briefing.Response, error) {
	if s.generateFn != nil {
		return s.generateFn(ctx, req)
	}
	return briefing.Response{}, nil
}

func decodeErrorBody(t *testing.T, raw []byte) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body.Error
}
