// Package api consumes the briefing service's two endpoints.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/peakwatch/avybrief/internal/domain/briefing"
	"github.com/peakwatch/avybrief/internal/domain/forecast"
	apperrors "github.com/peakwatch/avybrief/pkg/errors"
	"github.com/peakwatch/avybrief/pkg/fetch"
)

// Client is a typed consumer of the avdata and llmsummary endpoints.
type Client struct {
	baseURL string
	fetcher *fetch.Client
}

// NewClient builds an endpoint client on top of a retrying fetcher.
func NewClient(baseURL string, fetcher *fetch.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		fetcher: fetcher,
	}
}

type avDataEnvelope struct {
	CleanedData *forecast.CleanedData `json:"cleanedData"`
	Error       string                `json:"error"`
}

type summaryEnvelope struct {
	LlmSummary string `json:"llmSummary"`
	Error      string `json:"error"`
}

// FetchForecast retrieves the cleaned forecast. An error field embedded in a
// 200 body counts as a failure, carrying the server's message.
func (c *Client) FetchForecast(ctx context.Context) (forecast.CleanedData, error) {
	resp, err := c.fetcher.Get(ctx, c.baseURL+"/api/avdata")
	if err != nil {
		return forecast.CleanedData{}, fmt.Errorf("fetch forecast: %w", err)
	}
	defer resp.Body.Close()

	var env avDataEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return forecast.CleanedData{}, fmt.Errorf("decode forecast response: %w", err)
	}
	if env.Error != "" {
		return forecast.CleanedData{}, apperrors.Wrap("api_error", env.Error, nil)
	}
	if env.CleanedData == nil {
		return forecast.CleanedData{}, apperrors.Wrap("missing_data", "response is missing cleanedData", nil)
	}
	return *env.CleanedData, nil
}

// GenerateBriefing posts the cleaned forecast and returns the briefing text.
func (c *Client) GenerateBriefing(ctx context.Context, cleaned forecast.CleanedData) (string, error) {
	payload := briefing.Request{CleanedData: &cleaned}
	resp, err := c.fetcher.PostJSON(ctx, c.baseURL+"/api/llmsummary", payload)
	if err != nil {
		return "", fmt.Errorf("generate briefing: %w", err)
	}
	defer resp.Body.Close()

	var env summaryEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return "", fmt.Errorf("decode briefing response: %w", err)
	}
	if env.Error != "" {
		return "", apperrors.Wrap("api_error", env.Error, nil)
	}
	if env.LlmSummary == "" {
		return "", apperrors.Wrap("missing_data", "response is missing llmSummary", nil)
	}
	return env.LlmSummary, nil
}
