package briefing

import (
	"github.com/peakwatch/avybrief/internal/domain/forecast"
	"github.com/peakwatch/avybrief/pkg/metrics"
)

// Config configures the briefing generation.
type Config struct {
	Model        string
	SystemPrompt string
}

// Request represents the incoming briefing payload. CleanedData is a pointer
// so a missing field is distinguishable from an empty forecast.
type Request struct {
	CleanedData *forecast.CleanedData `json:"cleanedData"`
}

// Response is returned by the briefing endpoint.
type Response struct {
	LlmSummary string              `json:"llmSummary"`
	TokenUsage *metrics.TokenUsage `json:"tokenUsage,omitempty"`
}
