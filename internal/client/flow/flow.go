// Package flow drives the two-stage fetch-then-brief sequence against the
// service endpoints. Rendering is delegated to a Presenter so the flow stays
// free of output concerns.
package flow

import (
	"context"
	"log/slog"

	"github.com/peakwatch/avybrief/internal/domain/forecast"
	apperrors "github.com/peakwatch/avybrief/pkg/errors"
)

// State identifies where the flow stopped.
type State string

const (
	StateDone           State = "done"
	StateFailedForecast State = "failed-forecast"
	StateFailedBriefing State = "failed-briefing"
)

// Presenter receives flow output.
type Presenter interface {
	RenderForecast(data forecast.CleanedData)
	RenderBriefing(summary, areaName string)
	RenderError(message string)
}

// API is the slice of the endpoint client the flow depends on.
type API interface {
	FetchForecast(ctx context.Context) (forecast.CleanedData, error)
	GenerateBriefing(ctx context.Context, cleaned forecast.CleanedData) (string, error)
}

// Flow runs the two stages strictly in order and never backwards.
type Flow struct {
	api       API
	presenter Presenter
	logger    *slog.Logger
}

// New builds a briefing flow.
func New(api API, presenter Presenter, logger *slog.Logger) *Flow {
	return &Flow{api: api, presenter: presenter, logger: logger.With("component", "client.flow")}
}

// Run fetches the forecast and then the AI briefing. A forecast failure stops
// the flow before the briefing request is issued. A briefing failure leaves
// the already-presented forecast in place; only the error message is added.
func (f *Flow) Run(ctx context.Context) State {
	cleaned, err := f.api.FetchForecast(ctx)
	if err != nil {
		f.logger.Error("forecast stage failed", "error", err)
		f.presenter.RenderError("Failed to load forecast data: " + apperrors.Message(err))
		return StateFailedForecast
	}
	f.presenter.RenderForecast(cleaned)

	summary, err := f.api.GenerateBriefing(ctx, cleaned)
	if err != nil {
		f.logger.Error("briefing stage failed", "error", err)
		f.presenter.RenderError("AI briefing could not be generated: " + apperrors.Message(err))
		return StateFailedBriefing
	}
	f.presenter.RenderBriefing(summary, cleaned.AreaName)

	return StateDone
}
