package forecast

import (
	"context"
	"log/slog"

	"github.com/peakwatch/avybrief/internal/infra/avcan"
	apperrors "github.com/peakwatch/avybrief/pkg/errors"
)

// Service exposes the cleaned forecast for the configured location.
type Service interface {
	Current(ctx context.Context) (CleanedData, error)
}

// ProductClient fetches raw forecast products from the upstream API.
type ProductClient interface {
	PointProduct(ctx context.Context, lat, long float64) (*avcan.Product, error)
}

type service struct {
	cfg    Config
	client ProductClient
	logger *slog.Logger
}

// NewService is a wire provider for the forecast domain.
func NewService(cfg Config, client ProductClient, logger *slog.Logger) Service {
	return &service{cfg: cfg, client: client, logger: logger.With("component", "forecast.service")}
}

func (s *service) Current(ctx context.Context) (CleanedData, error) {
	product, err := s.client.PointProduct(ctx, s.cfg.Latitude, s.cfg.Longitude)
	if err != nil {
		return CleanedData{}, apperrors.Wrap("forecast_unavailable", "could not retrieve external forecast data", err)
	}

	cleaned, ok := Clean(product)
	if !ok {
		return CleanedData{}, apperrors.Wrap("no_forecast_data", "no usable forecast data was found for this location or date", nil)
	}

	s.logger.Info("forecast cleaned", "area", cleaned.AreaName, "days", len(cleaned.DailyRatings))
	return cleaned, nil
}
