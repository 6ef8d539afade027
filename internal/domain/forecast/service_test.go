package forecast

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/peakwatch/avybrief/internal/infra/avcan"
	apperrors "github.com/peakwatch/avybrief/pkg/errors"
)

func TestServiceCurrentSuccess(t *testing.T) {
	stub := &stubProductClient{
		product: &avcan.Product{
			Area:   avcan.Area{Name: "Whistler Backcountry"},
			Report: &avcan.Report{Forecaster: "A. Rivers", Highlights: "Stable snowpack."},
		},
	}

	svc := NewService(Config{Latitude: 50.11367, Longitude: -122.95477}, stub, newTestLogger())
	cleaned, err := svc.Current(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Whistler Backcountry", cleaned.AreaName)
	require.Equal(t, 50.11367, stub.lastLat)
	require.Equal(t, -122.95477, stub.lastLong)
}

func TestServiceCurrentUpstreamFailure(t *testing.T) {
	stub := &stubProductClient{err: errors.New("dial tcp: connection refused")}

	svc := NewService(Config{}, stub, newTestLogger())
	_, err := svc.Current(context.Background())
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "forecast_unavailable"))
}

func TestServiceCurrentNoUsableData(t *testing.T) {
	for _, product := range []*avcan.Product{nil, {}} {
		svc := NewService(Config{}, &stubProductClient{product: product}, newTestLogger())
		_, err := svc.Current(context.Background())
		require.Error(t, err)
		require.True(t, apperrors.IsCode(err, "no_forecast_data"))
	}
}

type stubProductClient struct {
	product  *avcan.Product
	err      error
	lastLat  float64
	lastLong float64
}

func (s *stubProductClient) PointProduct(ctx context.Context, lat, long float64) (*avcan.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.lastLat = lat
	s.lastLong = long
	return s.product, nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
