//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/peakwatch/avybrief/internal/bootstrap"
	"github.com/peakwatch/avybrief/internal/domain/briefing"
	"github.com/peakwatch/avybrief/internal/domain/forecast"
	"github.com/peakwatch/avybrief/internal/infra/avcan"
	"github.com/peakwatch/avybrief/internal/infra/config"
	"github.com/peakwatch/avybrief/internal/infra/llm/gemini"
	httpiface "github.com/peakwatch/avybrief/internal/interface/http"
	"github.com/peakwatch/avybrief/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideForecastConfig,
		provideBriefingConfig,
		provideGeminiClient,
		provideAvcanClient,
		forecast.NewService,
		briefing.NewService,
		wire.Bind(new(forecast.ProductClient), new(*avcan.Client)),
		wire.Bind(new(briefing.GenerateClient), new(*gemini.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
