package main

import (
	"log/slog"

	"github.com/peakwatch/avybrief/internal/domain/briefing"
	"github.com/peakwatch/avybrief/internal/domain/forecast"
	"github.com/peakwatch/avybrief/internal/infra/avcan"
	"github.com/peakwatch/avybrief/internal/infra/config"
	"github.com/peakwatch/avybrief/internal/infra/llm/gemini"
	"github.com/peakwatch/avybrief/pkg/fetch"
)

func provideForecastConfig(cfg *config.Config) forecast.Config {
	return forecast.Config{
		Latitude:  cfg.Forecast.Latitude,
		Longitude: cfg.Forecast.Longitude,
	}
}

func provideBriefingConfig(cfg *config.Config) briefing.Config {
	return briefing.Config{
		Model:        cfg.LLM.Model,
		SystemPrompt: cfg.Briefing.SystemPrompt,
	}
}

func provideGeminiClient(cfg *config.Config) (*gemini.Client, error) {
	return gemini.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
}

func provideAvcanClient(cfg *config.Config, logger *slog.Logger) *avcan.Client {
	fetcher := fetch.NewClient(nil, cfg.Forecast.MaxAttempts, cfg.Forecast.BaseBackoff, logger)
	return avcan.NewClient(cfg.Forecast.APIBaseURL, fetcher)
}
