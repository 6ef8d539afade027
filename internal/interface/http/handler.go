package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peakwatch/avybrief/internal/domain/briefing"
	"github.com/peakwatch/avybrief/internal/domain/forecast"
	apperrors "github.com/peakwatch/avybrief/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	forecastSvc forecast.Service
	briefingSvc briefing.Service
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(forecastSvc forecast.Service, briefingSvc briefing.Service, logger *slog.Logger) *Handler {
	return &Handler{
		forecastSvc: forecastSvc,
		briefingSvc: briefingSvc,
		logger:      logger.With("component", "http.handler"),
	}
}

// AvData serves the cleaned forecast for immediate display.
func (h *Handler) AvData(c *gin.Context) {
	cleaned, err := h.forecastSvc.Current(c.Request.Context())
	if err != nil {
		status := http.StatusBadGateway
		code := "forecast_unavailable"
		if apperrors.IsCode(err, "no_forecast_data") {
			status = http.StatusNotFound
			code = "no_forecast_data"
		}
		abortWithError(c, NewHTTPError(status, code, apperrors.Message(err), err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"cleanedData": cleaned})
}

// LlmSummary generates the AI safety briefing for a cleaned forecast payload.
func (h *Handler) LlmSummary(c *gin.Context) {
	var req briefing.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.briefingSvc.Generate(c.Request.Context(), req)
	if err != nil {
		status := http.StatusBadGateway
		code := "llm_summary_failed"
		if apperrors.IsCode(err, "invalid_input") {
			status = http.StatusBadRequest
			code = "invalid_request"
		}
		abortWithError(c, NewHTTPError(status, code, apperrors.Message(err), err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
