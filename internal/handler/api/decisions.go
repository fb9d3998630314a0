package api

import (
	"net/http"

	"FinSight/internal/domain/models"
	"FinSight/internal/usecase"
	xhttp "FinSight/pkg/http"
	xlogger "FinSight/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DecisionsHandler exposes the risk and forecast pipelines over HTTP.
type DecisionsHandler struct {
	logger     *xlogger.Logger
	scorer     *usecase.ScoreTransactionUseCase
	forecaster *usecase.ForecastIncomeUseCase
	stream     *StreamHandler
}

func NewDecisionsHandler(
	logger *xlogger.Logger,
	scorer *usecase.ScoreTransactionUseCase,
	forecaster *usecase.ForecastIncomeUseCase,
) *DecisionsHandler {
	return &DecisionsHandler{
		logger:     logger,
		scorer:     scorer,
		forecaster: forecaster,
		stream:     NewStreamHandler(logger, scorer),
	}
}

func (h *DecisionsHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	g := e.Group("/api")
	g.POST("/risk/score", h.ScoreRisk)
	g.POST("/forecast/income", h.ForecastIncome)
	g.GET("/risk/stream", h.stream.Serve)
}

func (h *DecisionsHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *DecisionsHandler) ScoreRisk(c echo.Context) error {
	req := &models.RiskScoreRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	resp := h.scorer.Score(c.Request().Context(), req)
	if !resp.Success && h.logger != nil {
		h.logger.Warn("risk scoring degraded", xlogger.String("error", resp.Error))
	}
	return xhttp.SuccessResponse(c, resp)
}

func (h *DecisionsHandler) ForecastIncome(c echo.Context) error {
	req := &models.IncomeForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	resp := h.forecaster.Forecast(c.Request().Context(), req)
	if !resp.Success && h.logger != nil {
		h.logger.Warn("income forecast degraded", xlogger.String("error", resp.Error))
	}
	return xhttp.SuccessResponse(c, resp)
}

var _ xhttp.Handler = (*DecisionsHandler)(nil)
