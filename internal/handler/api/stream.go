package api

import (
	"net"
	"net/http"

	"FinSight/internal/domain/models"
	"FinSight/internal/services/risk"
	"FinSight/internal/usecase"
	xlogger "FinSight/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// StreamHandler scores transactions over a websocket. The client sends one
// scoring request per message and receives one assessment back. A malformed
// message gets the failure shape on the same connection; only transport
// errors end the session.
type StreamHandler struct {
	logger   *xlogger.Logger
	scorer   *usecase.ScoreTransactionUseCase
	upgrader websocket.Upgrader
}

func NewStreamHandler(logger *xlogger.Logger, scorer *usecase.ScoreTransactionUseCase) *StreamHandler {
	return &StreamHandler{
		logger: logger,
		scorer: scorer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

func (h *StreamHandler) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "websocket upgrade failed")
	}
	defer conn.Close()

	ctx := c.Request().Context()
	for {
		var req models.RiskScoreRequest
		if err := conn.ReadJSON(&req); err != nil {
			if isConnectionError(err) {
				return nil
			}
			if werr := conn.WriteJSON(risk.FailureResponse(err)); werr != nil {
				return nil
			}
			continue
		}

		resp := h.scorer.Score(ctx, &req)
		if err := conn.WriteJSON(resp); err != nil {
			if h.logger != nil {
				h.logger.Warn("stream write failed", xlogger.Error(err))
			}
			return nil
		}
	}
}

// isConnectionError separates transport-level failures from per-message
// decode errors, which keep the session alive.
func isConnectionError(err error) bool {
	if _, ok := err.(*websocket.CloseError); ok {
		return true
	}
	if _, ok := err.(net.Error); ok {
		return true
	}
	return websocket.IsUnexpectedCloseError(err)
}
