package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"FinSight/internal/domain/models"
	domrepo "FinSight/internal/domain/repository"
	applogger "FinSight/pkg/logger"
)

// KafkaTransactionsHandler consumes scoring requests from Kafka and runs
// them through the risk pipeline. Flagged transactions surface through the
// use case's alert publisher like HTTP-scored ones.
type KafkaTransactionsHandler struct {
	topic   string
	scorer  *ScoreTransactionUseCase
	metrics domrepo.Metrics
	logger  *applogger.Logger
}

func NewKafkaTransactionsHandler(
	topic string,
	scorer *ScoreTransactionUseCase,
	metrics domrepo.Metrics,
	logger *applogger.Logger,
) *KafkaTransactionsHandler {
	return &KafkaTransactionsHandler{
		topic:   topic,
		scorer:  scorer,
		metrics: metrics,
		logger:  logger,
	}
}

func (h *KafkaTransactionsHandler) Topic() string { return h.topic }

// Handle expects the same payload as the HTTP scoring endpoint.
func (h *KafkaTransactionsHandler) Handle(ctx context.Context, b []byte) error {
	var req models.RiskScoreRequest
	if err := json.Unmarshal(b, &req); err != nil {
		if h.metrics != nil {
			h.metrics.RecordError("consumer_unmarshal")
		}
		return fmt.Errorf("unmarshal scoring request: %w", err)
	}

	resp := h.scorer.Score(ctx, &req)
	if h.logger != nil {
		h.logger.Debug("scored queued transaction",
			applogger.String("user_id", req.UserID),
			applogger.Float64("risk_score", resp.RiskScore),
			applogger.Bool("is_fraud", resp.IsFraud),
		)
	}
	return nil
}
