package usecase

import (
	"context"
	"fmt"
	"time"

	"FinSight/internal/domain/models"
	domrepo "FinSight/internal/domain/repository"
	"FinSight/internal/services/risk"
	applogger "FinSight/pkg/logger"
)

// auditTimeout bounds the best-effort audit and alert writes so a slow sink
// cannot pile up goroutines.
const auditTimeout = 5 * time.Second

// ScoreTransactionUseCase runs the risk pipeline for one transaction and
// fans out audit records and fraud alerts. Sink and alerts are optional and
// best-effort; the response never depends on them.
type ScoreTransactionUseCase struct {
	engine  *risk.Engine
	sink    domrepo.AssessmentSink
	alerts  domrepo.AlertPublisher
	metrics domrepo.Metrics
	logger  *applogger.Logger
}

func NewScoreTransactionUseCase(
	engine *risk.Engine,
	sink domrepo.AssessmentSink,
	alerts domrepo.AlertPublisher,
	metrics domrepo.Metrics,
	logger *applogger.Logger,
) *ScoreTransactionUseCase {
	return &ScoreTransactionUseCase{
		engine:  engine,
		sink:    sink,
		alerts:  alerts,
		metrics: metrics,
		logger:  logger,
	}
}

// Score returns a response for every input. Panics inside the pipeline
// degrade to the conservative failure response instead of propagating.
func (uc *ScoreTransactionUseCase) Score(ctx context.Context, req *models.RiskScoreRequest) (resp *models.RiskScoreResponse) {
	defer func() {
		if r := recover(); r != nil {
			if uc.logger != nil {
				uc.logger.Error("risk scoring panicked", applogger.Any("panic", r))
			}
			if uc.metrics != nil {
				uc.metrics.RecordError("risk_panic")
			}
			resp = risk.FailureResponse(fmt.Errorf("scoring failed: %v", r))
		}
	}()

	start := time.Now()
	a := uc.engine.Score(ctx, req.Transaction, req.UserHistory)

	if uc.metrics != nil {
		decision := "ok"
		if a.IsFraud {
			decision = "fraud"
		}
		uc.metrics.RecordAssessment(decision)
		uc.metrics.RecordLatency("risk_score", time.Since(start).Seconds())
	}

	uc.fanOut(req.UserID, req.Transaction, a)
	return risk.Response(a)
}

// fanOut records the assessment and publishes an alert when flagged. Runs
// detached from the request context so caller cancellation does not lose
// audit rows.
func (uc *ScoreTransactionUseCase) fanOut(userID string, tx models.Transaction, a *models.RiskAssessment) {
	if uc.sink != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
			defer cancel()
			if err := uc.sink.Record(ctx, userID, a); err != nil {
				if uc.logger != nil {
					uc.logger.Warn("assessment audit write failed", applogger.Error(err))
				}
				if uc.metrics != nil {
					uc.metrics.RecordError("audit_write")
				}
			}
		}()
	}

	if uc.alerts != nil && a.IsFraud {
		alert := &models.FraudAlert{
			UserID:      userID,
			Transaction: tx,
			RiskScore:   a.RiskScore,
			Reason:      joinedReasons(a),
			CreatedAt:   a.ScoredAt,
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
			defer cancel()
			if err := uc.alerts.Publish(ctx, alert); err != nil {
				if uc.logger != nil {
					uc.logger.Warn("fraud alert publish failed", applogger.Error(err))
				}
				if uc.metrics != nil {
					uc.metrics.RecordError("alert_publish")
				}
			}
		}()
	}
}

func joinedReasons(a *models.RiskAssessment) string {
	return risk.Response(a).Reason
}
