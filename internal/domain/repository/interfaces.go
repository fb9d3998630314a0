package repository

import (
	"context"

	"FinSight/internal/domain/models"
)

// AssessmentSink records risk assessments for audit. Writes are best-effort;
// the scoring pipeline never depends on them.
type AssessmentSink interface {
	Record(ctx context.Context, userID string, a *models.RiskAssessment) error
	Close() error
}

// AlertPublisher emits fraud alerts for flagged transactions.
type AlertPublisher interface {
	Publish(ctx context.Context, alert *models.FraudAlert) error
	Close() error
}

// Metrics abstracts operational metric recording.
type Metrics interface {
	RecordAssessment(decision string)
	RecordForecast(method string)
	RecordError(kind string)
	RecordLatency(operation string, seconds float64)
}
