package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"FinSight/internal/domain/models"
	domrepo "FinSight/internal/domain/repository"
	pkgch "FinSight/pkg/clickhouse"
	applogger "FinSight/pkg/logger"
)

// AssessmentSchema creates the audit table. Passed to Client.InitSchema at
// startup.
var AssessmentSchema = []string{
	`CREATE TABLE IF NOT EXISTS risk_assessments (
        scored_at  DateTime,
        user_id    String,
        risk_score Float64,
        is_fraud   UInt8,
        method     String,
        reasons    String,
        confidence Float64
    ) ENGINE = MergeTree()
    ORDER BY (user_id, scored_at)
    TTL scored_at + INTERVAL 90 DAY`,
}

// CHAssessmentStore writes scored assessments to ClickHouse for audit.
// Write-only; the scoring pipeline never reads back.
type CHAssessmentStore struct {
	db *sql.DB
	l  *applogger.Logger
}

func NewCHAssessmentStore(ch *pkgch.Client, l *applogger.Logger) *CHAssessmentStore {
	return &CHAssessmentStore{db: ch.DB(), l: l}
}

func (s *CHAssessmentStore) Record(ctx context.Context, userID string, a *models.RiskAssessment) error {
	const q = `INSERT INTO risk_assessments
        (scored_at, user_id, risk_score, is_fraud, method, reasons, confidence)
        VALUES (?, ?, ?, ?, ?, ?, ?)`

	fraud := uint8(0)
	if a.IsFraud {
		fraud = 1
	}
	scoredAt := a.ScoredAt
	if scoredAt.IsZero() {
		scoredAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, q,
		scoredAt,
		userID,
		a.RiskScore,
		fraud,
		a.Method,
		strings.Join(a.Reasons, " | "),
		a.Confidence,
	)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse assessment insert error",
				applogger.String("user_id", userID),
				applogger.Error(err),
			)
		}
		return fmt.Errorf("record assessment: %w", err)
	}
	return nil
}

func (s *CHAssessmentStore) Close() error {
	return nil // connection pool managed by pkg client
}

var _ domrepo.AssessmentSink = (*CHAssessmentStore)(nil)
