package risk

import (
	"context"
	"math"
	"strings"
	"time"

	"FinSight/internal/domain/models"
	domsvc "FinSight/internal/domain/service"
	"FinSight/internal/services/features"
	xlogger "FinSight/pkg/logger"
)

const (
	// fraudThreshold: assessments strictly above it are flagged.
	fraudThreshold = 0.8

	// Blend weights when a classifier artifact is resident.
	ruleWeight = 0.6
	mlWeight   = 0.4

	// Reported confidence depends on classifier residency.
	confidenceBlended  = 0.85
	confidenceRuleOnly = 0.70

	reasonSeparator = " | "
)

// Engine scores single transactions: deterministic rules, optionally blended
// with a pretrained classifier's probability. The classifier is loaded once
// at construction and treated as immutable, so one Engine is safe to share
// across concurrent calls.
type Engine struct {
	classifier domsvc.FraudClassifier
	logger     *xlogger.Logger
	now        func() time.Time
}

// NewEngine creates a risk engine. classifier may be nil, which leaves the
// engine in rule-only mode.
func NewEngine(classifier domsvc.FraudClassifier, logger *xlogger.Logger) *Engine {
	return &Engine{classifier: classifier, logger: logger, now: time.Now}
}

// WithClock overrides the evaluation clock. Intended for tests.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// RuleOnly reports whether the engine runs without a classifier artifact.
func (e *Engine) RuleOnly() bool {
	return e.classifier == nil
}

// Score evaluates one transaction against its history and returns the
// assessment. It never fails: a classifier fault degrades to the pure rule
// score for this call only.
func (e *Engine) Score(ctx context.Context, tx models.Transaction, history []models.Transaction) *models.RiskAssessment {
	now := e.now()
	fv := features.Extract(tx, history, now)
	score, reasons := EvaluateRules(fv)

	method := "rules"
	confidence := confidenceRuleOnly
	if e.classifier != nil {
		confidence = confidenceBlended
		if proba, err := e.classifier.ProbaFraud(ctx, fv.MLVector()); err == nil {
			score = ruleWeight*score + mlWeight*proba
			method = "blended"
		} else if e.logger != nil {
			e.logger.Warn("classifier query failed, using rule score", xlogger.Error(err))
		}
	}

	return &models.RiskAssessment{
		RiskScore:  score,
		IsFraud:    score > fraudThreshold,
		Reasons:    reasons,
		Confidence: confidence,
		Features:   fv,
		Method:     method,
		ScoredAt:   now,
	}
}

// Response shapes an assessment into the wire form: rounded score, joined
// reason string, and the observability feature snapshot.
func Response(a *models.RiskAssessment) *models.RiskScoreResponse {
	return &models.RiskScoreResponse{
		Success:    true,
		RiskScore:  round3(a.RiskScore),
		IsFraud:    a.IsFraud,
		Reason:     strings.Join(a.Reasons, reasonSeparator),
		Confidence: a.Confidence,
		Features: &models.FeatureSnapshot{
			Amount:         a.Features.Amount,
			AmountZScore:   round2(a.Features.AmountZScore),
			RecentTxCount:  a.Features.RecentTxCount,
			HoursSinceLast: round2(a.Features.HoursSinceLastTx),
		},
	}
}

// FailureResponse is the conservative default emitted when analysis faults:
// mid-range risk, not flagged.
func FailureResponse(err error) *models.RiskScoreResponse {
	return &models.RiskScoreResponse{
		Success:   false,
		Error:     err.Error(),
		RiskScore: 0.5,
		IsFraud:   false,
		Reason:    "Error in analysis",
	}
}

func round3(x float64) float64 { return math.Round(x*1000) / 1000 }
func round2(x float64) float64 { return math.Round(x*100) / 100 }
