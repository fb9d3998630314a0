package risk

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinSight/internal/domain/models"
)

var scoreNow = time.Date(2024, 6, 12, 14, 0, 0, 0, time.UTC)

type stubClassifier struct {
	proba float64
	err   error
	seen  []float64
}

func (s *stubClassifier) ProbaFraud(_ context.Context, features []float64) (float64, error) {
	s.seen = features
	return s.proba, s.err
}

func TestScoreRuleOnly(t *testing.T) {
	engine := NewEngine(nil, nil).WithClock(func() time.Time { return scoreNow })

	// Large first transaction, empty history: first-large (0.30) plus the
	// short-interval rule, which fires because hours-since-last is zero.
	a := engine.Score(context.Background(), models.Transaction{Amount: 1500}, nil)

	assert.InDelta(t, 0.45, a.RiskScore, 1e-9)
	assert.False(t, a.IsFraud)
	assert.Equal(t, 0.70, a.Confidence)
	assert.Equal(t, "rules", a.Method)
}

func TestScoreBlended(t *testing.T) {
	clf := &stubClassifier{proba: 0.9}
	engine := NewEngine(clf, nil).WithClock(func() time.Time { return scoreNow })

	a := engine.Score(context.Background(), models.Transaction{Amount: 1500}, nil)

	// 0.6*0.45 + 0.4*0.90 = 0.63
	assert.InDelta(t, 0.63, a.RiskScore, 1e-9)
	assert.Equal(t, 0.85, a.Confidence)
	assert.Equal(t, "blended", a.Method)
	require.Len(t, clf.seen, 7)
	assert.Equal(t, 1500.0, clf.seen[0])
}

func TestScoreClassifierFaultFallsBack(t *testing.T) {
	clf := &stubClassifier{err: errors.New("shape mismatch")}
	engine := NewEngine(clf, nil).WithClock(func() time.Time { return scoreNow })

	a := engine.Score(context.Background(), models.Transaction{Amount: 1500}, nil)

	assert.InDelta(t, 0.45, a.RiskScore, 1e-9)
	// Residency, not per-call success, decides the confidence.
	assert.Equal(t, 0.85, a.Confidence)
	assert.Equal(t, "rules", a.Method)
}

func TestScoreFraudThreshold(t *testing.T) {
	clf := &stubClassifier{proba: 1.0}
	engine := NewEngine(clf, nil).WithClock(func() time.Time { return scoreNow })

	history := []models.Transaction{
		{Amount: 10, CreatedAt: "2024-06-12T13:59:00Z"},
		{Amount: 12, CreatedAt: "2024-06-12T13:59:30Z"},
	}
	// Huge amount against a tiny baseline trips rules 1, 2, 4, 6:
	// 0.9 rule score, blended with proba 1.0 gives 0.94.
	a := engine.Score(context.Background(), models.Transaction{Amount: 9000}, history)

	assert.True(t, a.RiskScore > 0.8)
	assert.True(t, a.IsFraud)
}

func TestScoreBoundsInvariant(t *testing.T) {
	engine := NewEngine(nil, nil)
	txs := []models.Transaction{
		{Amount: -500}, {Amount: 0}, {Amount: 1e9},
	}
	for _, tx := range txs {
		a := engine.Score(context.Background(), tx, nil)
		assert.GreaterOrEqual(t, a.RiskScore, 0.0)
		assert.LessOrEqual(t, a.RiskScore, 1.0)
		assert.Equal(t, a.IsFraud, a.RiskScore > 0.8)
		assert.NotEmpty(t, a.Reasons)
	}
}

func TestResponseShape(t *testing.T) {
	a := &models.RiskAssessment{
		RiskScore:  0.54321,
		IsFraud:    false,
		Reasons:    []string{"Very large transaction amount", "First transaction with large amount"},
		Confidence: 0.70,
		Features: models.FeatureVector{
			Amount:           1500,
			AmountZScore:     2.34567,
			RecentTxCount:    3,
			HoursSinceLastTx: 12.3456,
		},
	}
	resp := Response(a)

	assert.True(t, resp.Success)
	assert.Equal(t, 0.543, resp.RiskScore)
	assert.Equal(t, "Very large transaction amount | First transaction with large amount", resp.Reason)
	assert.Equal(t, 2.35, resp.Features.AmountZScore)
	assert.Equal(t, 12.35, resp.Features.HoursSinceLast)
}

func TestFailureResponseDefaults(t *testing.T) {
	resp := FailureResponse(errors.New("boom"))
	assert.False(t, resp.Success)
	assert.Equal(t, 0.5, resp.RiskScore)
	assert.False(t, resp.IsFraud)
	assert.Equal(t, "Error in analysis", resp.Reason)
	assert.Equal(t, "boom", resp.Error)
}
