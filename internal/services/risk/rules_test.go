package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"FinSight/internal/domain/models"
)

// quiet is a baseline vector that triggers no rule.
func quiet() models.FeatureVector {
	return models.FeatureVector{
		Amount:           100,
		Hour:             12,
		RecentTxCount:    5,
		HoursSinceLastTx: 24,
		AmountVsAvgRatio: 1,
		AmountVsMaxRatio: 1,
	}
}

func TestNoRuleFires(t *testing.T) {
	score, reasons := EvaluateRules(quiet())
	assert.Zero(t, score)
	assert.Equal(t, []string{"Normal transaction pattern"}, reasons)
}

func TestIndividualRules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.FeatureVector)
		weight float64
		reason string
	}{
		{"zscore", func(fv *models.FeatureVector) { fv.AmountZScore = 3.5 }, 0.30, "Amount is significantly higher than usual"},
		{"avg ratio", func(fv *models.FeatureVector) { fv.AmountVsAvgRatio = 5.1 }, 0.25, "Amount is 5x higher than average"},
		{"frequency", func(fv *models.FeatureVector) { fv.RecentTxCount = 11 }, 0.20, "High transaction frequency detected"},
		{"rapid fire", func(fv *models.FeatureVector) { fv.HoursSinceLastTx = 0.25 }, 0.15, "Multiple transactions in very short time"},
		{"unusual hour", func(fv *models.FeatureVector) { fv.Hour = 3 }, 0.10, "Transaction at unusual hour"},
		{"large amount", func(fv *models.FeatureVector) { fv.Amount = 5001 }, 0.20, "Very large transaction amount"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fv := quiet()
			tc.mutate(&fv)
			score, reasons := EvaluateRules(fv)
			assert.InDelta(t, tc.weight, score, 1e-9)
			assert.Equal(t, []string{tc.reason}, reasons)
		})
	}
}

func TestFirstLargeTransaction(t *testing.T) {
	fv := quiet()
	fv.RecentTxCount = 0
	fv.Amount = 1500
	score, reasons := EvaluateRules(fv)
	assert.InDelta(t, 0.30, score, 1e-9)
	assert.Equal(t, []string{"First transaction with large amount"}, reasons)
}

// Large first transaction: rules 6 and 7 together give 0.50.
func TestLargeFirstTransactionScenario(t *testing.T) {
	fv := quiet()
	fv.RecentTxCount = 0
	fv.Amount = 5500
	score, reasons := EvaluateRules(fv)
	assert.InDelta(t, 0.50, score, 1e-9)
	assert.Len(t, reasons, 2)
}

// High z-score with ratio exactly 5.0: only the z-score rule fires, since
// the ratio rule needs strictly more than 5.
func TestBoundaryRatioNotTriggered(t *testing.T) {
	fv := quiet()
	fv.AmountZScore = 20
	fv.AmountVsAvgRatio = 5.0
	score, _ := EvaluateRules(fv)
	assert.InDelta(t, 0.30, score, 1e-9)
}

func TestScoreClampedAtOne(t *testing.T) {
	fv := models.FeatureVector{
		Amount:           6000, // rule 6
		Hour:             2,    // rule 5
		AmountZScore:     10,   // rule 1
		RecentTxCount:    15,   // rule 3
		HoursSinceLastTx: 0.1,  // rule 4
		AmountVsAvgRatio: 12,   // rule 2
	}
	score, reasons := EvaluateRules(fv)
	assert.Equal(t, 1.0, score)
	assert.Len(t, reasons, 6)
}
