package features

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"FinSight/internal/domain/models"
)

var testNow = time.Date(2024, 6, 12, 14, 30, 0, 0, time.UTC) // a Wednesday

func tx(amount float64, createdAt string) models.Transaction {
	return models.Transaction{Amount: models.Amount(amount), CreatedAt: createdAt}
}

func TestExtractEmptyHistory(t *testing.T) {
	fv := Extract(tx(1500, "2024-06-12T14:00:00Z"), nil, testNow)

	assert.Equal(t, 1500.0, fv.Amount)
	assert.Equal(t, 1500.0, fv.AvgAmount)
	assert.Equal(t, 1500.0, fv.MaxAmount)
	assert.Equal(t, 1500.0, fv.MinAmount)
	assert.Zero(t, fv.StdAmount)
	assert.Zero(t, fv.AmountZScore)
	assert.Zero(t, fv.RecentTxCount)
	assert.Zero(t, fv.HoursSinceLastTx)
	assert.Equal(t, 1.0, fv.AmountVsAvgRatio)
	assert.Equal(t, 1.0, fv.AmountVsMaxRatio)
}

func TestExtractStatistics(t *testing.T) {
	history := []models.Transaction{
		tx(80, "2024-06-10T10:00:00Z"),
		tx(100, "2024-06-11T10:00:00Z"),
		tx(120, "2024-06-12T10:00:00Z"),
	}
	fv := Extract(tx(500, "2024-06-12T14:00:00Z"), history, testNow)

	assert.InDelta(t, 100.0, fv.AvgAmount, 1e-9)
	assert.InDelta(t, 16.3299316, fv.StdAmount, 1e-6) // population std
	assert.Equal(t, 120.0, fv.MaxAmount)
	assert.Equal(t, 80.0, fv.MinAmount)
	assert.InDelta(t, (500.0-100.0)/16.3299316, fv.AmountZScore, 1e-5)
	assert.Equal(t, 3, fv.RecentTxCount)
	assert.InDelta(t, 5.0, fv.AmountVsAvgRatio, 1e-9)
	assert.InDelta(t, 500.0/120.0, fv.AmountVsMaxRatio, 1e-9)
}

func TestExtractSingleHistoryEntryHasZeroStd(t *testing.T) {
	history := []models.Transaction{tx(100, "2024-06-11T10:00:00Z")}
	fv := Extract(tx(300, ""), history, testNow)

	assert.Zero(t, fv.StdAmount)
	assert.Zero(t, fv.AmountZScore)
	assert.Equal(t, 1, fv.RecentTxCount)
}

func TestExtractRecentCountCapped(t *testing.T) {
	history := make([]models.Transaction, 35)
	for i := range history {
		history[i] = tx(50, "2024-06-11T10:00:00Z")
	}
	fv := Extract(tx(50, ""), history, testNow)
	assert.Equal(t, 20, fv.RecentTxCount)
}

func TestExtractHoursSinceLast(t *testing.T) {
	history := []models.Transaction{tx(100, "2024-06-12T12:30:00Z")}
	fv := Extract(tx(100, ""), history, testNow)
	assert.InDelta(t, 2.0, fv.HoursSinceLastTx, 1e-9)
}

func TestExtractHoursSinceLastClamped(t *testing.T) {
	history := []models.Transaction{tx(100, "2024-01-01T00:00:00Z")}
	fv := Extract(tx(100, ""), history, testNow)
	assert.Equal(t, 168.0, fv.HoursSinceLastTx)
}

func TestExtractHoursSinceLastUnparsableDefaults(t *testing.T) {
	history := []models.Transaction{tx(100, "garbage")}
	fv := Extract(tx(100, ""), history, testNow)
	assert.Equal(t, 24.0, fv.HoursSinceLastTx)
}

func TestExtractRatioDefaultsWhenDivisorZero(t *testing.T) {
	history := []models.Transaction{tx(0, ""), tx(0, "")}
	fv := Extract(tx(100, ""), history, testNow)
	assert.Equal(t, 1.0, fv.AmountVsAvgRatio)
	assert.Equal(t, 1.0, fv.AmountVsMaxRatio)
}

func TestExtractEvaluationInstantFeatures(t *testing.T) {
	fv := Extract(tx(10, "2020-01-01T00:00:00Z"), nil, testNow)
	assert.Equal(t, 14, fv.Hour)
	assert.Equal(t, 2, fv.DayOfWeek) // Wednesday, Monday=0
}

func TestMLVectorOrder(t *testing.T) {
	fv := models.FeatureVector{
		Amount:           1,
		Hour:             2,
		DayOfWeek:        3,
		AmountZScore:     4,
		RecentTxCount:    5,
		HoursSinceLastTx: 6,
		AmountVsAvgRatio: 7,
	}
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7}, fv.MLVector())
}
