package features

import (
	"math"
	"time"

	"FinSight/internal/domain/models"
	"FinSight/pkg/util"
)

const (
	// recentWindow is the history tail treated as "recent" activity.
	// A fixed-count proxy for frequency, not a true 24h window.
	recentWindow = 20

	// maxHoursSinceLast caps the time-since-last-transaction feature at one week.
	maxHoursSinceLast = 168

	// defaultHoursSinceLast is assumed when the last history timestamp is
	// missing or unparsable.
	defaultHoursSinceLast = 24
)

// Extract derives the feature vector for one transaction against its account
// history. History is assumed chronological, oldest first. The evaluation
// instant `now` supplies the hour and day-of-week features: scoring time,
// not the transaction's own timestamp.
func Extract(tx models.Transaction, history []models.Transaction, now time.Time) models.FeatureVector {
	fv := models.FeatureVector{
		Amount:    float64(tx.Amount),
		Hour:      now.Hour(),
		DayOfWeek: mondayIndexed(now.Weekday()),
	}

	if len(history) == 0 {
		// First-ever transaction: the transaction is its own baseline.
		// Elevated risk is signalled downstream via recent_tx_count == 0.
		fv.AvgAmount = fv.Amount
		fv.StdAmount = 0
		fv.MaxAmount = fv.Amount
		fv.MinAmount = fv.Amount
		fv.AmountZScore = 0
		fv.RecentTxCount = 0
		fv.HoursSinceLastTx = 0
		fv.AmountVsAvgRatio = 1
		fv.AmountVsMaxRatio = 1
		return fv
	}

	amounts := make([]float64, len(history))
	for i, h := range history {
		amounts[i] = float64(h.Amount)
	}

	fv.AvgAmount = mean(amounts)
	if len(amounts) > 1 {
		fv.StdAmount = popStd(amounts, fv.AvgAmount)
	}
	fv.MaxAmount, fv.MinAmount = minMax(amounts)

	if fv.StdAmount > 0 {
		fv.AmountZScore = (fv.Amount - fv.AvgAmount) / fv.StdAmount
	}

	fv.RecentTxCount = len(history)
	if fv.RecentTxCount > recentWindow {
		fv.RecentTxCount = recentWindow
	}

	fv.HoursSinceLastTx = hoursSinceLast(history[len(history)-1], now)

	fv.AmountVsAvgRatio = ratioOrOne(fv.Amount, fv.AvgAmount)
	fv.AmountVsMaxRatio = ratioOrOne(fv.Amount, fv.MaxAmount)

	return fv
}

func hoursSinceLast(last models.Transaction, now time.Time) float64 {
	t, ok := util.ParseTimestamp(last.CreatedAt)
	if !ok {
		return defaultHoursSinceLast
	}
	h := now.Sub(t).Hours()
	return math.Min(h, maxHoursSinceLast)
}

func ratioOrOne(amount, divisor float64) float64 {
	if divisor > 0 {
		return amount / divisor
	}
	return 1
}

// mondayIndexed converts Go's Sunday=0 weekday to the Monday=0 convention
// the classifier artifact was trained against.
func mondayIndexed(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// popStd computes the population standard deviation around a known mean.
func popStd(xs []float64, m float64) float64 {
	sum2 := 0.0
	for _, x := range xs {
		d := x - m
		sum2 += d * d
	}
	return math.Sqrt(sum2 / float64(len(xs)))
}

func minMax(xs []float64) (max, min float64) {
	max, min = xs[0], xs[0]
	for _, x := range xs[1:] {
		if x > max {
			max = x
		}
		if x < min {
			min = x
		}
	}
	return max, min
}
