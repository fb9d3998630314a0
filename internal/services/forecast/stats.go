package forecast

import (
	"math"
	"time"

	"FinSight/internal/domain/models"
	"FinSight/pkg/util"
)

// ComputeStats derives current-period income figures directly from the raw
// transaction list, independently of the aggregated series.
func ComputeStats(txs []models.Transaction, now time.Time) models.IncomeStats {
	monthStart := util.MonthStart(now)

	var currentMonth, total float64
	count := 0
	for _, tx := range txs {
		if !tx.Incoming() {
			continue
		}
		amount := float64(tx.Amount)
		total += amount
		count++

		if t, ok := tx.Time(); ok && !t.Before(monthStart) {
			currentMonth += amount
		}
	}

	stats := models.IncomeStats{
		CurrentMonthIncome: round2(currentMonth),
		TransactionCount:   count,
	}
	if count > 0 {
		stats.AvgTransaction = round2(total / float64(count))
		daily := total / float64(assumedSpanDays(count))
		stats.AvgDailyIncome = round2(daily)
		stats.AvgMonthlyIncome = round2(daily * 30)
	}
	return stats
}

// assumedSpanDays is the observation-span heuristic the daily average is
// computed over: 30 days once more than 10 incoming transactions exist,
// otherwise 7. It deliberately ignores the actual min/max observed dates;
// a corrected span would be substituted here without touching callers.
func assumedSpanDays(positiveCount int) int {
	if positiveCount > 10 {
		return 30
	}
	return 7
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }
