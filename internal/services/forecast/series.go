package forecast

import (
	"sort"
	"time"

	"FinSight/internal/domain/models"
	"FinSight/pkg/util"
)

// BuildIncomeSeries aggregates incoming transactions into a per-day series.
// Only strictly positive amounts count; records with unparsable timestamps
// are skipped, not fatal. The result is ascending by date with one entry per
// distinct calendar date.
func BuildIncomeSeries(txs []models.Transaction) []models.DailyIncome {
	byDate := make(map[time.Time]float64)
	for _, tx := range txs {
		if !tx.Incoming() {
			continue
		}
		t, ok := tx.Time()
		if !ok {
			continue
		}
		byDate[util.DateOf(t)] += float64(tx.Amount)
	}

	series := make([]models.DailyIncome, 0, len(byDate))
	for date, amount := range byDate {
		series = append(series, models.DailyIncome{Date: date, Amount: amount})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})
	return series
}
