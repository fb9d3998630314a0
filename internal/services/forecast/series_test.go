package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinSight/internal/domain/models"
)

func tx(amount float64, createdAt string) models.Transaction {
	return models.Transaction{Amount: models.Amount(amount), CreatedAt: createdAt}
}

func TestBuildIncomeSeriesFiltersAndAggregates(t *testing.T) {
	txs := []models.Transaction{
		tx(100, "2024-06-01T09:00:00Z"),
		tx(50, "2024-06-01T17:30:00"),  // same day, ISO without zone
		tx(-75, "2024-06-01T18:00:00"), // outgoing, excluded
		tx(200, "2024-06-03 08:00:00"), // SQL layout
		tx(40, "bogus timestamp"),      // skipped, not fatal
		tx(0, "2024-06-04T00:00:00Z"),  // zero is not incoming
	}

	series := BuildIncomeSeries(txs)
	require.Len(t, series, 2)
	assert.Equal(t, 150.0, series[0].Amount)
	assert.Equal(t, 200.0, series[1].Amount)
	assert.True(t, series[0].Date.Before(series[1].Date))
}

// The aggregated total must equal the sum of all positive amounts with
// parsable timestamps.
func TestBuildIncomeSeriesRoundTripSum(t *testing.T) {
	txs := []models.Transaction{
		tx(10, "2024-06-01T09:00:00Z"),
		tx(20, "2024-06-02T09:00:00Z"),
		tx(30, "2024-06-02T10:00:00Z"),
		tx(-5, "2024-06-02T11:00:00Z"),
		tx(40, "invalid"),
	}
	series := BuildIncomeSeries(txs)

	total := 0.0
	for _, p := range series {
		total += p.Amount
	}
	assert.Equal(t, 60.0, total)
}

func TestBuildIncomeSeriesEmpty(t *testing.T) {
	assert.Empty(t, BuildIncomeSeries(nil))
	assert.Empty(t, BuildIncomeSeries([]models.Transaction{tx(-10, "2024-06-01T09:00:00Z")}))
}

func TestBuildIncomeSeriesDistinctDates(t *testing.T) {
	txs := []models.Transaction{
		tx(1, "2024-06-02T01:00:00Z"),
		tx(2, "2024-06-01T01:00:00Z"),
		tx(3, "2024-06-02T23:00:00Z"),
	}
	series := BuildIncomeSeries(txs)
	require.Len(t, series, 2)
	for i := 1; i < len(series); i++ {
		assert.True(t, series[i-1].Date.Before(series[i].Date))
	}
}
