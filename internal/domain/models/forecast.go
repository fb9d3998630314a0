package models

import "time"

// Income patterns produced by the pattern detector.
const (
	PatternStable           = "stable"
	PatternIncreasing       = "increasing"
	PatternDecreasing       = "decreasing"
	PatternIrregular        = "irregular"
	PatternInsufficientData = "insufficient_data"
	PatternError            = "error"
)

// Forecast method tags.
const (
	MethodSimpleAverage = "simple_average"
	MethodSeasonalModel = "seasonal_model"
	MethodMovingAverage = "moving_average"
)

// DailyIncome is one point of the aggregated income series: the summed
// incoming amount for a single calendar date.
type DailyIncome struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// IncomeStats are the current-period figures recomputed directly from raw
// transactions, independently of the aggregated series.
type IncomeStats struct {
	CurrentMonthIncome float64
	TransactionCount   int
	AvgTransaction     float64
	AvgDailyIncome     float64
	AvgMonthlyIncome   float64
}

// ForecastResult is the outcome of the cash-flow forecasting pipeline.
type ForecastResult struct {
	Next7Days  float64
	Next14Days float64
	Next30Days float64
	Pattern    string
	Confidence int
	Method     string
	Stats      IncomeStats
}

// IncomeForecastResponse is the wire shape of a forecast result. Failure
// zeroes every numeric field and tags the pattern "error".
type IncomeForecastResponse struct {
	Success              bool    `json:"success"`
	Error                string  `json:"error,omitempty"`
	CurrentIncome        float64 `json:"currentIncome"`
	TransactionCount     int     `json:"transactionCount"`
	Next7Days            float64 `json:"next7Days"`
	Next14Days           float64 `json:"next14Days"`
	Next30Days           float64 `json:"next30Days"`
	Confidence           int     `json:"confidence"`
	Pattern              string  `json:"pattern"`
	AverageMonthlyIncome float64 `json:"averageMonthlyIncome"`
	Method               string  `json:"method,omitempty"`
}
