package forecast

import (
	"context"
	"math"
	"time"

	"FinSight/internal/domain/models"
	domsvc "FinSight/internal/domain/service"
	xlogger "FinSight/pkg/logger"
)

const (
	// minSeriesPoints: below this many distinct dates no real forecast is
	// attempted, only the simple average projection.
	minSeriesPoints = 5

	// minSeasonalPoints: the seasonal collaborator is only worth engaging
	// with at least this many points.
	minSeasonalPoints = 10

	// seasonalHorizonDays is the fixed look-ahead requested from the
	// seasonal collaborator; horizon sums are taken from its prefix.
	seasonalHorizonDays = 30

	// growthRateCap bounds the trend adjustment in the moving-average
	// fallback to ±20%.
	growthRateCap = 0.2
)

var horizons = []int{7, 14, 30}

// Engine produces income forecasts over 7/14/30-day horizons. It prefers an
// external seasonal model and falls back to an internal trend-adjusted
// moving average; with too little data it degrades to a simple average
// projection. The engine holds no per-call state and is safe to share.
type Engine struct {
	seasonal domsvc.SeasonalForecaster
	logger   *xlogger.Logger
	now      func() time.Time
}

// NewEngine creates a forecast engine. seasonal may be nil, which disables
// the seasonal path entirely.
func NewEngine(seasonal domsvc.SeasonalForecaster, logger *xlogger.Logger) *Engine {
	return &Engine{seasonal: seasonal, logger: logger, now: time.Now}
}

// WithClock overrides the evaluation clock. Intended for tests.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Predict runs the full forecasting pipeline over raw transactions.
func (e *Engine) Predict(ctx context.Context, txs []models.Transaction) models.ForecastResult {
	stats := ComputeStats(txs, e.now())
	series := BuildIncomeSeries(txs)

	if len(series) < minSeriesPoints {
		return models.ForecastResult{
			Next7Days:  round2(stats.AvgDailyIncome * 7),
			Next14Days: round2(stats.AvgDailyIncome * 14),
			Next30Days: round2(stats.AvgDailyIncome * 30),
			Pattern:    models.PatternInsufficientData,
			Confidence: 50,
			Method:     models.MethodSimpleAverage,
			Stats:      stats,
		}
	}

	preds, method := e.forecastHorizons(ctx, series)
	pattern := DetectPattern(series)

	return models.ForecastResult{
		Next7Days:  round2(preds[0]),
		Next14Days: round2(preds[1]),
		Next30Days: round2(preds[2]),
		Pattern:    pattern,
		Confidence: EstimateConfidence(series, pattern),
		Method:     method,
		Stats:      stats,
	}
}

// forecastHorizons returns the 7/14/30-day sums and the method tag used.
func (e *Engine) forecastHorizons(ctx context.Context, series []models.DailyIncome) ([3]float64, string) {
	if e.seasonal != nil && len(series) >= minSeasonalPoints {
		if preds, err := e.seasonalSums(ctx, series); err == nil {
			return preds, models.MethodSeasonalModel
		} else if e.logger != nil {
			e.logger.Warn("seasonal model failed, falling back to moving average", xlogger.Error(err))
		}
	}

	var preds [3]float64
	for i, h := range horizons {
		preds[i] = movingAveragePrediction(series, h)
	}
	return preds, models.MethodMovingAverage
}

func (e *Engine) seasonalSums(ctx context.Context, series []models.DailyIncome) ([3]float64, error) {
	var sums [3]float64
	daily, err := e.seasonal.Forecast(ctx, series, seasonalHorizonDays)
	if err != nil {
		return sums, err
	}
	for i, h := range horizons {
		sums[i] = math.Max(0, sumPrefix(daily, h))
	}
	return sums, nil
}

// movingAveragePrediction projects daysAhead of income from the mean of the
// most recent seven points, trend-adjusted by the growth against the
// earliest seven points, clamped to ±20%. Never negative.
func movingAveragePrediction(series []models.DailyIncome, daysAhead int) float64 {
	if len(series) == 0 {
		return 0
	}

	tail := series
	if len(tail) > 7 {
		tail = series[len(series)-7:]
	}
	recentAvg := meanAmounts(tail)

	growthRate := 0.0
	if len(series) > 7 {
		oldAvg := meanAmounts(series[:7])
		if oldAvg > 0 {
			growthRate = (recentAvg - oldAvg) / oldAvg
			growthRate = math.Max(-growthRateCap, math.Min(growthRateCap, growthRate))
		}
	}

	prediction := recentAvg * (1 + growthRate*(float64(daysAhead)/7))
	return math.Max(0, prediction)
}

func sumPrefix(xs []float64, n int) float64 {
	if n > len(xs) {
		n = len(xs)
	}
	sum := 0.0
	for _, x := range xs[:n] {
		sum += x
	}
	return sum
}

// Response shapes a forecast result into the wire form.
func Response(r models.ForecastResult) *models.IncomeForecastResponse {
	return &models.IncomeForecastResponse{
		Success:              true,
		CurrentIncome:        r.Stats.CurrentMonthIncome,
		TransactionCount:     r.Stats.TransactionCount,
		Next7Days:            r.Next7Days,
		Next14Days:           r.Next14Days,
		Next30Days:           r.Next30Days,
		Confidence:           r.Confidence,
		Pattern:              r.Pattern,
		AverageMonthlyIncome: r.Stats.AvgMonthlyIncome,
		Method:               r.Method,
	}
}

// FailureResponse zeroes every numeric field and tags the pattern "error".
func FailureResponse(err error) *models.IncomeForecastResponse {
	return &models.IncomeForecastResponse{
		Success: false,
		Error:   err.Error(),
		Pattern: models.PatternError,
	}
}
