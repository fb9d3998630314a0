package service

import (
	"context"

	"FinSight/internal/domain/models"
)

// FraudClassifier scores a fixed-length feature vector and returns the
// positive-class (fraud) probability. Implementations are immutable after
// construction and safe for concurrent use.
type FraudClassifier interface {
	ProbaFraud(ctx context.Context, features []float64) (float64, error)
}

// SeasonalForecaster fits a daily income series and returns the predicted
// daily values for the next horizonDays days.
type SeasonalForecaster interface {
	Forecast(ctx context.Context, series []models.DailyIncome, horizonDays int) ([]float64, error)
}
