package analytics

import (
	"context"
	"fmt"
	"time"

	"FinSight/internal/domain/models"
	domsvc "FinSight/internal/domain/service"
)

// HTTPSeasonalForecaster calls an external seasonal model service for
// daily income predictions.
type HTTPSeasonalForecaster struct {
	base *HTTPServiceBase
}

// NewHTTPSeasonalForecaster creates a forecaster client against baseURL.
func NewHTTPSeasonalForecaster(baseURL string, timeout time.Duration) *HTTPSeasonalForecaster {
	return &HTTPSeasonalForecaster{base: NewHTTPServiceBase(baseURL, timeout)}
}

type seasonalPoint struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

type seasonalReq struct {
	Series      []seasonalPoint `json:"series"`
	HorizonDays int             `json:"horizon_days"`
}

type seasonalResp struct {
	Daily []float64 `json:"daily"`
	Model string    `json:"model"`
}

// Forecast requests horizonDays of predicted daily income.
func (f *HTTPSeasonalForecaster) Forecast(ctx context.Context, series []models.DailyIncome, horizonDays int) ([]float64, error) {
	req := seasonalReq{
		Series:      make([]seasonalPoint, len(series)),
		HorizonDays: horizonDays,
	}
	for i, p := range series {
		req.Series[i] = seasonalPoint{Date: p.Date.Format("2006-01-02"), Amount: p.Amount}
	}

	var resp seasonalResp
	if err := f.base.PostJSON(ctx, "/forecast/seasonal", req, &resp); err != nil {
		return nil, fmt.Errorf("seasonal forecast: %w", err)
	}
	if len(resp.Daily) == 0 {
		return nil, fmt.Errorf("seasonal forecast: empty prediction")
	}
	return resp.Daily, nil
}

var _ domsvc.SeasonalForecaster = (*HTTPSeasonalForecaster)(nil)
