package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"FinSight/internal/domain/models"
	domrepo "FinSight/internal/domain/repository"
	"FinSight/internal/services/forecast"
	"FinSight/pkg/cache"
	applogger "FinSight/pkg/logger"
)

const defaultForecastTTL = 5 * time.Minute

// ForecastIncomeUseCase runs the income forecast pipeline with optional
// response caching per user.
type ForecastIncomeUseCase struct {
	engine  *forecast.Engine
	cache   cache.Service
	ttl     time.Duration
	metrics domrepo.Metrics
	logger  *applogger.Logger
}

func NewForecastIncomeUseCase(
	engine *forecast.Engine,
	cacheSvc cache.Service,
	ttl time.Duration,
	metrics domrepo.Metrics,
	logger *applogger.Logger,
) *ForecastIncomeUseCase {
	if ttl <= 0 {
		ttl = defaultForecastTTL
	}
	return &ForecastIncomeUseCase{
		engine:  engine,
		cache:   cacheSvc,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

// Forecast returns a response for every input. Panics inside the pipeline
// degrade to the zeroed failure response.
func (uc *ForecastIncomeUseCase) Forecast(ctx context.Context, req *models.IncomeForecastRequest) (resp *models.IncomeForecastResponse) {
	defer func() {
		if r := recover(); r != nil {
			if uc.logger != nil {
				uc.logger.Error("income forecast panicked", applogger.Any("panic", r))
			}
			if uc.metrics != nil {
				uc.metrics.RecordError("forecast_panic")
			}
			resp = forecast.FailureResponse(fmt.Errorf("forecast failed: %v", r))
		}
	}()

	key := uc.cacheKey(req)
	if key != "" {
		var cached models.IncomeForecastResponse
		err := uc.cache.Get(ctx, key, &cached)
		if err == nil {
			return &cached
		}
		if !errors.Is(err, cache.ErrCacheMiss) && uc.logger != nil {
			uc.logger.Warn("forecast cache read failed", applogger.Error(err))
		}
	}

	start := time.Now()
	r := uc.engine.Predict(ctx, req.Transactions)

	if uc.metrics != nil {
		uc.metrics.RecordForecast(r.Method)
		uc.metrics.RecordLatency("income_forecast", time.Since(start).Seconds())
	}

	resp = forecast.Response(r)
	if key != "" {
		if err := uc.cache.Set(ctx, key, resp, uc.ttl); err != nil && uc.logger != nil {
			uc.logger.Warn("forecast cache write failed", applogger.Error(err))
		}
	}
	return resp
}

// cacheKey includes the transaction count so appending history invalidates
// naturally. Anonymous requests are never cached.
func (uc *ForecastIncomeUseCase) cacheKey(req *models.IncomeForecastRequest) string {
	if uc.cache == nil || req.UserID == "" {
		return ""
	}
	return fmt.Sprintf("forecast:%s:%d", req.UserID, len(req.Transactions))
}
