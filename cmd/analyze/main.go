package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"FinSight/internal/domain/models"
	domsvc "FinSight/internal/domain/service"
	"FinSight/internal/services/analytics"
	"FinSight/internal/services/classifier"
	"FinSight/internal/services/forecast"
	"FinSight/internal/services/risk"
	applogger "FinSight/pkg/logger"
)

// analyze runs one pipeline over one JSON request passed as the single
// positional argument and writes one JSON line to stdout. Exit code is 0 on
// success and 1 on any failure, including malformed input.
func main() {
	mode := flag.String("mode", "risk", "analysis mode: risk or income")
	modelPath := flag.String("model", os.Getenv("RISK_MODEL_PATH"), "fraud model artifact path")
	seasonalURL := flag.String("seasonal-url", os.Getenv("SEASONAL_SERVICE_URL"), "seasonal forecast service URL")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: analyze [-mode risk|income] '<json request>'")
		os.Exit(1)
	}

	ok := run(*mode, *modelPath, *seasonalURL, flag.Arg(0))
	if !ok {
		os.Exit(1)
	}
}

func run(mode, modelPath, seasonalURL, raw string) bool {
	ctx := context.Background()

	switch mode {
	case "risk":
		var req models.RiskScoreRequest
		if err := json.Unmarshal([]byte(raw), &req); err != nil {
			return emit(risk.FailureResponse(fmt.Errorf("invalid request: %w", err)), false)
		}

		var clf domsvc.FraudClassifier
		if modelPath != "" {
			if m, err := classifier.Load(modelPath); err == nil {
				clf = m
			}
		}

		engine := risk.NewEngine(clf, applogger.Nop())
		resp := score(ctx, engine, &req)
		return emit(resp, resp.Success)

	case "income":
		var req models.IncomeForecastRequest
		if err := json.Unmarshal([]byte(raw), &req); err != nil {
			return emit(forecast.FailureResponse(fmt.Errorf("invalid request: %w", err)), false)
		}

		var seasonal domsvc.SeasonalForecaster
		if seasonalURL != "" {
			seasonal = analytics.NewHTTPSeasonalForecaster(seasonalURL, 10*time.Second)
		}

		engine := forecast.NewEngine(seasonal, applogger.Nop())
		resp := predict(ctx, engine, &req)
		return emit(resp, resp.Success)

	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", mode)
		return false
	}
}

// score converts runtime faults into the conservative failure response.
func score(ctx context.Context, engine *risk.Engine, req *models.RiskScoreRequest) (resp *models.RiskScoreResponse) {
	defer func() {
		if r := recover(); r != nil {
			resp = risk.FailureResponse(fmt.Errorf("scoring failed: %v", r))
		}
	}()
	return risk.Response(engine.Score(ctx, req.Transaction, req.UserHistory))
}

func predict(ctx context.Context, engine *forecast.Engine, req *models.IncomeForecastRequest) (resp *models.IncomeForecastResponse) {
	defer func() {
		if r := recover(); r != nil {
			resp = forecast.FailureResponse(fmt.Errorf("forecast failed: %v", r))
		}
	}()
	return forecast.Response(engine.Predict(ctx, req.Transactions))
}

func emit(v interface{}, ok bool) bool {
	b, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode response: %v\n", err)
		return false
	}
	fmt.Println(string(b))
	return ok
}
