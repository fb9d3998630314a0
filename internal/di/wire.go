//go:build wireinject
// +build wireinject

package di

import (
	"FinSight/pkg/config"
	"FinSight/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Analysis collaborators
		ProvideClassifier,
		ProvideSeasonalForecaster,
		ProvideRiskEngine,
		ProvideForecastEngine,

		// Infrastructure clients
		ProvideCache,
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,

		// Repositories
		ProvideAssessmentSink,
		ProvideAlertPublisher,

		// Use cases
		ProvideScoreUseCase,
		ProvideForecastUseCase,
		ProvideKafkaTransactionsHandler,

		// Transport
		ProvideDecisionsHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
