package di

import (
	"context"
	"fmt"
	"time"

	domrepo "FinSight/internal/domain/repository"
	domsvc "FinSight/internal/domain/service"
	"FinSight/internal/handler/api"
	internalrepo "FinSight/internal/repository"
	"FinSight/internal/services/analytics"
	"FinSight/internal/services/classifier"
	"FinSight/internal/services/forecast"
	"FinSight/internal/services/risk"
	"FinSight/internal/usecase"
	"FinSight/pkg/cache"
	pkgch "FinSight/pkg/clickhouse"
	"FinSight/pkg/config"
	pkgkafka "FinSight/pkg/kafka"
	applogger "FinSight/pkg/logger"
	"FinSight/pkg/metrics"
	"FinSight/pkg/server"
)

// ProvideLogger creates the application logger from YAML config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideClassifier loads the pretrained fraud model. A missing or broken
// artifact degrades scoring to rule-only rather than failing startup.
func ProvideClassifier(cfg *config.Config, l *applogger.Logger) domsvc.FraudClassifier {
	if cfg.Risk.ModelPath == "" {
		return nil
	}
	m, err := classifier.Load(cfg.Risk.ModelPath)
	if err != nil {
		l.Warn("fraud model unavailable, scoring rule-only",
			applogger.String("path", cfg.Risk.ModelPath),
			applogger.Error(err),
		)
		return nil
	}
	l.Info("fraud model loaded", applogger.String("path", cfg.Risk.ModelPath))
	return m
}

// ProvideSeasonalForecaster creates the HTTP seasonal forecasting collaborator.
func ProvideSeasonalForecaster(cfg *config.Config) domsvc.SeasonalForecaster {
	if cfg.Forecast.SeasonalServiceURL == "" {
		return nil
	}
	return analytics.NewHTTPSeasonalForecaster(cfg.Forecast.SeasonalServiceURL, cfg.Forecast.Timeout)
}

// ProvideRiskEngine creates the risk scoring engine.
func ProvideRiskEngine(clf domsvc.FraudClassifier, l *applogger.Logger) *risk.Engine {
	return risk.NewEngine(clf, l)
}

// ProvideForecastEngine creates the income forecasting engine.
func ProvideForecastEngine(seasonal domsvc.SeasonalForecaster, l *applogger.Logger) *forecast.Engine {
	return forecast.NewEngine(seasonal, l)
}

// ProvideCache creates the forecast cache backend.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if cfg.Cache.Backend == "redis" {
		c, err := cache.NewRedisCache(
			cache.WithRedisAddr(cfg.Cache.Redis.Addr),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return c, nil
	}
	return cache.NewMemoryCache(), nil
}

// ProvideClickHouseClient creates a ClickHouse client and prepares the audit
// schema. Returns nil when the audit sink is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, internalrepo.AssessmentSchema); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideAssessmentSink creates the ClickHouse audit sink.
func ProvideAssessmentSink(ch *pkgch.Client, l *applogger.Logger) domrepo.AssessmentSink {
	if ch == nil {
		return nil
	}
	return internalrepo.NewCHAssessmentStore(ch, l)
}

// ProvideKafkaProducer creates a Kafka producer for fraud alerts. Returns nil
// when Kafka is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideAlertPublisher creates the Kafka fraud alert publisher.
func ProvideAlertPublisher(producer *pkgkafka.Producer, cfg *config.Config) domrepo.AlertPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaAlertPublisher(producer, cfg.Kafka.AlertTopic)
}

// ProvideKafkaConsumer creates a Kafka consumer for the scoring topic.
// Returns nil when Kafka is disabled or no scoring topic is configured.
func ProvideKafkaConsumer(cfg *config.Config, l *applogger.Logger) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Enabled || cfg.Kafka.ScoringTopic == "" {
		return nil, nil
	}

	consumer, err := pkgkafka.NewConsumer(l,
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideScoreUseCase creates the transaction scoring use case.
func ProvideScoreUseCase(
	engine *risk.Engine,
	sink domrepo.AssessmentSink,
	alerts domrepo.AlertPublisher,
	m domrepo.Metrics,
	l *applogger.Logger,
) *usecase.ScoreTransactionUseCase {
	return usecase.NewScoreTransactionUseCase(engine, sink, alerts, m, l)
}

// ProvideForecastUseCase creates the income forecasting use case.
func ProvideForecastUseCase(
	engine *forecast.Engine,
	cacheSvc cache.Service,
	cfg *config.Config,
	m domrepo.Metrics,
	l *applogger.Logger,
) *usecase.ForecastIncomeUseCase {
	return usecase.NewForecastIncomeUseCase(engine, cacheSvc, cfg.Forecast.CacheTTL, m, l)
}

// ProvideKafkaTransactionsHandler registers the handler for the scoring topic.
func ProvideKafkaTransactionsHandler(
	cfg *config.Config,
	scorer *usecase.ScoreTransactionUseCase,
	m domrepo.Metrics,
	l *applogger.Logger,
) *usecase.KafkaTransactionsHandler {
	return usecase.NewKafkaTransactionsHandler(cfg.Kafka.ScoringTopic, scorer, m, l)
}

// ProvideDecisionsHandler creates the HTTP handler for both pipelines.
func ProvideDecisionsHandler(
	l *applogger.Logger,
	scorer *usecase.ScoreTransactionUseCase,
	forecaster *usecase.ForecastIncomeUseCase,
) *api.DecisionsHandler {
	return api.NewDecisionsHandler(l, scorer, forecaster)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler *api.DecisionsHandler,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaTransactionsHandler,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
	cacheSvc cache.Service,
) *server.App {
	return server.New(cfg, l, handler, consumer, kh, chClient, producer, cacheSvc)
}
