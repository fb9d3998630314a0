package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"FinSight/pkg/cache"
	pkgch "FinSight/pkg/clickhouse"
	"FinSight/pkg/config"
	xhttp "FinSight/pkg/http"
	pkgkafka "FinSight/pkg/kafka"
	applogger "FinSight/pkg/logger"
)

// App encapsulates the application lifecycle: the HTTP server, the optional
// Kafka scoring consumer, and the infrastructure clients they depend on.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	handler    xhttp.Handler
	consumer   *pkgkafka.Consumer
	kh         pkgkafka.MessageHandler
	chClient   *pkgch.Client
	producer   *pkgkafka.Producer
	cache      cache.Service
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
	cacheSvc cache.Service,
) *App {
	return &App{
		cfg:      cfg,
		logger:   logger,
		handler:  handler,
		consumer: consumer,
		kh:       kh,
		chClient: chClient,
		producer: producer,
		cache:    cacheSvc,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx := context.Background()

	metricsPath := ""
	if a.cfg.Metrics.Enabled {
		metricsPath = a.cfg.Metrics.Path
	}

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithLogger(a.logger),
	)

	if a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		if err := a.consumer.Start(); err != nil {
			a.logger.Error("kafka consumer start error", applogger.Error(err))
			return err
		}
		a.logger.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))
	}

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops the server and closes infrastructure clients.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.consumer != nil {
		if err := a.consumer.Stop(shutdownCtx); err != nil {
			a.logger.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Warn("kafka producer close error", applogger.Error(err))
		}
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.logger.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("cache close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
