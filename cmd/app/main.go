package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace/cmd"
	httpapi "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/notifier"
	"marketplace/internal/adapters/out/postgres/migrations"
	"marketplace/internal/core/application/notifications"
	"marketplace/internal/core/ports"
	"marketplace/internal/telemetry"

	"go.opentelemetry.io/otel"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const serviceName = "marketplace-orders"

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("service stopped", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	config, err := cmd.LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if config.OTelEnabled {
		shutdownTracing, tracingErr := telemetry.InitTracerProvider(ctx, config.OTelEndpoint, serviceName, config.ServiceVersion)
		if tracingErr != nil {
			return fmt.Errorf("failed to init tracing: %w", tracingErr)
		}
		defer shutdown(logger, "tracing", shutdownTracing)
	}

	metricsHandler, shutdownMetrics, err := telemetry.InitMeterProvider(serviceName, config.ServiceVersion)
	if err != nil {
		return fmt.Errorf("failed to init metrics: %w", err)
	}
	defer shutdown(logger, "metrics", shutdownMetrics)

	if config.DBAutoMigrate {
		if err = migrations.Up(config.DatabaseURL()); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		logger.Info("migrations applied")
	}

	db, err := telemetry.OpenDB(config.DatabaseURL(), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	if err = sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	var n ports.Notifier
	if len(config.KafkaBrokers) > 0 {
		kafkaNotifier := notifier.NewKafkaNotifier(config.KafkaBrokers, config.KafkaNotificationsTopic)
		defer func() { _ = kafkaNotifier.Close() }()
		n = kafkaNotifier
	} else {
		logger.Warn("KAFKA_BROKERS is empty, notifications are only logged")
		n = notifier.NewLogNotifier(logger)
	}

	dispatcher, err := notifications.NewDispatcher(n, logger, otel.Meter(serviceName))
	if err != nil {
		return fmt.Errorf("failed to create notification dispatcher: %w", err)
	}

	app := cmd.NewCompositionRoot(config, db, dispatcher, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	api, err := httpapi.LoadAPI(ctx)
	if err != nil {
		return err
	}
	api.RegisterSwagger()

	e := httpapi.NewRouter(httpapi.RouterConfig{
		Server:      app.CreateHTTPServer(),
		API:         api,
		Metrics:     metricsHandler,
		Logger:      logger,
		ServiceName: serviceName,
	})
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 10 * time.Second

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting marketplace service", "port", config.HTTPPort, "version", config.ServiceVersion)
		if startErr := e.Start(":" + config.HTTPPort); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			serverErr <- startErr
		}
	}()

	select {
	case err = <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return e.Shutdown(shutdownCtx)
}

func shutdown(logger *slog.Logger, name string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := fn(ctx); err != nil {
		logger.Error("shutdown failed", "component", name, "error", err)
	}
}
