package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dallyp22/Scheduler-VS/internal/api/handlers"
	"github.com/dallyp22/Scheduler-VS/internal/application"
	"github.com/dallyp22/Scheduler-VS/internal/config"
	"github.com/dallyp22/Scheduler-VS/internal/domain"
	"github.com/dallyp22/Scheduler-VS/internal/infrastructure/fixtures"
	kafkaAdapter "github.com/dallyp22/Scheduler-VS/internal/infrastructure/kafka"
	mongoRepo "github.com/dallyp22/Scheduler-VS/internal/infrastructure/mongodb"
	temporalAdapter "github.com/dallyp22/Scheduler-VS/internal/infrastructure/temporal"
	"github.com/dallyp22/Scheduler-VS/pkg/cloudevents"
	"github.com/dallyp22/Scheduler-VS/pkg/kafka"
	"github.com/dallyp22/Scheduler-VS/pkg/logging"
	"github.com/dallyp22/Scheduler-VS/pkg/metrics"
	"github.com/dallyp22/Scheduler-VS/pkg/middleware"
	"github.com/dallyp22/Scheduler-VS/pkg/mongodb"
	"github.com/dallyp22/Scheduler-VS/pkg/temporal"
	"github.com/dallyp22/Scheduler-VS/pkg/tracing"
)

const serviceName = "scheduler-api"

func main() {
	logger := logging.New(logging.DefaultConfig(serviceName))
	logger.SetDefault()

	logger.Info("Starting scheduler API")

	cfg := config.Load(serviceName)
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Initialize OpenTelemetry tracing
	tracingConfig := tracing.DefaultConfig(serviceName)
	tracingConfig.OTLPEndpoint = cfg.OTLPEndpoint
	tracingConfig.Environment = cfg.Environment
	tracingConfig.Enabled = cfg.TracingEnabled

	tracerProvider, err := tracing.Initialize(ctx, tracingConfig)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize tracing")
	} else if tracerProvider != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
				logger.WithError(err).Error("Failed to shutdown tracer")
			}
		}()
		logger.Info("Tracing initialized", "endpoint", tracingConfig.OTLPEndpoint)
	}

	m := metrics.New(metrics.DefaultConfig(serviceName))

	// Initialize MongoDB with instrumentation
	mongoClient, err := mongodb.NewClient(ctx, cfg.MongoDB)
	if err != nil {
		logger.WithError(err).Error("Failed to connect to MongoDB")
		os.Exit(1)
	}
	instrumentedMongo := mongodb.NewInstrumentedClient(mongoClient, m, logger)
	defer instrumentedMongo.Close(context.Background())
	logger.Info("Connected to MongoDB", "database", cfg.MongoDB.Database)

	repos := application.Repositories{
		SKUs:      mongoRepo.NewSKURepository(instrumentedMongo),
		Lines:     mongoRepo.NewLineRepository(instrumentedMongo),
		Orders:    mongoRepo.NewOrderRepository(instrumentedMongo),
		Schedules: mongoRepo.NewScheduleRepository(instrumentedMongo),
		Actuals:   mongoRepo.NewActualsRepository(instrumentedMongo),
	}

	if err := seedRegistry(ctx, cfg, repos, logger); err != nil {
		logger.WithError(err).Error("Failed to seed plant registry")
		os.Exit(1)
	}

	var publisher domain.EventPublisher
	var consumer *kafka.InstrumentedConsumer
	if cfg.KafkaEnabled {
		producer := kafka.NewProductionProducer(cfg.Kafka, m, logger)
		defer producer.Close()
		publisher = kafkaAdapter.NewEventPublisher(producer, cloudevents.NewEventFactory(cloudevents.SourceSchedulerAPI), kafka.Topics.SchedulesEvents)
		consumer = kafka.NewProductionConsumer(cfg.Kafka, m, logger)
		defer consumer.Close()
		logger.Info("Kafka initialized", "brokers", cfg.Kafka.Brokers)
	}

	opts := []application.Option{
		application.WithScheduleWindow(cfg.ScheduleWindow),
		application.WithVarianceSeed(cfg.VarianceSeed),
	}
	if cfg.ActualsSeed != nil {
		opts = append(opts, application.WithActualsSimulator(domain.NewSeededActuals(*cfg.ActualsSeed)))
	}

	if cfg.TemporalEnabled {
		temporalClient, err := temporal.NewClient(ctx, cfg.Temporal, logger.Logger)
		if err != nil {
			logger.WithError(err).Warn("Temporal unavailable, scenarios run in-process")
		} else {
			defer temporalClient.Close()
			opts = append(opts, application.WithScenarioExecutor(temporalAdapter.NewScenarioExecutor(temporalClient, m, logger)))
			logger.Info("Connected to Temporal", "namespace", cfg.Temporal.Namespace)
		}
	}

	service := application.NewSchedulingService(repos, publisher, m, logger, opts...)

	if consumer != nil {
		kafkaAdapter.NewFeedbackConsumer(service, logger).Register(consumer)
		go func() {
			if err := consumer.Start(ctx); err != nil && err != context.Canceled {
				logger.WithError(err).Error("Feedback consumer stopped")
			}
		}()
		logger.Info("Feedback consumer started", "topic", kafka.Topics.ProductionFeedback)
	}

	router := gin.New()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", "X-Correlation-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "X-Correlation-ID"},
		AllowCredentials: true,
	}))

	middleware.Setup(router, middleware.DefaultConfig(serviceName, logger))
	router.Use(middleware.MetricsMiddleware(m))
	router.Use(middleware.TracingMiddleware(serviceName))

	router.GET("/health", middleware.HealthCheck(serviceName))
	router.GET("/ready", middleware.ReadinessCheck(serviceName, map[string]func(context.Context) error{
		"mongodb": instrumentedMongo.HealthCheck,
	}))
	router.GET("/metrics", middleware.MetricsEndpoint(m))

	handlers.NewSchedulerHandlers(service, logger).RegisterRoutes(router.Group("/api/v1"))

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Server error")
		}
	}()
	logger.Info("Server started", "addr", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server stopped")
}

func seedRegistry(ctx context.Context, cfg *config.Config, repos application.Repositories, logger *logging.Logger) error {
	plant, err := fixtures.LoadOrDefault(cfg.FixturePath)
	if err != nil {
		return err
	}

	seeded, err := plant.Seed(ctx, fixtures.Registry{SKUs: repos.SKUs, Lines: repos.Lines, Orders: repos.Orders}, time.Now())
	if err != nil {
		return err
	}
	if seeded {
		logger.Info("Seeded plant registry",
			"lines", len(plant.Lines),
			"skus", len(plant.SKUs),
			"orders", len(plant.Orders),
		)
	}
	return nil
}
