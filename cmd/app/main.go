package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"onlineshop/cmd"
	httpadapter "onlineshop/internal/adapters/in/http"
	"onlineshop/internal/adapters/out/eventlog"
	"onlineshop/internal/adapters/out/kafka"
	"onlineshop/internal/adapters/out/postgres/customerrepo"
	"onlineshop/internal/adapters/out/postgres/orderrepo"
	"onlineshop/internal/adapters/out/postgres/productrepo"
	"onlineshop/internal/core/ports"
	"onlineshop/internal/jobs"
	"onlineshop/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	if err := run(logger); err != nil {
		logger.WithError(err).Fatal("application stopped")
	}
}

func run(logger *logrus.Logger) error {
	config, err := cmd.LoadConfig(".env")
	if err != nil {
		return err
	}

	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		return fmt.Errorf("parse LOG_LEVEL: %w", err)
	}
	logger.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(config)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	orderMetrics := metrics.NewOrderMetrics(registry)

	publisher, closePublisher := newEventPublisher(config, logger)
	defer closePublisher()

	app := cmd.NewCompositionRoot(db, publisher, orderMetrics, logger)

	lowStockJob := jobs.NewLowStockReportJob(
		app.CreateGetLowStockProductsQueryHandler(),
		orderMetrics,
		config.LowStockThreshold,
		config.LowStockSchedule,
		logger,
	)
	jobManager := jobs.NewJobManager(lowStockJob)
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e, err := newWebServer(app, registry, logger, level)
	if err != nil {
		return err
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.WithField("port", config.HTTPPort).Info("http server starting")
		serverErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort))
	}()

	select {
	case err = <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&customerrepo.CustomerDTO{},
		&productrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
	)
	if err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return db, nil
}

// newEventPublisher picks Kafka when brokers are configured and the log otherwise.
func newEventPublisher(config cmd.Config, logger logrus.FieldLogger) (ports.EventPublisher, func()) {
	brokers := config.KafkaBrokers()
	if len(brokers) == 0 {
		logger.Info("KAFKA_HOST is empty, order events go to the log")
		return eventlog.NewPublisher(logger), func() {}
	}

	publisher := kafka.NewOrderEventPublisher(brokers, config.KafkaOrderEventsTopic)
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.WithError(err).Error("failed to close kafka writer")
		}
	}
}

func newWebServer(
	app cmd.CompositionRoot,
	registry *prometheus.Registry,
	logger *logrus.Logger,
	level logrus.Level,
) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(echoLogLevel(level))

	e.Use(middleware.Recover())
	e.Use(httpadapter.RequestLogger(logger))

	doc, err := httpadapter.GetSwagger()
	if err != nil {
		return nil, err
	}
	validator, err := httpadapter.OpenAPIRequestValidator(doc)
	if err != nil {
		return nil, err
	}
	e.Use(validator)

	server := httpadapter.NewServer(
		app.CreatePlaceOrderCommandHandler(),
		app.CreateDeliverOrderCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateReturnOrderCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetProductQueryHandler(),
		logger,
	)
	httpadapter.RegisterHandlers(e, server)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

func echoLogLevel(level logrus.Level) log.Lvl {
	switch {
	case level >= logrus.DebugLevel:
		return log.DEBUG
	case level == logrus.InfoLevel:
		return log.INFO
	case level == logrus.WarnLevel:
		return log.WARN
	default:
		return log.ERROR
	}
}
