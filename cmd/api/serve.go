package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	handlers "realtyapi/internal/http/handler"
	"realtyapi/internal/http/middleware"
	"realtyapi/internal/logger"
	appotel "realtyapi/internal/otel"
	"realtyapi/internal/pipeline"
	"realtyapi/internal/repository/postgres"
	"realtyapi/internal/service"
	"realtyapi/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer e.close()
	cfg, log := e.cfg, e.log

	shutdownTracing, err := appotel.Init(ctx, cfg.Telemetry, logger.Component(log, "otel"))
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("tracing shutdown", zap.Error(err))
		}
	}()

	objStore, err := storage.New(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize object storage: %w", err)
	}

	exec, err := pipeline.NewExecutor(cfg.Image.Executor)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	pipelineMetrics, err := pipeline.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("register pipeline metrics: %w", err)
	}
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("register http metrics: %w", err)
	}

	dispatcher := pipeline.NewDispatcher(exec, cfg.Image.TaskTimeout, pipelineMetrics, logger.Component(log, "pipeline"))

	listingRepo := postgres.NewListingPostgres(e.db)
	realtorRepo := postgres.NewRealtorPostgres(e.db)
	imageRepo := postgres.NewPropertyImagePostgres(e.db)
	inquiryRepo := postgres.NewInquiryPostgres(e.db)

	imageSvc := service.NewImageService(objStore, imageRepo, logger.Component(log, "images"))
	listingSvc := service.NewListingService(listingRepo, imageSvc, dispatcher, logger.Component(log, "listings"))
	services := handlers.Services{
		Listings:  listingSvc,
		Realtors:  service.NewRealtorService(realtorRepo, listingRepo),
		Inquiries: service.NewInquiryService(listingSvc, inquiryRepo),
		Reports:   service.NewReportService(inquiryRepo, cfg.Location()),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// room for a full batch of photos plus the listing fields
		BodyLimit: pipeline.MaxBatch*cfg.Image.MaxUploadBytes + 1<<20,
	})

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(logger.Component(log, "http")))
	if cfg.Telemetry.MetricsEnabled {
		app.Use(promMiddleware.Handler())
	}

	handlers.RegisterRoutes(app, e.db, services, handlers.Options{
		MaxUploadBytes: cfg.Image.MaxUploadBytes,
		Gatherer:       reg,
		Logger:         logger.Component(log, "http"),
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting",
			zap.String("addr", addr),
			zap.String("storage_driver", cfg.Storage.Driver),
			zap.String("image_executor", cfg.Image.Executor))
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("http server stopping")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
