package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"gstcore/internal/config"
	"gstcore/internal/handler"
	"gstcore/internal/logger"
	"gstcore/internal/metrics"
	"gstcore/internal/repository/postgres"
	"gstcore/internal/router"
	"gstcore/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zl, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// No exporter is registered; spans supply trace IDs to request logs and
	// propagate incoming trace context.
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	m := metrics.New(prometheus.DefaultRegisterer, metrics.Config{
		ServiceName: "gstcore",
		Environment: cfg.Server.Environment,
	})

	// Initialize repositories
	sequenceRepo := postgres.NewSequenceRepo(db)
	invoiceNumberRepo := postgres.NewInvoiceNumberRepo(db)

	// Initialize services
	seller := cfg.Company.Jurisdiction()
	if seller.IsZero() {
		zl.Warn("company state not configured; drafts without a seller are priced as inter-state")
	}
	quoteSvc := service.NewQuoteService(seller, m, zl)
	numberingSvc, err := service.NewNumberingService(sequenceRepo, invoiceNumberRepo, cfg.Numbering, m, zl)
	if err != nil {
		return fmt.Errorf("failed to initialize numbering: %w", err)
	}

	// Initialize handlers
	totalsH := handler.NewTotalsHandler(quoteSvc)
	numberH := handler.NewInvoiceNumberHandler(numberingSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(zl, cfg.CORS.AllowedOrigins, prometheus.DefaultGatherer, totalsH, numberH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server starting",
			zap.String("addr", cfg.Server.Port),
			zap.String("series", cfg.Numbering.Series),
			zap.String("seller", seller.String()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
