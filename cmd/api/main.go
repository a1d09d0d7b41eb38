package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fasttrack/internal/cache"
	"fasttrack/internal/cart"
	"fasttrack/internal/config"
	"fasttrack/internal/database"
	"fasttrack/internal/events"
	"fasttrack/internal/handler"
	"fasttrack/internal/metrics"
	"fasttrack/internal/repository"
	"fasttrack/internal/router"
	"fasttrack/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting fasttrack API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	// Initialize cart snapshot store with S3 and local fallback
	fileStore, err := cart.NewFileStore(cfg.Cart.SnapshotDir, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize cart snapshot store: %w", err)
	}
	snapshots := fileStore

	if cfg.S3.Enabled {
		s3Store, err := cart.NewS3Store(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Prefix, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 snapshot store, using local file store only")
		} else {
			snapshots = cart.NewFallbackStore(s3Store, fileStore, logger)
		}
	} else {
		logger.Info().Msg("using local file store for cart snapshots (S3 disabled)")
	}

	// Initialize event publisher
	publisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
	defer publisher.Close()

	// Shared view cache
	views := cache.New()

	// Initialize services
	catalogService := service.NewCatalogService(productRepo, views, logger)
	checkoutService := service.NewCheckoutService(orderRepo, views, publisher, logger)
	inventoryService := service.NewInventoryService(productRepo, views, publisher, logger)
	dashboardService := service.NewDashboardService(orderRepo, productRepo, logger)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(catalogService, logger)
	orderHandler := handler.NewOrderHandler(checkoutService, logger)
	cartHandler := handler.NewCartHandler(snapshots, logger)
	adminHandler := handler.NewAdminHandler(inventoryService, dashboardService, logger)

	// Initialize metrics and router
	serverMetrics := metrics.NewServerMetrics()
	mux := router.New(productHandler, orderHandler, cartHandler, adminHandler, serverMetrics, cfg.Auth.JWTSecret, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
