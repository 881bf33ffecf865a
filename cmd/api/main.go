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

	"slay-store/internal/auth"
	"slay-store/internal/config"
	"slay-store/internal/database"
	"slay-store/internal/handler"
	"slay-store/internal/repository"
	"slay-store/internal/router"
	"slay-store/internal/seed"
	"slay-store/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const dbMonitorInterval = 10 * time.Second

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
	logger.Info().Msg("starting SLAY API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Apply schema migrations before serving
	if err := database.Migrate(cfg.Database.ConnectionString(), logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize database connection pool and its liveness monitor
	state := database.NewConnState()
	pool, err := database.NewPool(ctx, cfg.Database, state, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()
	go state.Watch(ctx, pool, dbMonitorInterval, logger)

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool, logger)
	addressRepo := repository.NewAddressRepository(pool, logger)
	paymentRepo := repository.NewPaymentMethodRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)
	bannerRepo := repository.NewBannerRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	// Initialize services
	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	userService := service.NewUserService(userRepo, tokens, logger)
	addressService := service.NewAddressService(userRepo, addressRepo, logger)
	paymentService := service.NewPaymentMethodService(userRepo, paymentRepo, logger)
	productService := service.NewProductService(productRepo, logger)
	bannerService := service.NewBannerService(bannerRepo, logger)
	orderService := service.NewOrderService(userRepo, orderRepo, logger)

	// Seed an empty catalog when files are configured
	if len(cfg.Seed.Files) > 0 {
		loader := seed.NewLoader(ctx, cfg.S3, logger)
		seeder := seed.NewSeeder(loader, productRepo, productService, bannerService, logger)
		if _, err := seeder.Run(ctx, cfg.Seed.Files); err != nil {
			logger.Error().Err(err).Msg("catalog seeding failed, continuing with existing catalog")
		}
	}

	// Metrics registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Initialize router
	mux := router.New(router.Handlers{
		Users:          handler.NewUserHandler(userService, logger),
		Addresses:      handler.NewAddressHandler(addressService, logger),
		PaymentMethods: handler.NewPaymentMethodHandler(paymentService, logger),
		Orders:         handler.NewOrderHandler(orderService, logger),
		Products:       handler.NewProductHandler(productService, logger),
		Banners:        handler.NewBannerHandler(bannerService, logger),
		Health:         handler.NewHealthHandler(state),
	}, router.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Authenticator:  userService,
		Registry:       registry,
	}, logger)

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
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
