package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bistro/internal/audit"
	"bistro/internal/config"
	"bistro/internal/database"
	"bistro/internal/handler"
	"bistro/internal/notify"
	"bistro/internal/promo"
	"bistro/internal/repository"
	"bistro/internal/router"
	"bistro/internal/service"

	"github.com/redis/go-redis/v9"
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
	logger.Info().Msg("starting bistro API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize repositories
	dishRepo := repository.NewDishRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	promoRepo := repository.NewPromoRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	reviewRepo := repository.NewReviewRepository(pool, logger)
	favoriteRepo := repository.NewFavoriteRepository(pool, logger)

	// Initialize notification sinks. The audit recorder always runs; the
	// Redis sink joins only when Redis is configured.
	sinks := []notify.Sink{audit.NewRecorder(pool, logger)}

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn().Err(err).Msg("redis unreachable, order notifications disabled")
		} else {
			sinks = append(sinks, notify.NewRedisSink(rdb, logger))
			logger.Info().Str("addr", cfg.Redis.Addr).Msg("redis notifications enabled")
		}
	} else {
		logger.Info().Msg("redis disabled, order notifications limited to the activity log")
	}

	sink := notify.NewFanout(logger, sinks...)

	// Initialize promo code validator
	validator := promo.NewValidator(promoRepo, logger)

	// Initialize services
	dishService := service.NewDishService(dishRepo, logger)
	cartService := service.NewCartService(cartRepo, dishRepo, logger)
	checkoutService := service.NewCheckoutService(orderRepo, cartRepo, promoRepo, sink, logger)
	orderService := service.NewOrderService(orderRepo, sink, logger)
	reviewService := service.NewReviewService(reviewRepo, dishRepo, sink, logger)
	promoService := service.NewPromoService(promoRepo, validator, logger)
	favoriteService := service.NewFavoriteService(favoriteRepo, dishRepo, logger)

	// Initialize HTTP handlers
	dishHandler := handler.NewDishHandler(dishService, logger)
	cartHandler := handler.NewCartHandler(cartService, logger)
	orderHandler := handler.NewOrderHandler(checkoutService, orderService, logger)
	promoHandler := handler.NewPromoHandler(promoService, logger)
	reviewHandler := handler.NewReviewHandler(reviewService, logger)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService, logger)

	// Initialize router
	mux := router.New(dishHandler, cartHandler, orderHandler, promoHandler, reviewHandler, favoriteHandler, cfg.Auth.JWTSecret, logger)

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

		logger.Info().Msg("server stopped gracefully")
	}

	return nil
}
