package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trade-kart/internal/cart"
	"trade-kart/internal/catalog"
	"trade-kart/internal/checkout"
	"trade-kart/internal/config"
	"trade-kart/internal/handler"
	"trade-kart/internal/order"
	"trade-kart/internal/router"
	"trade-kart/internal/warranty"
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
	logger.Info().Msg("starting trade-kart API server")

	// Initialize stores. The cart loads its persisted snapshot on startup;
	// orders and warranties live for the process lifetime.
	cartStorage := cart.NewFileStorage(cfg.Storage.CartFile, logger)
	cartStore := cart.NewStore(cartStorage, logger)
	orderStore := order.NewStore(logger)
	warrantyStore := warranty.NewStore(orderStore, logger)
	productCatalog := catalog.New(catalog.SampleProducts(), logger)

	// Initialize the checkout pipeline over the simulated payment gateway
	gateway := checkout.NewSimulatedGateway(cfg.Checkout.PaymentDelay, cfg.Checkout.PaymentFailureRate, logger)
	pipeline := checkout.NewPipeline(cartStore, orderStore, gateway, cfg.Checkout, logger)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productCatalog, logger)
	cartHandler := handler.NewCartHandler(cartStore, productCatalog, logger)
	checkoutHandler := handler.NewCheckoutHandler(pipeline, logger)
	orderHandler := handler.NewOrderHandler(orderStore, logger)
	warrantyHandler := handler.NewWarrantyHandler(warrantyStore, logger)

	// Initialize router
	mux := router.New(
		productHandler,
		cartHandler,
		checkoutHandler,
		orderHandler,
		warrantyHandler,
		cfg.Auth.APIKey,
		logger,
	)

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
