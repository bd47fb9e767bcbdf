package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/patrickmn/go-cache"

	appLogger "github.com/jacksu4/Vibe-Travel/app/logger"
	"github.com/jacksu4/Vibe-Travel/app/tracer"
	"github.com/jacksu4/Vibe-Travel/config"
	generativeAI "github.com/jacksu4/Vibe-Travel/internal/api/generative_ai"
	"github.com/jacksu4/Vibe-Travel/internal/api/geocode"
	"github.com/jacksu4/Vibe-Travel/internal/api/nearby"
	"github.com/jacksu4/Vibe-Travel/internal/api/photos"
	"github.com/jacksu4/Vibe-Travel/internal/api/routing"
	"github.com/jacksu4/Vibe-Travel/internal/api/trip"
	"github.com/jacksu4/Vibe-Travel/internal/router"
)

func main() {
	// Use standard log until slog is configured, in case godotenv fails
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := setupLogger(cfg.Mode)
	slog.SetDefault(logger)

	tracer.InitTracingAndMetrics()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	mapboxToken := os.Getenv("MAPBOX_ACCESS_TOKEN")
	if mapboxToken == "" {
		logger.Error("MAPBOX_ACCESS_TOKEN environment variable is not set")
		os.Exit(1)
	}

	// --- Dependency Injection ---
	geocodeCache := cache.New(cfg.Cache.GeocodeTTL, cfg.Cache.CleanupInterval)
	resolver := geocode.NewMapboxResolver(cfg.Mapbox.GeocodingURL, mapboxToken, cfg.Mapbox.Timeout, geocodeCache, logger)
	routingClient := routing.NewMapboxClient(cfg.Mapbox.DirectionsURL, mapboxToken, cfg.Mapbox.Timeout, logger)

	aiClient, err := generativeAI.NewAIClient(ctx, cfg.Gemini.Model, logger)
	if err != nil {
		logger.Error("Failed to initialize Gemini client", slog.Any("error", err))
		os.Exit(1)
	}
	suggestions := generativeAI.NewSuggestionService(aiClient, cfg.Gemini.Temperature, logger)

	planCache := trip.NewPlanCache(cfg.Cache.PlanTTL, cfg.Cache.CleanupInterval)
	tripService := trip.NewServiceImpl(resolver, suggestions, routingClient, planCache, logger)
	tripHandler := trip.NewTripHandler(tripService, logger)

	nearbyService := nearby.NewServiceImpl(resolver, suggestions, cfg.Nearby.RadiusKm, logger)
	nearbyHandler := nearby.NewNearbyHandler(nearbyService, logger)

	photoCache := cache.New(cfg.Cache.PhotoTTL, cfg.Cache.CleanupInterval)
	photosService, err := photos.NewServiceImpl(os.Getenv("GOOGLE_MAPS_API_KEY"), photoCache, logger)
	if err != nil {
		logger.Error("Failed to initialize Places client", slog.Any("error", err))
		os.Exit(1)
	}
	photosHandler := photos.NewPhotosHandler(photosService, logger)

	// --- Router Setup ---
	mainRouter := router.SetupRouter(&router.Config{
		TripHandler:   tripHandler,
		NearbyHandler: nearbyHandler,
		PhotosHandler: photosHandler,
	})

	mux := chi.NewMux()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(appLogger.StructuredLogger(logger))
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(middleware.Timeout(cfg.Server.Timeout))
	mux.Use(middleware.Compress(5, "application/json"))
	mux.Mount("/", mainRouter)

	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	go func() {
		logger.Info("Starting HTTP server", slog.String("address", serverAddress))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()

	logger.Info("Shutdown signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}

	logger.Info("Application shut down complete.")
}

// setupLogger configures and returns the application logger.
func setupLogger(mode string) *slog.Logger {
	var logger *slog.Logger

	if mode == "development" || mode == "" {
		// Colored logs for development
		tintOpts := &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}
		logger = slog.New(tint.NewHandler(os.Stdout, tintOpts))
		log.Println("Initialized development logger (tint)")
	} else {
		// JSON logs for production
		jsonOpts := &slog.HandlerOptions{
			Level:     slog.LevelInfo,
			AddSource: false,
		}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, jsonOpts))
		log.Println("Initialized production logger (JSON)")
	}
	return logger
}
