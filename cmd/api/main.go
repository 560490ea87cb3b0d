// Package main provides the entrypoint for the CleanSky API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/cleansky/cleansky/internal/airquality"
	aqopenmeteo "github.com/cleansky/cleansky/internal/airquality/openmeteo"
	"github.com/cleansky/cleansky/internal/api"
	"github.com/cleansky/cleansky/internal/api/middleware"
	"github.com/cleansky/cleansky/internal/dashboard"
	"github.com/cleansky/cleansky/internal/database"
	"github.com/cleansky/cleansky/internal/geolocate"
	"github.com/cleansky/cleansky/internal/geolocate/ipapi"
	"github.com/cleansky/cleansky/internal/insight"
	"github.com/cleansky/cleansky/internal/insight/gemini"
	"github.com/cleansky/cleansky/internal/provider/resilience"
	"github.com/cleansky/cleansky/internal/report"
	"github.com/cleansky/cleansky/internal/telemetry"
	"github.com/cleansky/cleansky/internal/weather"
	wxopenmeteo "github.com/cleansky/cleansky/internal/weather/openmeteo"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "cleansky-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting CleanSky API")

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryCfg := telemetry.ConfigFromEnv(serviceName, Version)

	tp, err := telemetry.Init(ctx, telemetryCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryCfg.Enabled {
		log.Info().
			Str("otlp_endpoint", telemetryCfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Resilient clients for the upstream providers, registered for ops
	// health reporting.
	registry := resilience.NewRegistry()

	aqHTTP := resilience.NewClient(resilience.DefaultClientConfig(aqopenmeteo.ProviderName))
	registry.Register(aqopenmeteo.ProviderName, aqHTTP)

	wxHTTP := resilience.NewClient(resilience.DefaultClientConfig(wxopenmeteo.ProviderName))
	registry.Register(wxopenmeteo.ProviderName, wxHTTP)

	geoHTTP := resilience.NewClient(resilience.DefaultClientConfig(ipapi.ProviderName))
	registry.Register(ipapi.ProviderName, geoHTTP)

	// Initialize air quality service
	aqService := airquality.NewService(airquality.ServiceConfig{
		Provider: aqopenmeteo.NewClient(aqopenmeteo.ClientConfig{
			HTTPClient: aqHTTP,
			Logger:     log,
		}),
		Logger: log,
	})
	log.Info().Msg("air quality service initialized")

	// Initialize weather service
	weatherService := weather.NewService(weather.ServiceConfig{
		Provider: wxopenmeteo.NewClient(wxopenmeteo.ClientConfig{
			HTTPClient: wxHTTP,
			Logger:     log,
		}),
		Logger: log,
	})
	log.Info().Msg("weather service initialized")

	// Initialize geolocation service
	geolocateService := geolocate.NewService(geolocate.ServiceConfig{
		Provider: ipapi.NewClient(ipapi.ClientConfig{
			HTTPClient: geoHTTP,
			Logger:     log,
		}),
		Logger: log,
	})
	log.Info().Msg("geolocation service initialized")

	// Initialize insight service (AI features are off without an API key;
	// the service degrades to localized placeholders)
	var insightProvider insight.Provider
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		geminiHTTP := resilience.NewClient(resilience.DefaultClientConfig(gemini.ProviderName))
		registry.Register(gemini.ProviderName, geminiHTTP)

		insightProvider = gemini.NewClient(gemini.ClientConfig{
			APIKey:     apiKey,
			HTTPClient: geminiHTTP,
			Logger:     log,
		})
		log.Info().Msg("Gemini provider initialized")
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set - AI features disabled")
	}

	insightService := insight.NewService(insight.ServiceConfig{
		Provider: insightProvider,
		Logger:   log,
	})

	// Initialize report repository and service. Reports are held in memory
	// unless a database is configured.
	var reportRepo report.Repository = report.NewInMemoryRepository()
	if os.Getenv("DB_ENABLED") == "true" {
		dbConfig := database.ConfigFromEnv()
		pool, connectErr := database.Connect(ctx, dbConfig)
		if connectErr != nil {
			log.Fatal().Err(connectErr).Msg("failed to connect to database")
		}
		defer pool.Close()
		log.Info().
			Str("host", dbConfig.Host).
			Int("port", dbConfig.Port).
			Str("database", dbConfig.Database).
			Msg("database connected")

		reportRepo = report.NewPostgresRepository(pool)
	} else {
		log.Warn().Msg("DB_ENABLED not set - reports are stored in memory")
	}

	reportService := report.NewService(report.ServiceConfig{
		Repository: reportRepo,
		Classifier: insightService,
		Logger:     log,
	})
	log.Info().Msg("report service initialized")

	// Initialize dashboard service
	dashboardService := dashboard.NewService(dashboard.ServiceConfig{
		AirQuality: aqService,
		Weather:    weatherService,
		Insight:    insightService,
		Logger:     log,
	})
	log.Info().Msg("dashboard service initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:           Version,
		BuildTime:         BuildTime,
		Logger:            log,
		ServiceName:       serviceName,
		Metrics:           metrics,
		ProviderRegistry:  registry,
		DashboardService:  dashboardService,
		AirQualityService: aqService,
		WeatherService:    weatherService,
		GeolocateService:  geolocateService,
		InsightService:    insightService,
		ReportService:     reportService,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
