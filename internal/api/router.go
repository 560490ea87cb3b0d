// Package api provides the HTTP API for CleanSky.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/cleansky/cleansky/internal/airquality"
	"github.com/cleansky/cleansky/internal/api/handler"
	"github.com/cleansky/cleansky/internal/api/middleware"
	"github.com/cleansky/cleansky/internal/dashboard"
	"github.com/cleansky/cleansky/internal/geolocate"
	"github.com/cleansky/cleansky/internal/insight"
	"github.com/cleansky/cleansky/internal/provider/resilience"
	"github.com/cleansky/cleansky/internal/report"
	"github.com/cleansky/cleansky/internal/weather"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version           string
	BuildTime         string
	Logger            zerolog.Logger
	ServiceName       string
	Metrics           *middleware.Metrics
	ProviderRegistry  *resilience.Registry
	DashboardService  *dashboard.Service
	AirQualityService *airquality.Service
	WeatherService    *weather.Service
	GeolocateService  *geolocate.Service
	InsightService    *insight.Service
	ReportService     *report.Service
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "cleansky-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.ProviderRegistry)
	dashboardHandler := handler.NewDashboardHandler(cfg.DashboardService)
	airQualityHandler := handler.NewAirQualityHandler(cfg.AirQualityService)
	weatherHandler := handler.NewWeatherHandler(cfg.WeatherService)
	locateHandler := handler.NewLocateHandler(cfg.GeolocateService)
	citiesHandler := handler.NewCitiesHandler()
	assistantHandler := handler.NewAssistantHandler(cfg.InsightService)
	reportHandler := handler.NewReportHandler(cfg.ReportService)

	// Rate limit middleware per endpoint category
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		// Dashboard endpoints - fan out to upstream providers
		r.Route("/dashboard", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", dashboardHandler.GetDashboard)
			// The AI summary also loads the dashboard data, so it gets
			// the stricter limit.
			r.With(expensiveRateLimit).Get("/insight", dashboardHandler.GetInsight)
		})

		// Individual snapshot endpoints
		r.With(standardRateLimit).Get("/airquality", airQualityHandler.GetAirQuality)
		r.With(standardRateLimit).Get("/weather", weatherHandler.GetWeather)

		// Caller geolocation and static metadata
		r.With(standardRateLimit).Get("/locate", locateHandler.Locate)
		r.With(standardRateLimit).Get("/cities", citiesHandler.ListCities)

		// Assistant chat - AI call per request, strict rate limiting
		r.With(expensiveRateLimit).Post("/assistant/chat", assistantHandler.Chat)

		// Crowdsource reports
		r.Route("/reports", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", reportHandler.ListReports)
			r.Post("/", reportHandler.CreateReport)
			r.Get("/{reportId}", reportHandler.GetReport)
		})
	})

	return r
}
