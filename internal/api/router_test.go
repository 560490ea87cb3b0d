package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleansky/cleansky/internal/airquality"
	"github.com/cleansky/cleansky/internal/api"
	"github.com/cleansky/cleansky/internal/api/models"
	"github.com/cleansky/cleansky/internal/dashboard"
	"github.com/cleansky/cleansky/internal/geo"
	"github.com/cleansky/cleansky/internal/geolocate"
	"github.com/cleansky/cleansky/internal/insight"
	"github.com/cleansky/cleansky/internal/locale"
	"github.com/cleansky/cleansky/internal/report"
	"github.com/cleansky/cleansky/internal/weather"
)

type stubAirQuality struct{}

func (stubAirQuality) Name() string { return "stub-aq" }

func (stubAirQuality) FetchSnapshot(_ context.Context, loc geo.Coordinate) (*airquality.Snapshot, error) {
	return &airquality.Snapshot{
		AQI:               130,
		Level:             airquality.ClassifyAQI(130),
		DominantPollutant: "PM2.5",
		LocationLabel:     loc.DisplayLabel(),
		Pollutants: map[airquality.PollutantKey]airquality.Pollutant{
			airquality.KeyPM25: {Name: "PM2.5", Value: 48.2, Unit: "µg/m³", Severity: airquality.SeverityBad},
		},
		History:   []airquality.HistoryPoint{{Time: "00:00", Value: 110}},
		FetchedAt: time.Now(),
	}, nil
}

type stubWeather struct{}

func (stubWeather) Name() string { return "stub-weather" }

func (stubWeather) FetchSnapshot(_ context.Context, _ geo.Coordinate, lang locale.Language) (*weather.Snapshot, error) {
	return &weather.Snapshot{
		TemperatureC: 21,
		Condition:    weather.ClassifyCode(61, lang),
		HumidityPct:  55,
		WindSpeedKmh: 9.7,
		Forecast:     []weather.DayForecast{{Day: "Mon", TempMax: 22, TempMin: 12}},
		FetchedAt:    time.Now(),
	}, nil
}

type stubGeolocator struct{}

func (stubGeolocator) Name() string { return "stub-geo" }

func (stubGeolocator) Locate(_ context.Context, _ string) (geo.Coordinate, error) {
	return geo.Coordinate{Lat: 41.3111, Lon: 69.2797, Name: "Tashkent"}, nil
}

type stubAI struct{}

func (stubAI) Name() string { return "stub-ai" }

func (stubAI) GenerateContent(_ context.Context, _, _ string) (string, error) {
	return "Air quality is poor; avoid strenuous outdoor exercise.", nil
}

func newTestRouter() http.Handler {
	logger := zerolog.New(io.Discard)

	aqService := airquality.NewService(airquality.ServiceConfig{Provider: stubAirQuality{}, Logger: logger})
	weatherService := weather.NewService(weather.ServiceConfig{Provider: stubWeather{}, Logger: logger})
	insightService := insight.NewService(insight.ServiceConfig{Provider: stubAI{}, Logger: logger})

	return api.NewRouter(api.RouterConfig{
		Version:           "test",
		BuildTime:         "2024-01-01T00:00:00Z",
		Logger:            logger,
		AirQualityService: aqService,
		WeatherService:    weatherService,
		InsightService:    insightService,
		DashboardService: dashboard.NewService(dashboard.ServiceConfig{
			AirQuality: aqService,
			Weather:    weatherService,
			Insight:    insightService,
			Logger:     logger,
		}),
		GeolocateService: geolocate.NewService(geolocate.ServiceConfig{Provider: stubGeolocator{}, Logger: logger}),
		ReportService: report.NewService(report.ServiceConfig{
			Repository: report.NewInMemoryRepository(),
			Logger:     logger,
		}),
	})
}

func TestRouter_HealthCheck(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	var health models.Health
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, models.HealthStatusOK, health.Status)
}

func TestRouter_GetDashboard(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard/?lat=41.2995&lon=69.2401&name=Tashkent&lang=en", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var dash models.DashboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dash))

	assert.Equal(t, 130, dash.AirQuality.AQI)
	assert.Equal(t, "Unhealthy for Sensitive Groups", dash.AirQuality.Level)
	assert.Equal(t, "Tashkent", dash.AirQuality.Location.Label)
	assert.Equal(t, "Rain", dash.Weather.Condition)

	// AQI over 100 and a rainy condition yield warning, info, success.
	require.Len(t, dash.Notifications, 3)
	assert.Equal(t, "warning", dash.Notifications[0].Severity)
	assert.Equal(t, "info", dash.Notifications[1].Severity)
	assert.Equal(t, "success", dash.Notifications[2].Severity)
}

func TestRouter_GetDashboard_InvalidCoordinates(t *testing.T) {
	router := newTestRouter()

	for _, target := range []string{
		"/v1/dashboard/?lat=abc&lon=69.2401",
		"/v1/dashboard/?lat=91&lon=69.2401",
		"/v1/dashboard/",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "target %s", target)
		assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	}
}

func TestRouter_GetInsight(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard/insight?lat=41.2995&lon=69.2401", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var insightResp models.InsightResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &insightResp))
	assert.Equal(t, "Air quality is poor; avoid strenuous outdoor exercise.", insightResp.Summary)
}

func TestRouter_GetAirQuality(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/airquality?lat=41.2995&lon=69.2401&lang=ru", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var aq models.AirQuality
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &aq))
	assert.Equal(t, 130, aq.AQI)
	assert.Equal(t, "Вредный для уязвимых", aq.LevelLocalized)
}

func TestRouter_GetWeather(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/weather?lat=41.2995&lon=69.2401&lang=ru", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var w models.Weather
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &w))
	assert.Equal(t, 21, w.TemperatureC)
	assert.Equal(t, "Дождь", w.Condition)
}

func TestRouter_Locate(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/locate", nil)
	req.RemoteAddr = "203.0.113.7:51234"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var loc models.LocateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loc))
	assert.True(t, loc.Resolved)
	assert.Equal(t, "Tashkent", loc.Name)
}

func TestRouter_ListCities(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/cities", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var cities models.CitiesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cities))
	require.Len(t, cities.Cities, 8)
	assert.Equal(t, "Tashkent", cities.Cities[0].Name)
}

func TestRouter_AssistantChat(t *testing.T) {
	router := newTestRouter()

	body, _ := json.Marshal(models.ChatRequest{Message: "Can I go for a run?", Context: "AQI is 130"})
	req := httptest.NewRequest(http.MethodPost, "/v1/assistant/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var chat models.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &chat))
	assert.Equal(t, "Air quality is poor; avoid strenuous outdoor exercise.", chat.Reply)
}

func TestRouter_AssistantChat_EmptyMessage(t *testing.T) {
	router := newTestRouter()

	body, _ := json.Marshal(models.ChatRequest{Message: "  "})
	req := httptest.NewRequest(http.MethodPost, "/v1/assistant/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_Reports(t *testing.T) {
	router := newTestRouter()

	body, _ := json.Marshal(models.CreateReportRequest{
		Text: "heavy smog near the highway",
		Lat:  41.2995,
		Lon:  69.2401,
		Name: "Tashkent",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/reports/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Location"))

	var created models.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "heavy smog near the highway", created.Text)

	// Fetch it back by ID.
	req = httptest.NewRequest(http.MethodGet, "/v1/reports/"+created.ID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// And it shows up in the list.
	req = httptest.NewRequest(http.MethodGet, "/v1/reports/", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var list models.ReportListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Items, 1)
}

func TestRouter_Reports_TextTooLong(t *testing.T) {
	router := newTestRouter()

	body, _ := json.Marshal(models.CreateReportRequest{
		Text: strings.Repeat("x", report.MaxTextLength+1),
		Lat:  41.2995,
		Lon:  69.2401,
		Name: "Tashkent",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/reports/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var problem models.Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, models.ProblemTypeValidation, problem.Type)
	require.Len(t, problem.Errors, 1)
	assert.Equal(t, "text", problem.Errors[0].Field)
	assert.Equal(t, "too_long", problem.Errors[0].Code)
}

func TestRouter_Reports_NotFound(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/reports/missing-id", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/unknown", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
