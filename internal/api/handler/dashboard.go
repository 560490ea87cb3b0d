package handler

import (
	"net/http"

	"github.com/cleansky/cleansky/internal/airquality"
	"github.com/cleansky/cleansky/internal/api/models"
	"github.com/cleansky/cleansky/internal/api/response"
	"github.com/cleansky/cleansky/internal/dashboard"
	"github.com/cleansky/cleansky/internal/geo"
	"github.com/cleansky/cleansky/internal/locale"
	"github.com/cleansky/cleansky/internal/notification"
	"github.com/cleansky/cleansky/internal/weather"
)

// DashboardHandler handles dashboard endpoints.
type DashboardHandler struct {
	dashboard *dashboard.Service
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(svc *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboard: svc}
}

// GetDashboard handles GET /v1/dashboard - the full dashboard load.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	loc, fieldErrors := coordinateFromQuery(r)
	if fieldErrors != nil {
		response.BadRequest(w, r, "invalid coordinates", fieldErrors)
		return
	}
	lang := languageFromQuery(r)

	dash, _, err := h.dashboard.Load(r.Context(), loc, lang)
	if err != nil {
		response.ServiceUnavailable(w, r, "upstream data providers are unavailable")
		return
	}

	response.JSON(w, r, http.StatusOK, toDashboardResponse(dash, loc, lang))
}

// GetInsight handles GET /v1/dashboard/insight - the AI health summary.
// Clients fetch it separately after the main load, so a slow AI provider
// never delays the dashboard itself.
func (h *DashboardHandler) GetInsight(w http.ResponseWriter, r *http.Request) {
	loc, fieldErrors := coordinateFromQuery(r)
	if fieldErrors != nil {
		response.BadRequest(w, r, "invalid coordinates", fieldErrors)
		return
	}
	lang := languageFromQuery(r)

	summary, err := h.dashboard.Summary(r.Context(), loc, lang)
	if err != nil {
		response.ServiceUnavailable(w, r, "upstream data providers are unavailable")
		return
	}

	response.JSON(w, r, http.StatusOK, models.InsightResponse{Summary: summary})
}

func toDashboardResponse(dash *dashboard.Dashboard, loc geo.Coordinate, lang locale.Language) models.DashboardResponse {
	return models.DashboardResponse{
		AirQuality:    toAirQuality(dash.AirQuality, loc, lang),
		Weather:       toWeather(dash.Weather),
		Notifications: toNotifications(dash.Notifications),
		LoadedAt:      models.Timestamp(dash.LoadedAt),
	}
}

func toAirQuality(s *airquality.Snapshot, loc geo.Coordinate, lang locale.Language) models.AirQuality {
	pollutants := make(map[string]models.PollutantReading, len(s.Pollutants))
	for key, p := range s.Pollutants {
		pollutants[string(key)] = models.PollutantReading{
			Name:     p.Name,
			Value:    p.Value,
			Unit:     p.Unit,
			Severity: string(p.Severity),
		}
	}

	history := make([]models.HistoryPoint, 0, len(s.History))
	for _, pt := range s.History {
		history = append(history, models.HistoryPoint{Time: pt.Time, Value: pt.Value})
	}

	return models.AirQuality{
		AQI:               s.AQI,
		Level:             string(s.Level),
		LevelLocalized:    s.Level.Localized(lang),
		DominantPollutant: s.DominantPollutant,
		Location: models.Location{
			Lat:   loc.Lat,
			Lon:   loc.Lon,
			Label: s.LocationLabel,
		},
		Pollutants: pollutants,
		History:    history,
		FetchedAt:  models.Timestamp(s.FetchedAt),
	}
}

func toWeather(s *weather.Snapshot) models.Weather {
	forecast := make([]models.DayForecast, 0, len(s.Forecast))
	for _, d := range s.Forecast {
		forecast = append(forecast, models.DayForecast{
			Day:     d.Day,
			TempMax: d.TempMax,
			TempMin: d.TempMin,
		})
	}

	return models.Weather{
		TemperatureC: s.TemperatureC,
		Condition:    s.Condition,
		HumidityPct:  s.HumidityPct,
		WindSpeedKmh: s.WindSpeedKmh,
		Forecast:     forecast,
		FetchedAt:    models.Timestamp(s.FetchedAt),
	}
}

func toNotifications(ns []notification.Notification) []models.Notification {
	out := make([]models.Notification, 0, len(ns))
	for _, n := range ns {
		out = append(out, models.Notification{
			ID:           n.ID,
			Title:        n.Title,
			Message:      n.Message,
			Severity:     string(n.Severity),
			RelativeTime: n.RelativeTime,
		})
	}
	return out
}
