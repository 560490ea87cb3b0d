package handler

import (
	"net/http"

	"github.com/cleansky/cleansky/internal/api/response"
	"github.com/cleansky/cleansky/internal/weather"
)

// WeatherHandler handles weather endpoints.
type WeatherHandler struct {
	weather *weather.Service
}

// NewWeatherHandler creates a new WeatherHandler.
func NewWeatherHandler(svc *weather.Service) *WeatherHandler {
	return &WeatherHandler{weather: svc}
}

// GetWeather handles GET /v1/weather - the weather snapshot only.
func (h *WeatherHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	loc, fieldErrors := coordinateFromQuery(r)
	if fieldErrors != nil {
		response.BadRequest(w, r, "invalid coordinates", fieldErrors)
		return
	}
	lang := languageFromQuery(r)

	snapshot, err := h.weather.GetSnapshot(r.Context(), loc, lang)
	if err != nil {
		response.ServiceUnavailable(w, r, "weather provider is unavailable")
		return
	}

	response.JSON(w, r, http.StatusOK, toWeather(snapshot))
}
