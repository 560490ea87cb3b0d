package handler

import (
	"net/http"

	"github.com/cleansky/cleansky/internal/airquality"
	"github.com/cleansky/cleansky/internal/api/response"
)

// AirQualityHandler handles air quality endpoints.
type AirQualityHandler struct {
	airQuality *airquality.Service
}

// NewAirQualityHandler creates a new AirQualityHandler.
func NewAirQualityHandler(svc *airquality.Service) *AirQualityHandler {
	return &AirQualityHandler{airQuality: svc}
}

// GetAirQuality handles GET /v1/airquality - the air quality snapshot only.
func (h *AirQualityHandler) GetAirQuality(w http.ResponseWriter, r *http.Request) {
	loc, fieldErrors := coordinateFromQuery(r)
	if fieldErrors != nil {
		response.BadRequest(w, r, "invalid coordinates", fieldErrors)
		return
	}
	lang := languageFromQuery(r)

	snapshot, err := h.airQuality.GetSnapshot(r.Context(), loc)
	if err != nil {
		response.ServiceUnavailable(w, r, "air quality provider is unavailable")
		return
	}

	response.JSON(w, r, http.StatusOK, toAirQuality(snapshot, loc, lang))
}
