package handler

import (
	"net/http"

	"github.com/cleansky/cleansky/internal/api/models"
	"github.com/cleansky/cleansky/internal/api/response"
	"github.com/cleansky/cleansky/internal/geo"
)

// CitiesHandler serves the predefined city list.
type CitiesHandler struct{}

// NewCitiesHandler creates a new CitiesHandler.
func NewCitiesHandler() *CitiesHandler {
	return &CitiesHandler{}
}

// ListCities handles GET /v1/cities.
func (h *CitiesHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	cities := make([]models.City, 0, len(geo.Cities))
	for _, c := range geo.Cities {
		cities = append(cities, models.City{Name: c.Name, Lat: c.Lat, Lon: c.Lon})
	}

	response.JSON(w, r, http.StatusOK, models.CitiesResponse{Cities: cities})
}
