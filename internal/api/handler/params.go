// Package handler provides HTTP handlers for the CleanSky API.
package handler

import (
	"net/http"
	"strconv"

	"github.com/cleansky/cleansky/internal/api/models"
	"github.com/cleansky/cleansky/internal/geo"
	"github.com/cleansky/cleansky/internal/locale"
)

// coordinateFromQuery reads lat, lon and the optional name from the query
// string. Field errors are returned instead of an error value so handlers
// can hand them straight to the problem response.
func coordinateFromQuery(r *http.Request) (geo.Coordinate, []models.FieldError) {
	var fieldErrors []models.FieldError

	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		fieldErrors = append(fieldErrors, models.FieldError{
			Field:   "lat",
			Message: "must be a number between -90 and 90",
			Code:    "invalid",
		})
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		fieldErrors = append(fieldErrors, models.FieldError{
			Field:   "lon",
			Message: "must be a number between -180 and 180",
			Code:    "invalid",
		})
	}
	if fieldErrors != nil {
		return geo.Coordinate{}, fieldErrors
	}

	loc := geo.Coordinate{Lat: lat, Lon: lon, Name: r.URL.Query().Get("name")}
	if err := loc.Validate(); err != nil {
		return geo.Coordinate{}, []models.FieldError{{
			Field:   "lat,lon",
			Message: "coordinate out of range",
			Code:    "out_of_range",
		}}
	}

	return loc, nil
}

// languageFromQuery reads the lang query parameter, defaulting to English.
func languageFromQuery(r *http.Request) locale.Language {
	return locale.Parse(r.URL.Query().Get("lang"))
}
