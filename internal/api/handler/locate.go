package handler

import (
	"net"
	"net/http"

	"github.com/cleansky/cleansky/internal/api/models"
	"github.com/cleansky/cleansky/internal/api/response"
	"github.com/cleansky/cleansky/internal/geolocate"
)

// LocateHandler handles caller geolocation.
type LocateHandler struct {
	geolocate *geolocate.Service
}

// NewLocateHandler creates a new LocateHandler.
func NewLocateHandler(svc *geolocate.Service) *LocateHandler {
	return &LocateHandler{geolocate: svc}
}

// Locate handles GET /v1/locate - best-effort caller geolocation. Always
// returns 200; failure to resolve falls back to the default location.
func (h *LocateHandler) Locate(w http.ResponseWriter, r *http.Request) {
	loc, resolved := h.geolocate.Locate(r.Context(), clientIP(r))

	response.JSON(w, r, http.StatusOK, models.LocateResponse{
		Lat:      loc.Lat,
		Lon:      loc.Lon,
		Name:     loc.Name,
		Resolved: resolved,
	})
}

// clientIP returns the caller's IP. RemoteAddr has already been rewritten
// by chi's RealIP middleware when X-Forwarded-For is present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
