package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cleansky/cleansky/internal/api/models"
	"github.com/cleansky/cleansky/internal/api/response"
	"github.com/cleansky/cleansky/internal/geo"
	"github.com/cleansky/cleansky/internal/report"
)

// ReportHandler handles crowdsourced report endpoints.
type ReportHandler struct {
	reports *report.Service
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(svc *report.Service) *ReportHandler {
	return &ReportHandler{reports: svc}
}

// CreateReport handles POST /v1/reports.
func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req models.CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	rep, err := h.reports.Create(r.Context(), report.CreateInput{
		Text:     req.Text,
		Location: geo.Coordinate{Lat: req.Lat, Lon: req.Lon, Name: req.Name},
		Language: languageFromQuery(r),
	})
	if err != nil {
		switch {
		case errors.Is(err, report.ErrEmptyText):
			response.BadRequest(w, r, "report text must not be empty", []models.FieldError{
				{Field: "text", Message: "required", Code: "required"},
			})
		case errors.Is(err, report.ErrTextTooLong):
			response.BadRequest(w, r, "report text too long", []models.FieldError{
				{Field: "text", Message: fmt.Sprintf("must be at most %d characters", report.MaxTextLength), Code: "too_long"},
			})
		case errors.Is(err, geo.ErrInvalidCoordinate):
			response.BadRequest(w, r, "invalid coordinates", []models.FieldError{
				{Field: "lat,lon", Message: "coordinate out of range", Code: "out_of_range"},
			})
		default:
			response.InternalError(w, r, "failed to store report")
		}
		return
	}

	response.Created(w, r, "/v1/reports/"+rep.ID, toReport(rep))
}

// GetReport handles GET /v1/reports/{reportId}.
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reportId")

	rep, err := h.reports.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, report.ErrReportNotFound) {
			response.NotFound(w, r, "report not found")
			return
		}
		response.InternalError(w, r, "failed to load report")
		return
	}

	response.JSON(w, r, http.StatusOK, toReport(rep))
}

// ListReports handles GET /v1/reports.
func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.reports.List(r.Context(), report.ListOptions{
		Limit:  limit,
		Cursor: r.URL.Query().Get("cursor"),
	})
	if err != nil {
		response.InternalError(w, r, "failed to list reports")
		return
	}

	items := make([]models.Report, 0, len(result.Items))
	for _, rep := range result.Items {
		items = append(items, toReport(rep))
	}

	response.JSON(w, r, http.StatusOK, models.ReportListResponse{
		Items:      items,
		NextCursor: result.NextCursor,
	})
}

func toReport(rep *report.Report) models.Report {
	return models.Report{
		ID:   rep.ID,
		Text: rep.Text,
		Location: models.Location{
			Lat:   rep.Lat,
			Lon:   rep.Lon,
			Label: rep.LocationName,
		},
		Classification: rep.Classification,
		CreatedAt:      models.Timestamp(rep.CreatedAt),
	}
}
