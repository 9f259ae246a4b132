package handlers

import (
	"net/http"
	"time"

	"github.com/hayder75/clinic-core/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// DoctorPerformance aggregates visits handled per doctor
func (h *ReportHandler) DoctorPerformance(w http.ResponseWriter, r *http.Request) {
	from, to, ok := reportRange(w, r)
	if !ok {
		return
	}

	rows, err := h.reportService.DoctorPerformance(r.Context(), from, to)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

// Revenue aggregates settled billing amounts per payment method
func (h *ReportHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	from, to, ok := reportRange(w, r)
	if !ok {
		return
	}

	rows, err := h.reportService.Revenue(r.Context(), from, to)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

// reportRange parses from/to query dates, defaulting to the last 30 days
func reportRange(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now

	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "from must be YYYY-MM-DD"})
			return from, to, false
		}
		from = parsed
	}
	if v := r.URL.Query().Get("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "to must be YYYY-MM-DD"})
			return from, to, false
		}
		to = parsed.AddDate(0, 0, 1)
	}
	return from, to, true
}
