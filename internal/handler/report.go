package handler

import (
	"net/http"
	"regexp"

	"github.com/dukerupert/hearth/internal/report"
)

var periodParam = regexp.MustCompile(`^\d{4}-\d{2}$`)

type ReportHandler struct {
	reporter *report.Reporter
}

func NewReportHandler(r *report.Reporter) *ReportHandler {
	return &ReportHandler{reporter: r}
}

func (h *ReportHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	period := r.PathValue("period")
	if !periodParam.MatchString(period) {
		writeError(w, http.StatusBadRequest, "period must be YYYY-MM")
		return
	}

	summary, err := h.reporter.MonthlySummary(actor.HouseholdID, period)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
