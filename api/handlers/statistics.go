package handlers

import (
	"net/http"

	"github.com/landauthority/dispute-api/disputes"
)

// Statistics exposes the dashboard counts
type Statistics struct {
	Svc DisputeService
}

// StatisticsHandler summarizes the cases the caller can see
func (s Statistics) StatisticsHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOrUnauthorized(w, r)
	if !ok {
		return
	}
	from, to, err := parseDateRange(r)
	if err != nil {
		badRequest("invalid date range", w, err)
		return
	}
	stats, err := s.Svc.Statistics(r.Context(), actor, disputes.StatsQuery{From: from, To: to})
	if err != nil {
		serviceError("failed to compute statistics", w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
