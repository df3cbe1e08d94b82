package handlers

import (
	"context"
	"net/http"
	"time"

	"cryptoportfolio/src/utils"
)

const runTimeout = 2 * time.Minute

// RunSnapshots records today's snapshots, or those of ?date=YYYY-MM-DD.
func (h *Handler) RunSnapshots(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), runTimeout)
	defer cancel()

	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(utils.ShortDashDateLayout, raw)
		if err != nil {
			h.HandleErrors(w, utils.BadRequest("date must be formatted as YYYY-MM-DD"))
			return
		}
		date = parsed
	}

	run, err := h.Controller.RunSnapshots(ctx, date)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, run, http.StatusOK)
}
