package handlers

import (
	"net/http"
	"time"
)

func Healthcheck(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		_, _ = w.Write([]byte("Im alive!"))
	} else {
		http.Error(w, "Method not available: "+r.Method, http.StatusMethodNotAllowed)
	}
}

// GetJobs lists the scheduled jobs with their next run.
func (h *Handler) GetJobs(w http.ResponseWriter, r *http.Request) {
	jobs := map[string]string{}
	for name, task := range h.Controller.GetSchedulers() {
		jobs[name] = task.Next().UTC().Format(time.RFC3339)
	}
	h.respond(w, r, jobs, http.StatusOK)
}
