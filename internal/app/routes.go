package app

import (
	"net/http"

	"github.com/cardcal/cardcal/internal/config"
	"github.com/gorilla/mux"
)

const CalendarPath = "/calender/calendar.ics"

// RegisterRoutes registers all endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Calendar feed
	calendar := deps.BasicAuth.Middleware(http.HandlerFunc(deps.FeedHandler.GetCalendar))
	r.Handle(CalendarPath, deps.Metrics.Middleware("calendar", calendar)).Methods(http.MethodGet, http.MethodHead)

	// Operations
	r.HandleFunc("/health", health).Methods("GET")
	if cfg.Metrics.Enabled {
		r.Handle("/metrics", deps.Metrics.Handler()).Methods("GET")
	}
}

func health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
