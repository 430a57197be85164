package app

import (
	"net/http"

	"github.com/cardcal/cardcal/internal/config"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			log.Debugf("%s %s from %s", req.Method, req.URL.Path, req.RemoteAddr)
			next.ServeHTTP(w, req)
		})
	})
}
