package auth

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/cardcal/cardcal/internal/config"
	log "github.com/sirupsen/logrus"
)

// BasicAuth guards handlers with a single static username/password pair.
type BasicAuth struct {
	username string
	password string
	realm    string
}

func NewBasicAuth(cfg config.Auth) *BasicAuth {
	if cfg.Username == "" || cfg.Password == "" {
		log.Warn("basic auth credentials are not configured, every request will be rejected")
	}
	return &BasicAuth{username: cfg.Username, password: cfg.Password, realm: cfg.Realm}
}

// Verify reports whether the given pair matches the configured one.
// An unconfigured pair matches nothing.
func (a *BasicAuth) Verify(username, password string) bool {
	if a.username == "" || a.password == "" {
		return false
	}
	userOk := secureCompare(username, a.username)
	passOk := secureCompare(password, a.password)
	return userOk && passOk
}

func (a *BasicAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok || !a.Verify(username, password) {
			log.Debugf("rejected request to %s from %s", r.URL.Path, r.RemoteAddr)
			w.Header().Set("WWW-Authenticate", fmt.Sprintf(`Basic realm="%s", charset="UTF-8"`, a.realm))
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
