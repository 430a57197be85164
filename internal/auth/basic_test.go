package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cardcal/cardcal/internal/config"
	"github.com/stretchr/testify/assert"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func serve(auth *BasicAuth, setCredentials func(r *http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/calender/calendar.ics", nil)
	if setCredentials != nil {
		setCredentials(req)
	}
	w := httptest.NewRecorder()
	auth.Middleware(okHandler).ServeHTTP(w, req)
	return w
}

func TestBasicAuth_Middleware(t *testing.T) {
	auth := NewBasicAuth(config.Auth{Username: "alice", Password: "s3cret", Realm: "cardcal"})

	tests := []struct {
		name           string
		setCredentials func(r *http.Request)
		wantStatus     int
	}{
		{
			name:       "no credentials",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:           "unknown user",
			setCredentials: func(r *http.Request) { r.SetBasicAuth("bob", "s3cret") },
			wantStatus:     http.StatusUnauthorized,
		},
		{
			name:           "wrong password",
			setCredentials: func(r *http.Request) { r.SetBasicAuth("alice", "wrong") },
			wantStatus:     http.StatusUnauthorized,
		},
		{
			name:           "password prefix",
			setCredentials: func(r *http.Request) { r.SetBasicAuth("alice", "s3cre") },
			wantStatus:     http.StatusUnauthorized,
		},
		{
			name:           "not a basic scheme",
			setCredentials: func(r *http.Request) { r.Header.Set("Authorization", "Bearer token") },
			wantStatus:     http.StatusUnauthorized,
		},
		{
			name:           "exact pair",
			setCredentials: func(r *http.Request) { r.SetBasicAuth("alice", "s3cret") },
			wantStatus:     http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(auth, tt.setCredentials)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, `Basic realm="cardcal", charset="UTF-8"`, w.Header().Get("WWW-Authenticate"))
			} else {
				assert.Empty(t, w.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestBasicAuth_UnconfiguredMatchesNothing(t *testing.T) {
	auth := NewBasicAuth(config.Auth{Realm: "cardcal"})

	assert.False(t, auth.Verify("", ""))
	w := serve(auth, func(r *http.Request) { r.SetBasicAuth("", "") })
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBasicAuth_MissingPasswordMatchesNothing(t *testing.T) {
	auth := NewBasicAuth(config.Auth{Username: "alice", Realm: "cardcal"})

	assert.False(t, auth.Verify("alice", ""))
}
