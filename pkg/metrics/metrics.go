// Package metrics exposes Prometheus metrics for the calendar feed.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cardcal"

type Recorder struct {
	gatherer prometheus.Gatherer

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	eventsRendered      prometheus.Counter
	storeFailures       prometheus.Counter
}

// NewRecorder registers all metrics on a fresh registry.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	return NewRecorderWith(registry, registry)
}

func NewRecorderWith(registerer prometheus.Registerer, gatherer prometheus.Gatherer) *Recorder {
	auto := promauto.With(registerer)
	return &Recorder{
		gatherer: gatherer,
		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		httpRequestDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		eventsRendered: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_rendered_total",
			Help:      "Calendar events written to feed responses.",
		}),
		storeFailures: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_failures_total",
			Help:      "Failed attempts to read cards from the database.",
		}),
	}
}

func (r *Recorder) RecordStoreFailure() {
	r.storeFailures.Inc()
}

func (r *Recorder) RecordEventsRendered(count int) {
	r.eventsRendered.Add(float64(count))
}

func (r *Recorder) RecordHTTPRequest(route, method string, statusCode int, duration time.Duration) {
	r.httpRequests.WithLabelValues(route, method, strconv.Itoa(statusCode)).Inc()
	r.httpRequestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// Handler serves the recorder's registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}

// Middleware records a request count and latency for every request passing through next.
func (r *Recorder) Middleware(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, req)

		r.RecordHTTPRequest(route, req.Method, wrapped.statusCode, time.Since(start))
	})
}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
