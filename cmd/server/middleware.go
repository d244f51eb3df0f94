package main

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/versewright/rhyme"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rhyme_http_requests_total",
		Help: "HTTP requests by route and status code",
	}, []string{"route", "code"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rhyme_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
	}, []string{"route"})

	rimeSyllables = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rhyme_rime_syllables",
		Help:    "Vowel nuclei in detected common rimes (0 = no rime)",
		Buckets: prometheus.LinearBuckets(0, 1, 7),
	})

	rimeMatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rhyme_rime_matches_total",
		Help: "Analysed line groups by match kind",
	}, []string{"kind"})
)

// observeResult records the outcome of one analysis.
func observeResult(res *rhyme.Result) {
	n := 0
	for _, p := range res.RimePhones {
		if p.IsVowel() {
			n++
		}
	}
	rimeSyllables.Observe(float64(n))

	switch {
	case !res.Rhymes():
		rimeMatches.WithLabelValues("none").Inc()
	case res.Fuzzy:
		rimeMatches.WithLabelValues("fuzzy").Inc()
	default:
		rimeMatches.WithLabelValues("exact").Inc()
	}
}

type ctxKey struct{}

// requestID returns the request ID stored by withRequestID, or "".
func requestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// withRequestID tags every request with an ID, taken from the X-Request-ID
// header when present, and echoes it in the response.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// instrument counts and times requests to route and logs each one.
func instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		httpRequests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
		slog.Debug("request",
			"request_id", requestID(r.Context()),
			"method", r.Method,
			"route", route,
			"status", rec.status,
			"duration", elapsed,
		)
	})
}
