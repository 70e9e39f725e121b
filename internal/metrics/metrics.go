package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hirematrix",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests received",
	}, []string{"method", "path", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "hirematrix",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	// SessionsStartedTotal counts candidates who passed registration.
	SessionsStartedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hirematrix",
		Name:      "sessions_started_total",
		Help:      "Total number of interview sessions started",
	})

	// RoundsGradedTotal counts grading verdicts by outcome.
	RoundsGradedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hirematrix",
		Name:      "rounds_graded_total",
		Help:      "Total number of round submissions graded",
	}, []string{"result"})

	// TerminationsTotal counts kill-switch firings by reason.
	TerminationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hirematrix",
		Name:      "terminations_total",
		Help:      "Total number of candidate terminations",
	}, []string{"reason"})

	// ReportsGeneratedTotal counts final scorecards produced.
	ReportsGeneratedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hirematrix",
		Name:      "reports_generated_total",
		Help:      "Total number of final reports generated",
	})
)

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// the admin live feed upgrades to a websocket, which needs the hijacker
func (r *responseRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := r.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}
	return nil, nil, fmt.Errorf("metrics: underlying ResponseWriter does not support hijacking")
}

// Middleware records request metrics with Prometheus labels.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(rec, r)

			labels := prometheus.Labels{
				"method": r.Method,
				"path":   r.URL.Path,
				"status": strconv.Itoa(rec.status),
			}
			httpRequests.With(labels).Inc()
			httpLatency.With(labels).Observe(time.Since(start).Seconds())
		})
	}
}

// Handler exposes the default Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
