package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"bizsuite/internal/platform/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Logger emits one structured access-log line per request and feeds the
// request metrics.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		duration := time.Since(start)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"durationMs", duration.Milliseconds(),
			"requestId", GetRequestID(r.Context()),
		)
		metrics.ObserveHTTPRequest(r.Method, r.URL.Path, strconv.Itoa(recorder.status), duration)
	})
}
