package middleware

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type statusCapturingResponseWriter struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (w *statusCapturingResponseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusCapturingResponseWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(p)
	w.bytes += int64(n)
	return n, err
}

func (w *statusCapturingResponseWriter) statusCode() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// AccessLog writes one structured line per request. 5xx responses are logged
// at error level.
func AccessLog(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusCapturingResponseWriter{ResponseWriter: w}

			next.ServeHTTP(sw, r)

			entry := log.WithFields(logrus.Fields{
				"request_id":  GetRequestIDFromContext(r.Context()),
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      sw.statusCode(),
				"bytes":       sw.bytes,
				"duration_ms": time.Since(start).Milliseconds(),
			})
			if sw.statusCode() >= http.StatusInternalServerError {
				entry.Error("http request")
				return
			}
			entry.Info("http request")
		})
	}
}
