package middleware

import (
	"net/http"
	"time"

	"github.com/emiliopalmerini/worklog/internal/logger"
)

type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// RequestLogger logs one line per request and stores a request-scoped
// logger in the context.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLog := log.With(
				logger.String("method", r.Method),
				logger.String("path", r.URL.Path),
			)
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r.WithContext(logger.WithContext(r.Context(), reqLog)))

			fields := []logger.Field{
				logger.Int("status", sw.status),
				logger.Int("bytes", sw.bytes),
				logger.Duration("duration", time.Since(start)),
			}
			if sw.status >= http.StatusInternalServerError {
				reqLog.Error("request failed", fields...)
				return
			}
			reqLog.Debug("request served", fields...)
		})
	}
}
