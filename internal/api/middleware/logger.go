package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/wisker-app/wisker/internal/pkg/logger"
)

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

type logFieldsKey struct{}

// AddLogField adds a field to the request log line. The fields live in the
// request context rather than on the writer, so other middleware wrapping the
// ResponseWriter cannot hide them. No-op outside a Logger-wrapped request.
func AddLogField(r *http.Request, key string, value interface{}) {
	if fields, ok := r.Context().Value(logFieldsKey{}).(map[string]interface{}); ok {
		fields[key] = value
	}
}

// Logger returns a middleware that logs one line per HTTP request
func Logger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			extra := make(map[string]interface{})
			r = r.WithContext(context.WithValue(r.Context(), logFieldsKey{}, extra))

			next.ServeHTTP(wrapped, r)

			fields := map[string]interface{}{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     wrapped.statusCode,
				"duration":   time.Since(start).Milliseconds(),
				"bytes":      wrapped.written,
				"ip":         r.RemoteAddr,
				"request_id": GetRequestID(r),
			}
			for k, v := range extra {
				fields[k] = v
			}

			log.WithFields(fields).Info("HTTP request")
		})
	}
}
