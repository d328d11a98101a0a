package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/CreativeUnicorns/vaultprefs"
)

// LoggerMiddleware logs one line per request with the matched route and, for
// profile routes, the vault profile it touched.
func LoggerMiddleware(logger vaultprefs.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			args := []interface{}{
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"latency_ms", float64(time.Since(start).Microseconds()) / 1000.0,
			}
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				args = append(args, "route", rctx.RoutePattern())
				if profile := rctx.URLParam("profileID"); profile != "" {
					args = append(args, "profile", profile)
				}
			}
			if id := middleware.GetReqID(r.Context()); id != "" {
				args = append(args, "request_id", id)
			}

			level := logger.Info
			if ww.Status() >= http.StatusInternalServerError {
				level = logger.Error
			}
			level("Served vault preferences request", args...)
		})
	}
}
