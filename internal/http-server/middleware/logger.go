package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"marketplace_web/internal/lib/metrics"
	"marketplace_web/internal/lib/requestid"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// unmatchedRoute labels requests no route claimed.
const unmatchedRoute = "unmatched"

// Logger writes one access log line per request and records its duration
// under the matched route pattern.
func Logger(log *slog.Logger) func(http.Handler) http.Handler {
	log = log.With(slog.String("component", "middleware/logger"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				elapsed := time.Since(start)

				route := unmatchedRoute
				if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
					route = rctx.RoutePattern()
				}
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}

				metrics.RecordHTTPRequest(r.Method, route, strconv.Itoa(status), elapsed)
				log.Info("request completed",
					slog.String("request_id", requestid.FromContext(r.Context())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Int("status", status),
					slog.Int("bytes", ww.BytesWritten()),
					slog.String("duration", elapsed.String()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
