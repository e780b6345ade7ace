package middleware

import (
	"net/http"
	"strings"

	"marketplace_web/internal/lib/requestid"
)

// RequestID makes sure every request carries an id: the inbound
// X-Request-Id when present, a fresh uuid otherwise. The id is echoed in the
// response and forwarded to the marketplace backend.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := strings.TrimSpace(r.Header.Get(requestid.Header))
		if rid == "" {
			rid = requestid.New()
		}

		w.Header().Set(requestid.Header, rid)
		next.ServeHTTP(w, r.WithContext(requestid.WithContext(r.Context(), rid)))
	})
}
