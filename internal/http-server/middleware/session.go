package middleware

import (
	"net/http"

	"marketplace_web/internal/storage/marketplace"
)

// Session hands the browser's backend session token to outbound calls.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(marketplace.SessionCookie); err == nil && c.Value != "" {
			r = r.WithContext(marketplace.WithSession(r.Context(), c.Value))
		}
		next.ServeHTTP(w, r)
	})
}
