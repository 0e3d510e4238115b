// Package middleware holds the HTTP middleware: admin auth, request logging
// and CORS.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	h "giftregistry/internal/delivery/http/helpers"
	"giftregistry/internal/domain"
)

// RequireAdmin returns a wrapper that validates the admin Bearer token.
// If the token is missing or invalid, it responds with 401 and does not call
// next. There is a single administrator, so no identity lands in the context.
func RequireAdmin(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			if err := verifier.Verify(token); err != nil {
				logger.Debug("admin token rejected", "path", r.URL.Path, "err", err)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			next(w, r)
		}
	}
}
