package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/payme/internal/domain"
	"github.com/dukerupert/payme/internal/handler"
)

type contextKey string

const bearerPrefix = "Bearer "

// RequireAPIKey authenticates requests with a static bearer secret shared
// with the Discord bot. A missing secret is a server misconfiguration, not a
// client error.
func RequireAPIKey(apiSecret string, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiSecret == "" {
				logger.Error("API secret not configured")
				handler.ErrorResponse(w, r, domain.Errorf(domain.EINTERNAL, "auth", "Server misconfigured"))
				return
			}

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				handler.ErrorResponse(w, r, domain.Unauthorized("auth", "Missing authorization"))
				return
			}

			token := strings.TrimPrefix(authHeader, bearerPrefix)
			if subtle.ConstantTimeCompare([]byte(token), []byte(apiSecret)) != 1 {
				handler.ErrorResponse(w, r, domain.Unauthorized("auth", "Invalid authorization"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
