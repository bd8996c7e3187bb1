package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/api-sage/deposit-ledger/internal/logger"
	"github.com/api-sage/deposit-ledger/internal/security/auth"
)

type contextKey string

const clientIDKey contextKey = "clientID"

// BearerAuth validates portal session tokens and stashes the resolved
// client id on the request context. Core operations downstream only ever
// see that id, never the credentials.
func BearerAuth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				logger.Info("bearer auth middleware rejected token", logger.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				})
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), clientIDKey, claims.ClientID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClientIDFromContext returns the client id resolved by BearerAuth.
func ClientIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(clientIDKey).(int64)
	return id, ok
}
