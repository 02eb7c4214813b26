package middleware

import (
	"context"
	"net/http"
	"strings"

	"docroom/internal/auth"
	"docroom/pkg/logger"
)

type contextKey string

const UserIDKey contextKey = "userID"

// UserIDFrom returns the user id TokenAuth stored on the request context, or
// "" when the request was not authenticated.
func UserIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(UserIDKey).(string)
	return id
}

// TokenAuth guards a handler behind a valid access token. The token rides in
// the Authorization header, or in the token query param for clients that
// cannot set custom headers.
func TokenAuth(issuer *auth.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := r.URL.Query().Get("token")
			if tokenString == "" {
				tokenString = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			}
			if tokenString == "" {
				http.Error(w, "Unauthorized: No token provided", http.StatusUnauthorized)
				return
			}

			claims, err := issuer.Verify(tokenString)
			if err != nil {
				logger.Sugar.Warnf("Rejected API token: %v", err)
				http.Error(w, "Unauthorized: Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
