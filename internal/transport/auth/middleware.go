package auth

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"debtster-insights/internal/domain"
	"debtster-insights/internal/repository"
)

type ctxKey string

const UserIDKey ctxKey = "userID"

// SanctumMiddleware validates Laravel Sanctum bearer tokens against the shared
// personal_access_tokens table. The token query parameter is accepted as a
// fallback for websocket connections.
func SanctumMiddleware(tokenRepo *repository.PersonalAccessTokenRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var pat *domain.PersonalAccessToken

			authHeader := r.Header.Get("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				plainToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
				if plainToken != "" {
					p, err := tokenRepo.FindTokenByPlainToken(r.Context(), plainToken)
					if err == nil {
						pat = p
					}
				}
			}

			if pat == nil {
				if token := r.URL.Query().Get("token"); token != "" {
					p, err := tokenRepo.FindTokenByPlainToken(r.Context(), token)
					if err == nil {
						pat = p
					}
				}
			}

			if pat == nil {
				log.Printf("[AUTH] %s %s: no valid token", r.Method, r.URL.Path)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if pat.ExpiresAt != nil && pat.ExpiresAt.Before(time.Now()) {
				http.Error(w, "Token expired", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, pat.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUserID(ctx context.Context) (int64, error) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	if !ok {
		return 0, errors.New("userID not found in context")
	}
	return userID, nil
}
