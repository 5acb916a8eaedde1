package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/GlebRadaev/jobverify/pkg/utils"
)

type ContextKey string

const AccountIDKey ContextKey = "accountID"

type TokenValidator interface {
	ValidateToken(tokenString string) (*Claims, error)
}

// AccountID returns the authenticated account stored by the middleware.
func AccountID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(AccountIDKey).(int)
	return id, ok
}

func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return middleware(validator, false)
}

// WebSocketMiddleware also accepts the token in the access_token query
// parameter, since browsers cannot set headers on a websocket handshake.
func WebSocketMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return middleware(validator, true)
}

func middleware(validator TokenValidator, allowQuery bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok && allowQuery {
				token = r.URL.Query().Get("access_token")
				ok = token != ""
			}
			if !ok {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), AccountIDKey, claims.AccountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(header, "Bearer "), true
}
