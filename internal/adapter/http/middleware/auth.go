package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/adapter/http/response"
	authdomain "github.com/Abdurahmanit/GroupProject/hostlecart/internal/auth/domain"
	authuc "github.com/Abdurahmanit/GroupProject/hostlecart/internal/auth/usecase"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/platform/logger"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*authuc.Claims, error)
}

// JWTAuth rejects requests without a valid, unrevoked bearer token.
func JWTAuth(auth Authenticator, log *logger.Logger) func(http.Handler) http.Handler {
	return jwtAuth(auth, log, true)
}

// OptionalJWTAuth attaches claims when a valid token is present. Requests without a
// token, or with an invalid or expired one, continue as anonymous.
func OptionalJWTAuth(auth Authenticator, log *logger.Logger) func(http.Handler) http.Handler {
	return jwtAuth(auth, log, false)
}

func jwtAuth(auth Authenticator, log *logger.Logger, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				if required {
					response.Error(w, http.StatusUnauthorized, "Authorization token is required")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, authdomain.ErrNotAuthenticated) {
					if !required {
						log.Debug("Ignoring invalid token on public route", zap.Error(err))
						next.ServeHTTP(w, r)
						return
					}
					response.Error(w, http.StatusUnauthorized, "Invalid or expired token")
					return
				}
				log.Error("Failed to authenticate request", zap.Error(err))
				response.Error(w, http.StatusInternalServerError, "Server error")
				return
			}
			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), token, claims)))
		})
	}
}

// RequireRole must run after JWTAuth.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				response.Error(w, http.StatusUnauthorized, "Authorization token is required")
				return
			}
			if claims.Role != role {
				response.Error(w, http.StatusForbidden, "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
