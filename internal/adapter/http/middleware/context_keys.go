package middleware

import (
	"context"

	authuc "github.com/Abdurahmanit/GroupProject/hostlecart/internal/auth/usecase"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/listing/domain"
)

// ContextKey keeps request values from colliding with other packages.
type ContextKey string

const (
	ClaimsCtxKey = ContextKey("claims")
	TokenCtxKey  = ContextKey("token")
)

// ClaimsFromContext returns the verified claims, or nil for an anonymous request.
func ClaimsFromContext(ctx context.Context) *authuc.Claims {
	claims, _ := ctx.Value(ClaimsCtxKey).(*authuc.Claims)
	return claims
}

// TokenFromContext returns the raw bearer token the claims came from.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(TokenCtxKey).(string)
	return token
}

// ActorFromContext is the caller as the listing use cases see it.
func ActorFromContext(ctx context.Context) domain.Actor {
	claims := ClaimsFromContext(ctx)
	if claims == nil {
		return domain.Actor{}
	}
	return domain.Actor{UserID: claims.UserID, Role: claims.Role}
}

func withClaims(ctx context.Context, token string, claims *authuc.Claims) context.Context {
	ctx = context.WithValue(ctx, TokenCtxKey, token)
	return context.WithValue(ctx, ClaimsCtxKey, claims)
}
