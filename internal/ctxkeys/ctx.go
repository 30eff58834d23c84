package ctxkeys

import (
	"context"

	"github.com/macromind/backend/internal/token"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	ClaimsKey      contextKey = "claims"
	BearerTokenKey contextKey = "bearer_token"
)

func Claims(ctx context.Context) *token.Claims {
	claims, _ := ctx.Value(ClaimsKey).(*token.Claims)
	return claims
}

func WithClaims(ctx context.Context, claims *token.Claims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}

// UserID returns the authenticated user's id, or "" outside RequireAuth.
func UserID(ctx context.Context) string {
	if claims := Claims(ctx); claims != nil {
		return claims.UserID()
	}
	return ""
}

// BearerToken is the raw access token, forwarded to the auth service.
func BearerToken(ctx context.Context) string {
	tok, _ := ctx.Value(BearerTokenKey).(string)
	return tok
}

func WithBearerToken(ctx context.Context, tok string) context.Context {
	return context.WithValue(ctx, BearerTokenKey, tok)
}
