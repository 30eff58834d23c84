package middleware

import (
	"net/http"
	"strings"

	"github.com/macromind/backend/internal/ctxkeys"
	"github.com/macromind/backend/internal/respond"
	"github.com/macromind/backend/internal/token"
)

// RequireAuth accepts only access tokens sent as "Authorization: Bearer <token>"
// and adds the claims and raw token to the request context.
func RequireAuth(tokens *token.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				unauthorized(w, "Not authenticated")
				return
			}

			claims, err := tokens.Verify(raw, token.TypeAccess)
			if err != nil {
				unauthorized(w, "Could not validate credentials")
				return
			}

			ctx := ctxkeys.WithClaims(r.Context(), claims)
			ctx = ctxkeys.WithBearerToken(ctx, raw)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, raw, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	respond.Error(w, http.StatusUnauthorized, respond.CodeUnauthorized, message, nil)
}
