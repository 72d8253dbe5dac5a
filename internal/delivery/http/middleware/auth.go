package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "github.com/kunal2899/event-management-api/internal/delivery/http/helpers"
	"github.com/kunal2899/event-management-api/internal/domain"
)

type contextKey string

const identityKey contextKey = "identity"

// SetIdentity returns a context with the authenticated identity set. Used by auth middleware.
func SetIdentity(ctx context.Context, identity *domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext returns the authenticated identity from the context, if present.
func IdentityFromContext(ctx context.Context) (*domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*domain.Identity)
	return identity, ok
}

// RequireAuth returns a wrapper that validates the Bearer token and sets the
// authenticated identity in the request context. If the token is missing or
// invalid, it responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
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
			identity, err := verifier.Verify(token)
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			r = r.WithContext(SetIdentity(r.Context(), identity))
			next(w, r)
		}
	}
}
