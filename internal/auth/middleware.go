package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/grupo-nexus/planner/internal/api/respond"
)

type contextKey struct{}

// SessionFromContext returns the session attached by Middleware, if any.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(contextKey{}).(*Session)
	return sess, ok
}

// Middleware rejects requests without a valid bearer token and attaches the
// session to the request context.
func Middleware(a Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				respond.WriteError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			sess, err := a.Verify(r.Context(), token)
			if err != nil {
				respond.WriteError(w, http.StatusUnauthorized, "invalid or expired session")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, sess)))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}
