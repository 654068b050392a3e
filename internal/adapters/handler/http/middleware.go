package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/hostelmess/polls/internal/core/domain"
	"github.com/hostelmess/polls/internal/core/ports"
)

type contextKey string

const principalKey contextKey = "principal"

// WithPrincipal resolves the bearer credential (Authorization header,
// falling back to the portal's access_token cookie) into a principal on
// the request context. Anonymous requests pass through so polls remain
// viewable without logging in; invalid credentials are rejected.
func WithPrincipal(provider ports.IdentityProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := provider.CurrentUser(r.Context(), bearerToken(r))
			if err != nil {
				http.Error(w, "invalid credentials", http.StatusUnauthorized)
				return
			}
			if principal != nil {
				r = r.WithContext(context.WithValue(r.Context(), principalKey, *principal))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := r.Cookie("access_token"); err == nil {
		return cookie.Value
	}
	return ""
}

func principalFrom(r *http.Request) (domain.Principal, bool) {
	principal, ok := r.Context().Value(principalKey).(domain.Principal)
	return principal, ok
}
