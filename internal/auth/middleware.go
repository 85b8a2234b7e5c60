package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// SessionCookie is the cookie carrying the reviewer session token.
const SessionCookie = "session"

type contextKey struct{}

// Middleware rejects requests without a valid session token. The token is
// read from the session cookie or, failing that, an Authorization bearer
// header. On success the reviewer email is placed in the request context.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromRequest(r)
		if token == "" {
			unauthorized(w, "authentication required")
			return
		}

		email, err := s.Verify(token)
		if err != nil {
			unauthorized(w, "invalid or expired session")
			return
		}

		ctx := context.WithValue(r.Context(), contextKey{}, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ReviewerFromContext returns the authenticated reviewer email, if any.
func ReviewerFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(contextKey{}).(string)
	return email, ok
}

// unauthorized writes a 401 with the same JSON error shape the rest of the
// API uses, so clients parse every error body the same way.
func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprintf(w, "{\"error\":%q}\n", message)
}

func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}
