package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/banglakobita/kobita-server/internal/auth"
	"github.com/banglakobita/kobita-server/internal/http/response"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const contextKeyClaims contextKey = "claims"

// getClaims returns the verified token claims from request context, or nil
// for anonymous requests.
func getClaims(ctx context.Context) *auth.Claims {
	if claims, ok := ctx.Value(contextKeyClaims).(*auth.Claims); ok {
		return claims
	}
	return nil
}

// isAdmin reports whether the request carries a verified admin token.
func isAdmin(ctx context.Context) bool {
	claims := getClaims(ctx)
	return claims != nil && claims.IsAdmin()
}

// bearerToken extracts the token from an Authorization header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// withClaims attaches verified claims to the request context when a valid
// bearer token is present and otherwise lets the request through
// anonymously. Public content routes use this so admins see drafts while
// everyone else sees only published work.
func (s *Server) withClaims(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := s.authService.VerifyToken(token)
		if err != nil {
			// Stale tokens on public routes read as anonymous.
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyClaims, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAuth validates the bearer token and attaches its claims.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			response.Unauthorized(w, "missing or malformed authorization header", s.logger)
			return
		}

		claims, err := s.authService.VerifyToken(token)
		if err != nil {
			response.Unauthorized(w, "invalid or expired token", s.logger)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyClaims, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin ensures the authenticated user is an admin.
// Must be used after requireAuth.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isAdmin(r.Context()) {
			response.Forbidden(w, "admin access required", s.logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}
