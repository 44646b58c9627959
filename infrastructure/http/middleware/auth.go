package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/clubly/clubly/application/port/outbound"
	"github.com/clubly/clubly/domain"
	"github.com/clubly/clubly/infrastructure/http/response"
)

type actorContextKey struct{}

// ActorFromContext returns the ActorContext the auth middleware stored
// for this request.
func ActorFromContext(ctx context.Context) (domain.ActorContext, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(domain.ActorContext)
	return actor, ok
}

type AuthMiddleware struct {
	tokenService outbound.TokenService
}

func NewAuthMiddleware(tokenService outbound.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// RequireAuth validates the bearer token and stores the decoded
// ActorContext on the request context.
func (m *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := m.authenticate(w, r)
		if !ok {
			return
		}

		actor := domain.ActorContext{
			ActorType:        domain.ActorType(claims.Role),
			ActorID:          claims.ActorID,
			AuthenticatedVia: domain.AuthMethod(claims.AuthenticatedVia),
		}
		ctx := context.WithValue(r.Context(), actorContextKey{}, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// RequireAdmin is RequireAuth plus an admin role check. Every
// privileged mutation route runs behind it.
func (m *AuthMiddleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := m.authenticate(w, r)
		if !ok {
			return
		}
		if claims.Role != "admin" {
			response.Forbidden(w, "Admin role required")
			return
		}

		actor := domain.ActorContext{
			ActorType:        domain.ActorTypeAdmin,
			ActorID:          claims.ActorID,
			AuthenticatedVia: domain.AuthMethod(claims.AuthenticatedVia),
		}
		ctx := context.WithValue(r.Context(), actorContextKey{}, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func (m *AuthMiddleware) authenticate(w http.ResponseWriter, r *http.Request) (*outbound.TokenClaims, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		response.Unauthorized(w, "Authorization header required")
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		response.Unauthorized(w, "Invalid authorization header format")
		return nil, false
	}

	claims, err := m.tokenService.ValidateAccessToken(parts[1])
	if err != nil {
		response.Unauthorized(w, "Invalid or expired token")
		return nil, false
	}
	return claims, true
}
