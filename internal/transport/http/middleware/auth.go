package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-reservation-api/internal/domain"
	jwtinfra "github.com/go-reservation-api/internal/infrastructure/jwt"
	"github.com/go-reservation-api/internal/pkg/token"
)

type contextKey string

const (
	claimsKey  contextKey = "claims"
	sessionKey contextKey = "session"
)

// AuthCookieName carries the bearer token for browser clients.
const AuthCookieName = "authToken"

type SessionReader interface {
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
}

type TokenVerifier interface {
	Verify(token string) (*jwtinfra.Claims, error)
}

// RequireSession authenticates a request only when both carriers agree: the
// session cookie is well formed and resolves to a live session, a bearer token verifies, and the
// token subject is the session's customer. Claims and session are injected
// into the request context.
func RequireSession(sessions SessionReader, tokens TokenVerifier, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(cookieName)
			if err != nil || !token.ValidSessionID(c.Value) {
				unauthorized(w, "unauthorized")
				return
			}
			sess, err := sessions.Get(r.Context(), c.Value)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					unauthorized(w, "unauthorized")
					return
				}
				slog.Error("session lookup failed", "err", err)
				writeJSONError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			raw := BearerToken(r)
			if raw == "" {
				unauthorized(w, "unauthorized")
				return
			}
			claims, err := tokens.Verify(raw)
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}
			if claims.Subject != sess.CustomerID {
				slog.Warn("session and token disagree", "session_customer", sess.CustomerID, "token_subject", claims.Subject)
				unauthorized(w, "unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			ctx = context.WithValue(ctx, sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken returns the token from the Authorization header, falling back
// to the auth cookie.
func BearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie(AuthCookieName); err == nil {
		return c.Value
	}
	return ""
}

// ClaimsFromContext extracts JWT claims from the request context.
func ClaimsFromContext(ctx context.Context) (*jwtinfra.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*jwtinfra.Claims)
	return c, ok
}

func SessionFromContext(ctx context.Context) (*domain.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*domain.Session)
	return s, ok
}

// WithSession returns ctx carrying the given session and claims, as
// RequireSession would.
func WithSession(ctx context.Context, sess *domain.Session, claims *jwtinfra.Claims) context.Context {
	ctx = context.WithValue(ctx, claimsKey, claims)
	return context.WithValue(ctx, sessionKey, sess)
}
