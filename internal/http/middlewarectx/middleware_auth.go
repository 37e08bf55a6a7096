// Package middlewarectx contains the HTTP middleware guarding the gateway:
// session authentication, the role gate and the request limiter. The auth
// middleware parses the gateway session token, validates the durable session
// synchronously (blocking until any in-flight revalidation settles) and puts
// the identity into the request context for the handlers.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	libjwt "github.com/cajimenez96/gym-console/internal/lib/jwt"
	"github.com/cajimenez96/gym-console/internal/http/response"
	"github.com/cajimenez96/gym-console/internal/lib/sl"
	"github.com/cajimenez96/gym-console/internal/session"
)

// Key is the context key type for request-scoped identity values.
type Key string

const (
	// User is the context key for the username.
	User Key = "username"
	// Role is the context key for the role.
	Role Key = "role"
	// SessionID is the context key for the gateway session id.
	SessionID Key = "session_id"
	// UpstreamToken is the context key for the backend bearer token.
	UpstreamToken Key = "upstream_token"
)

// TokenParser parses gateway session tokens.
type TokenParser interface {
	ParseToken(tokenStr string) (*libjwt.SessionClaims, error)
}

// SessionValidator validates a session id against the durable store.
type SessionValidator interface {
	Validate(ctx context.Context, sessionID string) (*session.Session, error)
}

// Auth returns middleware that requires a valid gateway session token in the
// Authorization header and a live durable session behind it.
func Auth(parser TokenParser, sessions SessionValidator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Auth"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := parser.ParseToken(tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			sess, err := sessions.Validate(r.Context(), claims.SessionID)
			if err != nil {
				log.Error("session validation failed", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("session expired"))
				return
			}

			ctx := context.WithValue(r.Context(), User, sess.User.Username)
			ctx = context.WithValue(ctx, Role, sess.User.Role)
			ctx = context.WithValue(ctx, SessionID, sess.ID)
			ctx = context.WithValue(ctx, UpstreamToken, sess.Token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TokenFrom returns the backend bearer token for the request.
func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(UpstreamToken).(string)
	return token
}

// RoleFrom returns the role for the request.
func RoleFrom(ctx context.Context) string {
	role, _ := ctx.Value(Role).(string)
	return role
}

// UserFrom returns the username for the request.
func UserFrom(ctx context.Context) string {
	user, _ := ctx.Value(User).(string)
	return user
}

// SessionIDFrom returns the gateway session id for the request.
func SessionIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(SessionID).(string)
	return id
}
