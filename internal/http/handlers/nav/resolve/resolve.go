// Package resolve implements the HTTP handler that answers console page
// requests. It evaluates the navigation table for the requested path and
// either confirms the page or issues a real redirect.
package resolve

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/cajimenez96/gym-console/internal/http/response"
	"github.com/cajimenez96/gym-console/internal/lib/jwt"
	"github.com/cajimenez96/gym-console/internal/lib/sl"
	"github.com/cajimenez96/gym-console/internal/models"
	"github.com/cajimenez96/gym-console/internal/nav"
	"github.com/cajimenez96/gym-console/internal/session"
)

// TokenParser verifies console tokens.
type TokenParser interface {
	ParseToken(tokenString string) (*jwt.SessionClaims, error)
}

// SessionValidator checks that a session is still live.
type SessionValidator interface {
	Validate(ctx context.Context, sessionID string) (*session.Session, error)
}

// Handler resolves page routes against the navigation table.
type Handler struct {
	log      *slog.Logger
	parser   TokenParser
	sessions SessionValidator
}

// New creates a resolve Handler.
func New(log *slog.Logger, parser TokenParser, sessions SessionValidator) *Handler {
	return &Handler{log: log, parser: parser, sessions: sessions}
}

// ServeHTTP godoc
// @Summary Resolve a console page
// @Description Confirms the requested page for the caller's role or redirects
// @Tags Navigation
// @Produce json
// @Success 200 {object} response.Response
// @Failure 302
// @Router /members [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.nav.resolve.ServeHTTP"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("path", r.URL.Path),
	)

	state, user := h.authenticate(r)

	if r.URL.Path == nav.LoginRoute {
		if state == session.StateAuthenticated {
			http.Redirect(w, r, nav.DefaultPage(user.Role), http.StatusFound)

			return
		}

		render.JSON(w, r, response.OKWithData(map[string]any{"page": nav.LoginRoute}))

		return
	}

	var role string
	if user != nil {
		role = user.Role
	}

	decision := nav.Evaluate(r.URL.Path, state, role)

	switch decision.Kind {
	case nav.Allow:
		render.JSON(w, r, response.OKWithData(map[string]any{
			"page": r.URL.Path,
			"role": role,
		}))
	case nav.RedirectLogin:
		target := nav.LoginRoute + "?" + nav.RedirectParam + "=" + url.QueryEscape(r.URL.Path)
		http.Redirect(w, r, target, http.StatusFound)
	case nav.Redirect:
		log.Info("role not allowed for page, redirecting",
			slog.String("role", role),
			slog.String("location", decision.Location),
		)

		http.Redirect(w, r, decision.Location, http.StatusFound)
	default:
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to resolve page"))
	}
}

// authenticate derives the navigation state from the request credentials.
// A missing or broken token is not an error here, only an unauthenticated
// state for the route table to act on.
func (h *Handler) authenticate(r *http.Request) (session.State, *models.User) {
	const op = "handlers.nav.resolve.authenticate"

	tokenString := bearerToken(r)
	if tokenString == "" {
		return session.StateUnauthenticated, nil
	}

	claims, err := h.parser.ParseToken(tokenString)
	if err != nil {
		return session.StateUnauthenticated, nil
	}

	sess, err := h.sessions.Validate(r.Context(), claims.SessionID)
	if err != nil {
		if !errors.Is(err, session.ErrNotAuthenticated) {
			h.log.Error("failed to validate session",
				slog.String("op", op), sl.Err(err))

			return session.StateError, nil
		}

		return session.StateUnauthenticated, nil
	}

	return session.StateAuthenticated, &sess.User
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}

	return strings.TrimPrefix(header, prefix)
}
