// Package logout implements the HTTP handler destroying the current session.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/cajimenez96/gym-console/internal/http/middlewarectx"
	"github.com/cajimenez96/gym-console/internal/http/response"
	"github.com/cajimenez96/gym-console/internal/lib/sl"
)

// Service is the session operation this handler needs.
type Service interface {
	Logout(ctx context.Context, sessionID string) error
}

// Handler handles sign-out requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New creates a logout Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Sign out
// @Description Invalidates the backend token best-effort and always destroys the gateway session.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sessionID := middlewarectx.SessionIDFrom(r.Context())
	if err := h.service.Logout(r.Context(), sessionID); err != nil {
		log.Error("failed to destroy session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not sign out"))
		return
	}

	log.Info("logout success", slog.String("session_id", sessionID))
	render.JSON(w, r, response.OKWithData(map[string]any{"message": "signed out"}))
}
