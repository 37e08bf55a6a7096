// Package me implements the HTTP handler returning the current identity.
// The auth middleware has already validated the session, so this is a pure
// context read.
package me

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/cajimenez96/gym-console/internal/http/middlewarectx"
	"github.com/cajimenez96/gym-console/internal/http/response"
)

// Handler handles identity requests.
type Handler struct {
	log *slog.Logger
}

// New creates a me Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Current identity
// @Description Returns the username and role behind the session token.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username := middlewarectx.UserFrom(r.Context())
	role := middlewarectx.RoleFrom(r.Context())

	log.Info("identity read", slog.String("username", username))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"username": username,
		"role":     role,
	}))
}
