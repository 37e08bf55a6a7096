// Package remove implements the HTTP handler deleting a member.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/cajimenez96/gym-console/internal/http/middlewarectx"
	"github.com/cajimenez96/gym-console/internal/http/response"
	"github.com/cajimenez96/gym-console/internal/lib/sl"
	"github.com/cajimenez96/gym-console/internal/models"
	"github.com/cajimenez96/gym-console/internal/upstream"
)

// Service is the member operation this handler needs.
type Service interface {
	Delete(ctx context.Context, token, id string) (*models.Member, error)
}

// Handler handles member deletion requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New creates a member-remove Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Delete a member
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Member not found"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /members/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	member, err := h.service.Delete(r.Context(), middlewarectx.TokenFrom(r.Context()), id)
	if err != nil {
		if upstream.IsNotFound(err) {
			log.Warn("member not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("member not found"))
			return
		}
		log.Error("failed to delete member", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not delete member"))
		return
	}

	log.Info("member deleted", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(member))
}
