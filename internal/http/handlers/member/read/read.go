// Package read implements the HTTP handler returning one member by id.
package read

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
	Get(ctx context.Context, token, id string) (*models.Member, error)
}

// Handler handles single-member requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New creates a member-read Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Get a member
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Member not found"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /members/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	member, err := h.service.Get(r.Context(), middlewarectx.TokenFrom(r.Context()), id)
	if err != nil {
		if upstream.IsNotFound(err) {
			log.Warn("member not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("member not found"))
			return
		}
		log.Error("failed to read member", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load member"))
		return
	}

	render.JSON(w, r, response.OKWithData(member))
}
