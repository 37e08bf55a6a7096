// Package remove implements the HTTP handler deleting a membership plan.
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
	"github.com/cajimenez96/gym-console/internal/upstream"
)

// Service is the plan operation this handler needs.
type Service interface {
	Delete(ctx context.Context, token, id string) error
}

// Handler handles plan deletion requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New creates a plan-remove Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Delete a membership plan
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Plan not found"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /membership-plans/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), middlewarectx.TokenFrom(r.Context()), id); err != nil {
		if upstream.IsNotFound(err) {
			log.Warn("plan not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("plan not found"))
			return
		}
		log.Error("failed to delete plan", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not delete membership plan"))
		return
	}

	log.Info("plan deleted", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{"deleted": id}))
}
