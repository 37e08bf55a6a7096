// Package recompute implements the HTTP handler delegating the bulk
// membership status recompute to the backend.
package recompute

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

// Service is the member operation this handler needs.
type Service interface {
	RecomputeStatuses(ctx context.Context, token string) (string, error)
}

// Handler handles bulk status recompute requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New creates a recompute Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Recompute membership statuses
// @Description Asks the backend to recompute every membership status from the stored renewal dates.
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /members/update-statuses [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.recompute"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	msg, err := h.service.RecomputeStatuses(r.Context(), middlewarectx.TokenFrom(r.Context()))
	if err != nil {
		log.Error("failed to recompute statuses", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not recompute member statuses"))
		return
	}

	log.Info("statuses recomputed")
	render.JSON(w, r, response.OKWithData(map[string]any{"message": msg}))
}
