// Package list implements the HTTP handler returning the attendance log,
// optionally filtered to one member.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/cajimenez96/gym-console/internal/http/middlewarectx"
	"github.com/cajimenez96/gym-console/internal/http/response"
	"github.com/cajimenez96/gym-console/internal/lib/sl"
	"github.com/cajimenez96/gym-console/internal/models"
)

// Service is the check-in operation this handler needs.
type Service interface {
	List(ctx context.Context, token, memberID string) ([]models.CheckIn, error)
}

// Handler handles attendance list requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New creates a check-in list Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary List check-ins
// @Tags CheckIns
// @Produce json
// @Security BearerAuth
// @Param memberId query string false "Filter to one member"
// @Success 200 {object} response.Response
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /check-ins [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.checkin.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	memberID := r.URL.Query().Get("memberId")
	checkIns, err := h.service.List(r.Context(), middlewarectx.TokenFrom(r.Context()), memberID)
	if err != nil {
		log.Error("failed to list check-ins", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load check-ins"))
		return
	}

	log.Info("check-ins listed", slog.Int("count", len(checkIns)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"count":    len(checkIns),
		"checkIns": checkIns,
	}))
}
