// Package subset implements the HTTP handler serving the backend-computed
// member subsets (active and expired). One handler serves both; the kind is
// fixed at wiring time.
package subset

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

// Kind selects which subset a Handler serves.
type Kind string

const (
	// Active serves /members/active.
	Active Kind = "active"
	// Expired serves /members/expired.
	Expired Kind = "expired"
)

// Service is the member operation this handler needs.
type Service interface {
	ListActive(ctx context.Context, token string) ([]models.Member, error)
	ListExpired(ctx context.Context, token string) ([]models.Member, error)
}

// Handler handles member subset requests.
type Handler struct {
	log     *slog.Logger
	service Service
	kind    Kind
}

// New creates a subset Handler for the given kind.
func New(log *slog.Logger, service Service, kind Kind) *Handler {
	return &Handler{log: log, service: service, kind: kind}
}

// ServeHTTP godoc
// @Summary List a member subset
// @Description Serves the backend-computed active or expired member subset.
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /members/active [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.subset"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("subset", string(h.kind)),
	)

	token := middlewarectx.TokenFrom(r.Context())
	var (
		members []models.Member
		err     error
	)
	if h.kind == Expired {
		members, err = h.service.ListExpired(r.Context(), token)
	} else {
		members, err = h.service.ListActive(r.Context(), token)
	}
	if err != nil {
		log.Error("failed to list member subset", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load members"))
		return
	}

	log.Info("member subset listed", slog.Int("count", len(members)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"count":   len(members),
		"members": members,
	}))
}
