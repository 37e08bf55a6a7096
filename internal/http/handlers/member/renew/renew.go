// Package renew implements the HTTP handler renewing a membership by
// national ID.
package renew

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/cajimenez96/gym-console/internal/http/middlewarectx"
	"github.com/cajimenez96/gym-console/internal/http/response"
	"github.com/cajimenez96/gym-console/internal/lib/sl"
	"github.com/cajimenez96/gym-console/internal/models"
	"github.com/cajimenez96/gym-console/internal/upstream"
)

// Service is the member operation this handler needs.
type Service interface {
	Renew(ctx context.Context, token string, req models.RenewMembershipRequest) (*models.Member, error)
}

// Handler handles membership renewal requests.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New creates a renew Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Renew a membership
// @Description Renews the membership of the member with the given national ID.
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param dni path string true "National ID"
// @Param request body models.RenewMembershipRequest true "Renewal data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Malformed JSON"
// @Failure 404 {object} response.ErrorResponse "No member with that national ID"
// @Failure 422 {object} response.ErrorResponse "Validation failure"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /members/{dni}/renew [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.renew"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.RenewMembershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	req.DNI = chi.URLParam(r, "dni")

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	member, err := h.service.Renew(r.Context(), middlewarectx.TokenFrom(r.Context()), req)
	if err != nil {
		if upstream.IsNotFound(err) {
			log.Warn("member not found", slog.String("dni", req.DNI))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("no member with that national ID"))
			return
		}
		log.Error("failed to renew membership", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not renew membership"))
		return
	}

	log.Info("membership renewed", slog.String("dni", req.DNI))
	render.JSON(w, r, response.OKWithData(member))
}
