// Package create implements the HTTP handler recording an attendance event.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/cajimenez96/gym-console/internal/http/middlewarectx"
	"github.com/cajimenez96/gym-console/internal/http/response"
	"github.com/cajimenez96/gym-console/internal/lib/sl"
	"github.com/cajimenez96/gym-console/internal/models"
	"github.com/cajimenez96/gym-console/internal/upstream"
)

// Service is the check-in operation this handler needs.
type Service interface {
	Create(ctx context.Context, token string, req models.CreateCheckInRequest) (*models.CheckIn, error)
}

// Handler handles check-in creation requests.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New creates a check-in create Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Record a check-in
// @Description Appends an attendance event for a member. Never retried: a failed call leaves the log unchanged.
// @Tags CheckIns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateCheckInRequest true "Member checking in"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Malformed JSON"
// @Failure 404 {object} response.ErrorResponse "Member not found"
// @Failure 422 {object} response.ErrorResponse "Validation failure"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /check-ins [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.checkin.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.CreateCheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	checkIn, err := h.service.Create(r.Context(), middlewarectx.TokenFrom(r.Context()), req)
	if err != nil {
		if upstream.IsNotFound(err) {
			log.Warn("member not found", slog.String("member_id", req.MemberID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("member not found"))
			return
		}
		log.Error("failed to record check-in", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not record check-in"))
		return
	}

	log.Info("check-in recorded", slog.String("id", checkIn.ID))
	render.JSON(w, r, response.OKWithData(checkIn))
}
