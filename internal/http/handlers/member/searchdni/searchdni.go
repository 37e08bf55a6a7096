// Package searchdni implements the HTTP handler looking a member up by
// national ID. It also serves the check-in desk variant that returns the
// eligibility view instead of the raw record.
package searchdni

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
)

// Service is the member operation this handler needs.
type Service interface {
	FindByDNI(ctx context.Context, token, dni string) (*models.Member, error)
	CheckInInfo(ctx context.Context, token, dni string) (*models.MemberCheckInInfo, error)
}

// Handler handles national-ID search requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New creates a searchdni Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Find a member by national ID
// @Description With ?view=check-in the answer is the check-in eligibility view.
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param dni path string true "National ID"
// @Param view query string false "check-in for the desk view"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "No member with that national ID"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /members/search/{dni} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.searchdni"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	dni := chi.URLParam(r, "dni")
	token := middlewarectx.TokenFrom(r.Context())

	if r.URL.Query().Get("view") == "check-in" {
		info, err := h.service.CheckInInfo(r.Context(), token, dni)
		if err != nil {
			log.Error("failed to build check-in info", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not search member"))
			return
		}
		if info == nil {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("no member with that national ID"))
			return
		}
		render.JSON(w, r, response.OKWithData(info))
		return
	}

	member, err := h.service.FindByDNI(r.Context(), token, dni)
	if err != nil {
		log.Error("failed to search member", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not search member"))
		return
	}
	if member == nil {
		log.Info("member not found", slog.String("dni", dni))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("no member with that national ID"))
		return
	}

	render.JSON(w, r, response.OKWithData(member))
}
