// Package list implements the HTTP handler returning the payment history,
// plain or enriched with resolved member names.
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

// Service is the payment operation this handler needs.
type Service interface {
	History(ctx context.Context, token string) ([]models.Payment, error)
	HistoryWithMembers(ctx context.Context, token string) ([]models.PaymentWithMember, error)
}

// Handler handles payment history requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New creates a payment-list Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Payment history
// @Description With ?include=members each row carries the member's resolved name.
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param include query string false "members to join member names"
// @Success 200 {object} response.Response
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /payments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token := middlewarectx.TokenFrom(r.Context())

	if r.URL.Query().Get("include") == "members" {
		payments, err := h.service.HistoryWithMembers(r.Context(), token)
		if err != nil {
			log.Error("failed to list payments with members", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not load payment history"))
			return
		}
		log.Info("payments listed", slog.Int("count", len(payments)))
		render.JSON(w, r, response.OKWithData(map[string]any{
			"count":    len(payments),
			"payments": payments,
		}))
		return
	}

	payments, err := h.service.History(r.Context(), token)
	if err != nil {
		log.Error("failed to list payments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load payment history"))
		return
	}

	log.Info("payments listed", slog.Int("count", len(payments)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"count":    len(payments),
		"payments": payments,
	}))
}
