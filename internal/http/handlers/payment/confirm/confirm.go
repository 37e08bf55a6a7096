// Package confirm implements the HTTP handler settling a previously
// initiated payment intent.
package confirm

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

// Service is the payment operation this handler needs.
type Service interface {
	Confirm(ctx context.Context, token, paymentIntentID string) error
}

// Handler handles payment confirmation requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New creates a payment-confirm Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Confirm a card payment
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param intentId path string true "Payment intent id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Unknown payment intent"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /payments/confirm/{intentId} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.confirm"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	intentID := chi.URLParam(r, "intentId")
	if err := h.service.Confirm(r.Context(), middlewarectx.TokenFrom(r.Context()), intentID); err != nil {
		if upstream.IsNotFound(err) {
			log.Warn("unknown payment intent", slog.String("intent_id", intentID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("unknown payment intent"))
			return
		}
		log.Error("failed to confirm payment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not confirm payment"))
		return
	}

	log.Info("payment confirmed", slog.String("intent_id", intentID))
	render.JSON(w, r, response.OKWithData(map[string]any{"confirmed": intentID}))
}
