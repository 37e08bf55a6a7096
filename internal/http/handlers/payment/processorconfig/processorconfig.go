// Package processorconfig implements the HTTP handler exposing the payment
// processor publishable key to the console. The key is public by design;
// the secret side lives in the backend.
package processorconfig

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/cajimenez96/gym-console/internal/http/response"
)

// Handler hands out the processor publishable key.
type Handler struct {
	log            *slog.Logger
	publishableKey string
}

// New creates a processorconfig Handler.
func New(log *slog.Logger, publishableKey string) *Handler {
	return &Handler{log: log, publishableKey: publishableKey}
}

// ServeHTTP godoc
// @Summary Payment processor config
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /payments/config [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.OKWithData(map[string]any{
		"publishableKey": h.publishableKey,
	}))
}
