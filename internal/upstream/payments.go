package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/cajimenez96/gym-console/internal/models"
)

// ListPayments returns the payment history.
func (c *Client) ListPayments(ctx context.Context, token string) ([]models.Payment, error) {
	const op = "upstream.ListPayments"
	var payments []models.Payment
	if err := c.do(ctx, http.MethodGet, PaymentsPath, token, nil, &payments); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payments, nil
}

// CreateManualPayment records a staff-entered payment.
func (c *Client) CreateManualPayment(ctx context.Context, token string, req models.ManualPaymentRequest) (*models.Payment, error) {
	const op = "upstream.CreateManualPayment"
	var payment models.Payment
	if err := c.do(ctx, http.MethodPost, PaymentsPath+"/manual", token, req, &payment); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &payment, nil
}

// InitiatePayment opens a payment intent with the external processor through
// the backend.
func (c *Client) InitiatePayment(ctx context.Context, token string, req models.InitiatePaymentRequest) (*models.InitiatePaymentResponse, error) {
	const op = "upstream.InitiatePayment"
	var resp models.InitiatePaymentResponse
	if err := c.do(ctx, http.MethodPost, PaymentsPath+"/initiate", token, req, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &resp, nil
}

// ConfirmPayment confirms a previously initiated payment intent.
func (c *Client) ConfirmPayment(ctx context.Context, token, paymentIntentID string) error {
	const op = "upstream.ConfirmPayment"
	path := PaymentsPath + "/confirm/" + url.PathEscape(paymentIntentID)
	if err := c.do(ctx, http.MethodPost, path, token, nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
