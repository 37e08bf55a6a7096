package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/cajimenez96/gym-console/internal/models"
)

// ListPlans returns all membership plans.
func (c *Client) ListPlans(ctx context.Context, token string) ([]models.MembershipPlan, error) {
	const op = "upstream.ListPlans"
	var plans []models.MembershipPlan
	if err := c.do(ctx, http.MethodGet, PlansPath, token, nil, &plans); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return plans, nil
}

// CreatePlan creates a membership plan.
func (c *Client) CreatePlan(ctx context.Context, token string, req models.CreateMembershipPlanRequest) (*models.MembershipPlan, error) {
	const op = "upstream.CreatePlan"
	var plan models.MembershipPlan
	if err := c.do(ctx, http.MethodPost, PlansPath, token, req, &plan); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &plan, nil
}

// UpdatePlan applies a partial update to a plan.
func (c *Client) UpdatePlan(ctx context.Context, token, id string, req models.UpdateMembershipPlanRequest) (*models.MembershipPlan, error) {
	const op = "upstream.UpdatePlan"
	var plan models.MembershipPlan
	if err := c.do(ctx, http.MethodPatch, PlansPath+"/"+url.PathEscape(id), token, req, &plan); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &plan, nil
}

// DeletePlan removes a plan.
func (c *Client) DeletePlan(ctx context.Context, token, id string) error {
	const op = "upstream.DeletePlan"
	if err := c.do(ctx, http.MethodDelete, PlansPath+"/"+url.PathEscape(id), token, nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
